package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"driveguard/internal/org/models"
	id "driveguard/pkg/domain"
	"driveguard/pkg/platform/sentinel"
)

// PostgresStore persists organisations in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed organisation store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, org *models.Org) error {
	query := `
		INSERT INTO orgs (id, name, secret_hash, api_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		org.ID.UUID,
		org.Name,
		org.SecretHash,
		org.APIUserID.UUID,
		org.CreatedAt,
		org.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create organisation: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, orgID id.OrgID) (*models.Org, error) {
	query := `
		SELECT id, name, secret_hash, api_user_id, created_at, updated_at
		FROM orgs WHERE id = $1
	`
	var (
		org       models.Org
		rowID     uuid.UUID
		apiUserID uuid.UUID
	)
	err := s.db.QueryRowContext(ctx, query, orgID.UUID).Scan(
		&rowID,
		&org.Name,
		&org.SecretHash,
		&apiUserID,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find organisation: %w", err)
	}
	org.ID = id.OrgID{UUID: rowID}
	org.APIUserID = id.UserID{UUID: apiUserID}
	return &org, nil
}

func (s *PostgresStore) Update(ctx context.Context, org *models.Org) error {
	query := `
		UPDATE orgs SET name = $2, secret_hash = $3, updated_at = $4
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		org.ID.UUID,
		org.Name,
		org.SecretHash,
		org.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update organisation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update organisation: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
