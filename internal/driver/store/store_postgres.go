package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"driveguard/internal/driver/models"
	id "driveguard/pkg/domain"
	"driveguard/pkg/platform/sentinel"
)

// PostgresStore persists drivers in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed driver store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const driverColumns = `id, org_id, name, licence_number, date_of_birth,
	last_medical_at, licence_issued_at, previous_categories, penalty_points,
	created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, driver *models.Driver) error {
	query := `
		INSERT INTO drivers (` + driverColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		driver.ID.UUID,
		driver.OrgID.UUID,
		driver.Name,
		driver.LicenceNumber,
		driver.DateOfBirth,
		driver.LastMedicalAt,
		driver.LicenceIssuedAt,
		pq.Array(driver.PreviousCategories),
		driver.PenaltyPoints,
		driver.CreatedAt,
		driver.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create driver: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, driverID id.DriverID) (*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`
	driver, err := scanDriver(s.db.QueryRowContext(ctx, query, driverID.UUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	return driver, nil
}

func (s *PostgresStore) ListByOrg(ctx context.Context, orgID id.OrgID) ([]*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE org_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := s.db.QueryContext(ctx, query, orgID.UUID)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	var out []*models.Driver
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, driver)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Update(ctx context.Context, driver *models.Driver) error {
	query := `
		UPDATE drivers SET
			name = $2, licence_number = $3, date_of_birth = $4,
			last_medical_at = $5, licence_issued_at = $6,
			previous_categories = $7, penalty_points = $8, updated_at = $9
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		driver.ID.UUID,
		driver.Name,
		driver.LicenceNumber,
		driver.DateOfBirth,
		driver.LastMedicalAt,
		driver.LicenceIssuedAt,
		pq.Array(driver.PreviousCategories),
		driver.PenaltyPoints,
		driver.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update driver: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update driver: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, driverID id.DriverID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM drivers WHERE id = $1`, driverID.UUID)
	if err != nil {
		return fmt.Errorf("delete driver: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete driver: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDriver(row rowScanner) (*models.Driver, error) {
	var (
		driver     models.Driver
		driverID   uuid.UUID
		orgID      uuid.UUID
		categories pq.StringArray
	)
	err := row.Scan(
		&driverID,
		&orgID,
		&driver.Name,
		&driver.LicenceNumber,
		&driver.DateOfBirth,
		&driver.LastMedicalAt,
		&driver.LicenceIssuedAt,
		&categories,
		&driver.PenaltyPoints,
		&driver.CreatedAt,
		&driver.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan driver: %w", err)
	}
	driver.ID = id.DriverID{UUID: driverID}
	driver.OrgID = id.OrgID{UUID: orgID}
	driver.PreviousCategories = []string(categories)
	return &driver, nil
}
