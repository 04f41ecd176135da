package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"driveguard/internal/assessment"
	id "driveguard/pkg/domain"
	"driveguard/pkg/platform/sentinel"
)

// PostgresStore persists assessments in PostgreSQL. Rows are append-only.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed assessment store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, a *assessment.RiskAssessment) error {
	query := `
		INSERT INTO assessments (
			id, driver_id, licence_valid, score, tier,
			factors, recommendations, next_check_due, assessed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		a.ID.UUID,
		a.DriverID.UUID,
		a.LicenceValid,
		a.Score,
		string(a.Tier),
		pq.Array(a.Factors),
		pq.Array(a.Recommendations),
		a.NextCheckDue,
		a.AssessedAt,
	)
	if err != nil {
		return fmt.Errorf("save assessment: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByDriver(ctx context.Context, driverID id.DriverID) ([]*assessment.RiskAssessment, error) {
	query := `
		SELECT id, driver_id, licence_valid, score, tier,
		       factors, recommendations, next_check_due, assessed_at
		FROM assessments
		WHERE driver_id = $1
		ORDER BY assessed_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, driverID.UUID)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var out []*assessment.RiskAssessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Latest(ctx context.Context, driverID id.DriverID) (*assessment.RiskAssessment, error) {
	query := `
		SELECT id, driver_id, licence_valid, score, tier,
		       factors, recommendations, next_check_due, assessed_at
		FROM assessments
		WHERE driver_id = $1
		ORDER BY assessed_at DESC
		LIMIT 1
	`
	row := s.db.QueryRowContext(ctx, query, driverID.UUID)
	a, err := scanAssessment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListDueForRecheck selects drivers whose most recent assessment is due at or
// before now, most overdue first.
func (s *PostgresStore) ListDueForRecheck(ctx context.Context, now time.Time, limit int) ([]id.DriverID, error) {
	query := `
		SELECT driver_id FROM (
			SELECT DISTINCT ON (driver_id) driver_id, next_check_due
			FROM assessments
			ORDER BY driver_id, assessed_at DESC
		) latest
		WHERE next_check_due <= $1
		ORDER BY next_check_due ASC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list due rechecks: %w", err)
	}
	defer rows.Close()

	var out []id.DriverID
	for rows.Next() {
		var driverID uuid.UUID
		if err := rows.Scan(&driverID); err != nil {
			return nil, fmt.Errorf("scan due recheck: %w", err)
		}
		out = append(out, id.DriverID{UUID: driverID})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list due rechecks: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (*assessment.RiskAssessment, error) {
	var (
		a               assessment.RiskAssessment
		assessmentID    uuid.UUID
		driverID        uuid.UUID
		tier            string
		factors         pq.StringArray
		recommendations pq.StringArray
	)
	err := row.Scan(
		&assessmentID,
		&driverID,
		&a.LicenceValid,
		&a.Score,
		&tier,
		&factors,
		&recommendations,
		&a.NextCheckDue,
		&a.AssessedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan assessment: %w", err)
	}
	a.ID = id.AssessmentID{UUID: assessmentID}
	a.DriverID = id.DriverID{UUID: driverID}
	a.Tier = assessment.RiskTier(tier)
	a.Factors = []string(factors)
	a.Recommendations = []string(recommendations)
	return &a, nil
}
