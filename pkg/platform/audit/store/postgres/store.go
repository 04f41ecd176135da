package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	id "driveguard/pkg/domain"
	audit "driveguard/pkg/platform/audit"
)

// Store persists audit events through a pgx connection pool. The audit path
// is append-heavy and latency-sensitive, so it uses the native driver rather
// than database/sql.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Append inserts a single audit event. The category is always derived from
// the action so the eventCategories table stays the single source of truth.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	query := `
		INSERT INTO audit_events
			(id, category, occurred_at, user_id, org_id, driver_id,
			 action, outcome, reason, request_id, client_ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.pool.Exec(ctx, query,
		uuid.New(),
		string(audit.AuditEvent(event.Action).Category()),
		event.Timestamp,
		nilIfEmpty(event.UserID.UUID),
		nilIfEmpty(event.OrgID.UUID),
		nilIfEmpty(event.DriverID.UUID),
		event.Action,
		event.Outcome,
		event.Reason,
		event.RequestID,
		event.ClientIP,
		event.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByDriver returns the events recorded for one driver, oldest first.
func (s *Store) ListByDriver(ctx context.Context, driverID id.DriverID) ([]audit.Event, error) {
	query := `
		SELECT category, occurred_at, user_id, org_id, driver_id,
		       action, outcome, reason, request_id, client_ip, user_agent
		FROM audit_events
		WHERE driver_id = $1
		ORDER BY occurred_at ASC
	`
	rows, err := s.pool.Query(ctx, query, driverID.UUID)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListRecent returns the newest events across all drivers, oldest first
// within the window.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	query := `
		SELECT category, occurred_at, user_id, org_id, driver_id,
		       action, outcome, reason, request_id, client_ip, user_agent
		FROM (
			SELECT * FROM audit_events ORDER BY occurred_at DESC LIMIT $1
		) recent
		ORDER BY occurred_at ASC
	`
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent audit events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanEvents(rows pgxRows) ([]audit.Event, error) {
	var events []audit.Event
	for rows.Next() {
		var (
			event    audit.Event
			category string

			userID, orgID, driverID *uuid.UUID
		)
		if err := rows.Scan(
			&category,
			&event.Timestamp,
			&userID,
			&orgID,
			&driverID,
			&event.Action,
			&event.Outcome,
			&event.Reason,
			&event.RequestID,
			&event.ClientIP,
			&event.UserAgent,
		); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Category = audit.EventCategory(category)
		if userID != nil {
			event.UserID = id.UserID{UUID: *userID}
		}
		if orgID != nil {
			event.OrgID = id.OrgID{UUID: *orgID}
		}
		if driverID != nil {
			event.DriverID = id.DriverID{UUID: *driverID}
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}

// nilIfEmpty maps the zero UUID to SQL NULL so optional references stay NULL
// in the table.
func nilIfEmpty(u uuid.UUID) *uuid.UUID {
	if u == uuid.Nil {
		return nil
	}
	return &u
}
