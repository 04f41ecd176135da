// Package audit defines the event model shared by every feature module.
// Events are emitted from domain logic, buffered through the worker, stored
// for querying and published to Kafka for downstream compliance tooling.
package audit

import (
	"context"
	"time"

	id "driveguard/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose. Categories
// drive retention: compliance events are kept for the regulatory period,
// operations events can be sampled and aged out.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance:
	// assessment outcomes, driver record changes, credential handling.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to security monitoring, such
	// as failed authentication and credential rotation.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers events useful for debugging and visibility.
	CategoryOperations EventCategory = "operations"
)

// Event captures a single auditable action. It is transport-agnostic so
// stores and the Kafka publisher can fan out from the same value.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	UserID    id.UserID
	OrgID     id.OrgID
	DriverID  id.DriverID
	Action    string
	Outcome   string
	Reason    string
	RequestID string
	ClientIP  string
	UserAgent string
}

type AuditEvent string

const (
	// Driver lifecycle
	EventDriverCreated AuditEvent = "driver_created"
	EventDriverUpdated AuditEvent = "driver_updated"
	EventDriverDeleted AuditEvent = "driver_deleted"

	// Compliance checks
	EventCheckCompleted AuditEvent = "check_completed"
	EventCheckFailed    AuditEvent = "check_failed"
	EventRecheckRun     AuditEvent = "recheck_run"

	// Organisation accounts
	EventOrgCreated          AuditEvent = "org_created"
	EventCredentialRotated   AuditEvent = "credential_rotated"
	EventAuthFailed          AuditEvent = "auth_failed"
	EventAssessmentsAccessed AuditEvent = "assessments_accessed"
)

// eventCategories maps each audit event to its category. Events missing from
// the map default to operations, the least privileged retention class.
var eventCategories = map[AuditEvent]EventCategory{
	EventDriverCreated:  CategoryCompliance,
	EventDriverUpdated:  CategoryCompliance,
	EventDriverDeleted:  CategoryCompliance,
	EventCheckCompleted: CategoryCompliance,
	EventCheckFailed:    CategoryOperations,
	EventRecheckRun:     CategoryOperations,

	EventOrgCreated:        CategoryCompliance,
	EventCredentialRotated: CategorySecurity,
	EventAuthFailed:        CategorySecurity,

	EventAssessmentsAccessed: CategoryOperations,
}

// Category resolves the retention category for an event name.
func (e AuditEvent) Category() EventCategory {
	if c, ok := eventCategories[e]; ok {
		return c
	}
	return CategoryOperations
}

// Store persists audit events. Implementations must treat events as
// append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByDriver(ctx context.Context, driverID id.DriverID) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// Emitter is the narrow interface feature services depend on.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}
