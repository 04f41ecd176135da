// Package ports defines the collaborator interfaces the assessment service
// depends on. Keeping them here lets the service be tested against mocks
// and wired against HTTP, Postgres or in-memory implementations alike.
package ports

import (
	"context"
	"time"

	"driveguard/internal/assessment"
	"driveguard/internal/driver/models"
	id "driveguard/pkg/domain"
	"driveguard/pkg/platform/audit"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks RegistryClient,DriverStore,AssessmentStore,AuditPublisher

// RegistryClient supplies the normalized licence snapshot for a licence
// number. Failures carry the registry error taxonomy; the caller maps them
// to domain errors.
type RegistryClient interface {
	FetchLicence(ctx context.Context, licenceNumber string) (*assessment.LicenceRecord, error)
}

// DriverStore supplies stored driver attributes and accepts post-check
// snapshot updates.
type DriverStore interface {
	FindByID(ctx context.Context, driverID id.DriverID) (*models.Driver, error)
	Update(ctx context.Context, driver *models.Driver) error
}

// RecheckLister finds drivers whose latest assessment is due for a re-run.
// Implemented by the assessment store; consumed by the recheck worker.
type RecheckLister interface {
	ListDueForRecheck(ctx context.Context, now time.Time, limit int) ([]id.DriverID, error)
}

// AssessmentStore persists engine output as immutable records.
type AssessmentStore interface {
	Save(ctx context.Context, a *assessment.RiskAssessment) error
	ListByDriver(ctx context.Context, driverID id.DriverID) ([]*assessment.RiskAssessment, error)
	Latest(ctx context.Context, driverID id.DriverID) (*assessment.RiskAssessment, error)
}

// AuditPublisher emits audit events for completed and failed checks.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
