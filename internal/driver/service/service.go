// Package service implements driver CRUD with organisation scoping. Every
// read and write is checked against the caller's organisation; a driver
// belonging to another organisation is reported as not found, never as
// forbidden, so driver IDs do not leak across tenants.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"driveguard/internal/driver/models"
	id "driveguard/pkg/domain"
	dErrors "driveguard/pkg/domain-errors"
	"driveguard/pkg/platform/audit"
	"driveguard/pkg/platform/sentinel"
	"driveguard/pkg/requestcontext"
)

// Store defines the persistence interface for drivers.
type Store interface {
	Create(ctx context.Context, driver *models.Driver) error
	FindByID(ctx context.Context, driverID id.DriverID) (*models.Driver, error)
	ListByOrg(ctx context.Context, orgID id.OrgID) ([]*models.Driver, error)
	Update(ctx context.Context, driver *models.Driver) error
	Delete(ctx context.Context, driverID id.DriverID) error
}

// Service coordinates driver CRUD, auditing and organisation scoping.
type Service struct {
	store   Store
	logger  *slog.Logger
	auditor audit.Emitter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher audit.Emitter) Option {
	return func(s *Service) {
		s.auditor = publisher
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateDriverParams carries the caller-supplied driver attributes.
type CreateDriverParams struct {
	Name            string
	LicenceNumber   string
	DateOfBirth     time.Time
	LastMedicalAt   *time.Time
	LicenceIssuedAt *time.Time
}

func (s *Service) Create(ctx context.Context, orgID id.OrgID, params CreateDriverParams) (*models.Driver, error) {
	now := requestcontext.Now(ctx)

	driver, err := models.NewDriver(id.NewDriverID(), orgID, params.Name, params.LicenceNumber, params.DateOfBirth, now)
	if err != nil {
		return nil, err
	}
	driver.LastMedicalAt = params.LastMedicalAt
	driver.LicenceIssuedAt = params.LicenceIssuedAt

	if err := s.store.Create(ctx, driver); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "driver already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create driver")
	}

	s.logAudit(ctx, audit.EventDriverCreated, driver, "created")
	return driver, nil
}

func (s *Service) Get(ctx context.Context, orgID id.OrgID, driverID id.DriverID) (*models.Driver, error) {
	return s.findScoped(ctx, orgID, driverID)
}

// List returns the organisation's drivers ordered by creation time.
func (s *Service) List(ctx context.Context, orgID id.OrgID) ([]*models.Driver, error) {
	drivers, err := s.store.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list drivers")
	}
	return drivers, nil
}

// UpdateDriverParams carries the mutable driver attributes. Nil fields are
// left unchanged.
type UpdateDriverParams struct {
	Name            *string
	LastMedicalAt   *time.Time
	LicenceIssuedAt *time.Time
}

func (s *Service) Update(ctx context.Context, orgID id.OrgID, driverID id.DriverID, params UpdateDriverParams) (*models.Driver, error) {
	driver, err := s.findScoped(ctx, orgID, driverID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, dErrors.New(dErrors.CodeValidation, "driver name is required")
		}
		driver.Name = name
	}
	if params.LastMedicalAt != nil {
		driver.LastMedicalAt = params.LastMedicalAt
	}
	if params.LicenceIssuedAt != nil {
		driver.LicenceIssuedAt = params.LicenceIssuedAt
	}
	driver.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, driver); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "driver not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update driver")
	}

	s.logAudit(ctx, audit.EventDriverUpdated, driver, "updated")
	return driver, nil
}

func (s *Service) Delete(ctx context.Context, orgID id.OrgID, driverID id.DriverID) error {
	driver, err := s.findScoped(ctx, orgID, driverID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, driverID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "driver not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete driver")
	}

	s.logAudit(ctx, audit.EventDriverDeleted, driver, "deleted")
	return nil
}

func (s *Service) findScoped(ctx context.Context, orgID id.OrgID, driverID id.DriverID) (*models.Driver, error) {
	driver, err := s.store.FindByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "driver not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load driver")
	}
	if driver.OrgID != orgID {
		return nil, dErrors.New(dErrors.CodeNotFound, "driver not found")
	}
	return driver, nil
}

func (s *Service) logAudit(ctx context.Context, action audit.AuditEvent, driver *models.Driver, outcome string) {
	if s.auditor == nil {
		return
	}
	event := audit.Event{
		Category:  action.Category(),
		Timestamp: requestcontext.Now(ctx),
		UserID:    requestcontext.UserID(ctx),
		OrgID:     driver.OrgID,
		DriverID:  driver.ID,
		Action:    string(action),
		Outcome:   outcome,
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
	}
	if err := s.auditor.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emit failed",
			"action", event.Action,
			"driver_id", driver.ID,
			"error", err,
		)
	}
}
