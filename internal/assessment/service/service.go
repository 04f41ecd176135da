// Package service orchestrates compliance checks: it gathers the licence
// snapshot and stored driver attributes, runs the pure rules engine, and
// persists and reports the outcome. All I/O lives here; the engine itself
// stays side-effect free.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"driveguard/internal/assessment"
	"driveguard/internal/assessment/metrics"
	"driveguard/internal/assessment/ports"
	"driveguard/internal/driver/models"
	"driveguard/internal/registry"
	id "driveguard/pkg/domain"
	dErrors "driveguard/pkg/domain-errors"
	"driveguard/pkg/platform/audit"
	"driveguard/pkg/platform/sentinel"
	"driveguard/pkg/requestcontext"
)

const evidenceTimeout = 10 * time.Second

// Trigger records what started a check, for metrics and audit.
const (
	TriggerAPI     = "api"
	TriggerRecheck = "recheck"
)

type Service struct {
	registry ports.RegistryClient
	drivers  ports.DriverStore
	store    ports.AssessmentStore
	engine   *assessment.Engine

	logger  *slog.Logger
	auditor ports.AuditPublisher
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(registryClient ports.RegistryClient, drivers ports.DriverStore, store ports.AssessmentStore, opts ...Option) *Service {
	s := &Service{
		registry: registryClient,
		drivers:  drivers,
		store:    store,
		engine:   assessment.NewEngine(),
		tracer:   otel.Tracer("driveguard/assessment"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// evidence is everything a check needs beyond the driver row itself.
type evidence struct {
	record *assessment.LicenceRecord
	prior  *assessment.RiskAssessment
}

// RunCheck executes one full compliance check for a driver and returns the
// persisted assessment. The engine never fails; every error here comes from
// a collaborator and carries a domain error code.
func (s *Service) RunCheck(ctx context.Context, driverID id.DriverID, trigger string) (*assessment.RiskAssessment, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "assessment.RunCheck",
		trace.WithAttributes(
			attribute.String("driver.id", driverID.String()),
			attribute.String("check.trigger", trigger),
		))
	defer span.End()

	driver, err := s.findScoped(ctx, driverID)
	if err != nil {
		return nil, err
	}

	ev, err := s.gatherEvidence(ctx, driver)
	if err != nil {
		s.recordFailure(ctx, span, driver, trigger, err)
		return nil, mapRegistryError(err)
	}

	now := requestcontext.Now(ctx)
	result := s.engine.Evaluate(*ev.record, profileFor(driver), now)
	result.ID = id.NewAssessmentID()
	result.DriverID = driver.ID

	if err := s.store.Save(ctx, result); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist assessment")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist assessment")
	}

	s.updateDriverSnapshot(ctx, driver, ev.record, now)
	s.logTierTransition(ctx, driver, ev.prior, result)

	s.logAudit(ctx, audit.EventCheckCompleted, driver, string(result.Tier))
	s.metrics.IncrementCompleted(string(result.Tier), trigger)
	s.metrics.ObserveScore(result.Score)
	s.metrics.ObserveCheckLatency(time.Since(start))

	span.SetAttributes(
		attribute.Int("check.score", result.Score),
		attribute.String("check.tier", string(result.Tier)),
		attribute.Bool("check.licence_valid", result.LicenceValid),
	)
	return result, nil
}

// gatherEvidence fetches the licence snapshot and the prior assessment in
// parallel under a shared timeout. The prior assessment is optional context
// for tier-transition logging; its absence is not an error.
func (s *Service) gatherEvidence(ctx context.Context, driver *models.Driver) (*evidence, error) {
	ctx, cancel := context.WithTimeout(ctx, evidenceTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	ev := &evidence{}

	g.Go(func() error {
		start := time.Now()
		record, err := s.registry.FetchLicence(ctx, driver.LicenceNumber)
		s.metrics.ObserveFetchLatency("registry", time.Since(start))
		if err != nil {
			return err
		}
		ev.record = record
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		prior, err := s.store.Latest(ctx, driver.ID)
		s.metrics.ObserveFetchLatency("prior", time.Since(start))
		if err != nil {
			if !errors.Is(err, sentinel.ErrNotFound) && s.logger != nil {
				s.logger.DebugContext(ctx, "prior assessment lookup failed",
					"driver_id", driver.ID,
					"error", err,
				)
			}
			return nil
		}
		ev.prior = prior
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ev, nil
}

// ListAssessments returns the full assessment history, oldest first. The
// access itself is audited: history exports are compliance-relevant reads.
func (s *Service) ListAssessments(ctx context.Context, driverID id.DriverID) ([]*assessment.RiskAssessment, error) {
	driver, err := s.findScoped(ctx, driverID)
	if err != nil {
		return nil, err
	}
	list, err := s.store.ListByDriver(ctx, driverID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list assessments")
	}
	s.logAudit(ctx, audit.EventAssessmentsAccessed, driver, "")
	return list, nil
}

// LatestAssessment returns the newest assessment for a driver.
func (s *Service) LatestAssessment(ctx context.Context, driverID id.DriverID) (*assessment.RiskAssessment, error) {
	if _, err := s.findScoped(ctx, driverID); err != nil {
		return nil, err
	}
	latest, err := s.store.Latest(ctx, driverID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no assessment for driver")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load assessment")
	}
	return latest, nil
}

// findScoped loads a driver and enforces organisation scoping. A caller
// from another organisation sees not-found, never forbidden, so driver IDs
// do not leak across organisations. Contexts without an organisation (the
// recheck worker runs system-wide) skip the check.
func (s *Service) findScoped(ctx context.Context, driverID id.DriverID) (*models.Driver, error) {
	driver, err := s.drivers.FindByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "driver not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load driver")
	}
	if callerOrg := requestcontext.OrgID(ctx); !callerOrg.IsNil() && driver.OrgID != callerOrg {
		return nil, dErrors.New(dErrors.CodeNotFound, "driver not found")
	}
	return driver, nil
}

// updateDriverSnapshot folds what the registry reported into the stored
// driver attributes. Best-effort: a failed update is logged, not fatal, as
// the assessment itself is already persisted.
func (s *Service) updateDriverSnapshot(ctx context.Context, driver *models.Driver, record *assessment.LicenceRecord, now time.Time) {
	var categories []string
	for _, c := range record.Categories {
		categories = append(categories, c.Code)
	}
	var points int
	for _, e := range record.Endorsements {
		points += e.PenaltyPoints
	}

	driver.RecordSnapshot(categories, points, now)
	if err := s.drivers.Update(ctx, driver); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "driver snapshot update failed",
			"driver_id", driver.ID,
			"error", err,
		)
	}
}

func (s *Service) logTierTransition(ctx context.Context, driver *models.Driver, prior, current *assessment.RiskAssessment) {
	if prior == nil || prior.Tier == current.Tier || s.logger == nil {
		return
	}
	s.logger.InfoContext(ctx, "driver risk tier changed",
		"driver_id", driver.ID,
		"from", prior.Tier,
		"to", current.Tier,
		"score", current.Score,
	)
}

func (s *Service) recordFailure(ctx context.Context, span trace.Span, driver *models.Driver, trigger string, err error) {
	category := string(registry.CategoryOf(err))
	span.RecordError(err)
	span.SetStatus(codes.Error, "gather evidence")
	s.metrics.IncrementFailed(category)
	if s.logger != nil {
		s.logger.ErrorContext(ctx, "compliance check failed",
			"driver_id", driver.ID,
			"trigger", trigger,
			"category", category,
			"error", err,
		)
	}
	s.logAudit(ctx, audit.EventCheckFailed, driver, category)
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
			"action", action,
			"error", err,
		)
	}
}

// profileFor maps stored driver attributes into the engine's input shape.
func profileFor(d *models.Driver) assessment.DriverProfile {
	return assessment.DriverProfile{
		DateOfBirth:        d.DateOfBirth,
		LastMedicalAt:      d.LastMedicalAt,
		LicenceIssuedAt:    d.LicenceIssuedAt,
		PreviousCategories: d.PreviousCategories,
		PenaltyPoints:      d.PenaltyPoints,
	}
}

// mapRegistryError translates the registry taxonomy into domain errors the
// HTTP layer knows how to render.
func mapRegistryError(err error) error {
	switch registry.CategoryOf(err) {
	case registry.ErrorNotFound:
		return dErrors.Wrap(err, dErrors.CodeNotFound, "no licence record for driver")
	case registry.ErrorTimeout:
		return dErrors.Wrap(err, dErrors.CodeTimeout, "registry lookup timed out")
	case registry.ErrorAuthentication, registry.ErrorOutage, registry.ErrorBadData:
		return dErrors.Wrap(err, dErrors.CodeUpstreamFailure, "registry lookup failed")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "compliance check failed")
	}
}
