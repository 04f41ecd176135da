// Package service manages organisation accounts and their API credentials.
// Plaintext secrets exist only in the return values of Create and
// RotateCredential; everywhere else only the bcrypt hash is held.
package service

import (
	"context"
	"errors"
	"log/slog"

	"driveguard/internal/org/models"
	"driveguard/internal/org/secrets"
	id "driveguard/pkg/domain"
	dErrors "driveguard/pkg/domain-errors"
	"driveguard/pkg/platform/audit"
	"driveguard/pkg/platform/sentinel"
	"driveguard/pkg/requestcontext"
)

// Store defines the persistence interface for organisations.
type Store interface {
	Create(ctx context.Context, org *models.Org) error
	FindByID(ctx context.Context, orgID id.OrgID) (*models.Org, error)
	Update(ctx context.Context, org *models.Org) error
}

// Service coordinates organisation accounts, credentials and auditing.
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

// Create registers an organisation and returns it along with the one-time
// plaintext API secret.
func (s *Service) Create(ctx context.Context, name string) (*models.Org, string, error) {
	secret, hash, err := secrets.Generate()
	if err != nil {
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate credential")
	}

	org, err := models.NewOrg(id.NewOrgID(), name, hash, requestcontext.Now(ctx))
	if err != nil {
		return nil, "", err
	}

	if err := s.store.Create(ctx, org); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, "", dErrors.New(dErrors.CodeConflict, "organisation name already taken")
		}
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to create organisation")
	}

	s.logAudit(ctx, audit.EventOrgCreated, org, "created")
	return org, secret, nil
}

func (s *Service) Get(ctx context.Context, orgID id.OrgID) (*models.Org, error) {
	org, err := s.store.FindByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "organisation not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load organisation")
	}
	return org, nil
}

// RotateCredential replaces the organisation's API secret and returns the
// new plaintext once. The old secret stops working immediately.
func (s *Service) RotateCredential(ctx context.Context, orgID id.OrgID) (string, error) {
	org, err := s.Get(ctx, orgID)
	if err != nil {
		return "", err
	}

	secret, hash, err := secrets.Generate()
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate credential")
	}

	org.SecretHash = hash
	org.UpdatedAt = requestcontext.Now(ctx)
	if err := s.store.Update(ctx, org); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to rotate credential")
	}

	s.logAudit(ctx, audit.EventCredentialRotated, org, "rotated")
	return secret, nil
}

// Authenticate verifies an organisation credential and returns the org on
// success. Unknown org and wrong secret are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, orgID id.OrgID, secret string) (*models.Org, error) {
	org, err := s.store.FindByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.logAuthFailure(ctx, orgID, "unknown organisation")
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load organisation")
	}
	if !secrets.Verify(org.SecretHash, secret) {
		s.logAuthFailure(ctx, orgID, "credential mismatch")
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}
	return org, nil
}

func (s *Service) logAuthFailure(ctx context.Context, orgID id.OrgID, reason string) {
	if s.logger != nil {
		s.logger.WarnContext(ctx, "organisation authentication failed",
			"org_id", orgID,
			"reason", reason,
		)
	}
	if s.auditor == nil {
		return
	}
	event := audit.Event{
		Category:  audit.EventAuthFailed.Category(),
		Timestamp: requestcontext.Now(ctx),
		OrgID:     orgID,
		Action:    string(audit.EventAuthFailed),
		Outcome:   "denied",
		Reason:    reason,
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
	}
	if err := s.auditor.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}

func (s *Service) logAudit(ctx context.Context, action audit.AuditEvent, org *models.Org, outcome string) {
	if s.auditor == nil {
		return
	}
	event := audit.Event{
		Category:  action.Category(),
		Timestamp: requestcontext.Now(ctx),
		UserID:    requestcontext.UserID(ctx),
		OrgID:     org.ID,
		Action:    string(action),
		Outcome:   outcome,
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
	}
	if err := s.auditor.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}
