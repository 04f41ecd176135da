package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"driveguard/internal/org/store"
	id "driveguard/pkg/domain"
	dErrors "driveguard/pkg/domain-errors"
	"driveguard/pkg/platform/audit"
	"driveguard/pkg/requestcontext"
)

type recordingEmitter struct {
	events []audit.Event
}

func (r *recordingEmitter) Emit(_ context.Context, event audit.Event) error {
	r.events = append(r.events, event)
	return nil
}

type ServiceSuite struct {
	suite.Suite
	service *Service
	emitter *recordingEmitter
	ctx     context.Context
	now     time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.emitter = &recordingEmitter{}
	s.service = New(store.NewMemory(), WithAuditPublisher(s.emitter))
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *ServiceSuite) TestCreate() {
	org, secret, err := s.service.Create(s.ctx, "Acme Haulage")
	s.Require().NoError(err)

	s.False(org.ID.IsNil())
	s.False(org.APIUserID.IsNil())
	s.Equal("Acme Haulage", org.Name)
	s.NotEmpty(secret)
	s.NotEqual(secret, org.SecretHash, "plaintext secret is never stored")
	s.Equal(s.now, org.CreatedAt)

	s.Require().Len(s.emitter.events, 1)
	s.Equal(string(audit.EventOrgCreated), s.emitter.events[0].Action)
	s.Equal(org.ID, s.emitter.events[0].OrgID)
}

func (s *ServiceSuite) TestCreateEmptyName() {
	_, _, err := s.service.Create(s.ctx, "   ")
	s.Require().Error(err)
	s.True(dErrors.IsCode(err, dErrors.CodeInvariantViolation))
}

func (s *ServiceSuite) TestCreateDuplicateName() {
	_, _, err := s.service.Create(s.ctx, "Acme Haulage")
	s.Require().NoError(err)

	_, _, err = s.service.Create(s.ctx, "Acme Haulage")
	s.Require().Error(err)
	s.True(dErrors.IsCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestAuthenticate() {
	org, secret, err := s.service.Create(s.ctx, "Acme Haulage")
	s.Require().NoError(err)

	got, err := s.service.Authenticate(s.ctx, org.ID, secret)
	s.Require().NoError(err)
	s.Equal(org.ID, got.ID)
}

func (s *ServiceSuite) TestAuthenticateWrongSecret() {
	org, _, err := s.service.Create(s.ctx, "Acme Haulage")
	s.Require().NoError(err)

	_, err = s.service.Authenticate(s.ctx, org.ID, "wrong-secret")
	s.Require().Error(err)
	s.True(dErrors.IsCode(err, dErrors.CodeUnauthorized))

	s.Require().Len(s.emitter.events, 2)
	s.Equal(string(audit.EventAuthFailed), s.emitter.events[1].Action)
	s.Equal("denied", s.emitter.events[1].Outcome)
}

func (s *ServiceSuite) TestAuthenticateUnknownOrg() {
	_, err := s.service.Authenticate(s.ctx, id.NewOrgID(), "anything")
	s.Require().Error(err)
	s.True(dErrors.IsCode(err, dErrors.CodeUnauthorized), "unknown org and wrong secret look the same")
}

func (s *ServiceSuite) TestRotateCredential() {
	org, oldSecret, err := s.service.Create(s.ctx, "Acme Haulage")
	s.Require().NoError(err)

	newSecret, err := s.service.RotateCredential(s.ctx, org.ID)
	s.Require().NoError(err)
	s.NotEqual(oldSecret, newSecret)

	_, err = s.service.Authenticate(s.ctx, org.ID, oldSecret)
	s.Require().Error(err)
	s.True(dErrors.IsCode(err, dErrors.CodeUnauthorized), "old secret stops working immediately")

	_, err = s.service.Authenticate(s.ctx, org.ID, newSecret)
	s.Require().NoError(err)

	s.Equal(string(audit.EventCredentialRotated), s.emitter.events[1].Action)
}

func (s *ServiceSuite) TestRotateCredentialUnknownOrg() {
	_, err := s.service.RotateCredential(s.ctx, id.NewOrgID())
	s.Require().Error(err)
	s.True(dErrors.IsCode(err, dErrors.CodeNotFound))
}
