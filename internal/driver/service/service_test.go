package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"driveguard/internal/driver/models"
	"driveguard/internal/driver/store"
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
	orgID   id.OrgID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.emitter = &recordingEmitter{}
	s.service = New(store.NewMemory(), WithAuditPublisher(s.emitter))
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.orgID = id.NewOrgID()
}

func (s *ServiceSuite) createDriver() *models.Driver {
	driver, err := s.service.Create(s.ctx, s.orgID, CreateDriverParams{
		Name:          "Sam Carter",
		LicenceNumber: "carte906054sj9ab",
		DateOfBirth:   s.now.AddDate(-35, 0, 0),
	})
	s.Require().NoError(err)
	return driver
}

func (s *ServiceSuite) TestCreate() {
	driver := s.createDriver()

	s.False(driver.ID.IsNil())
	s.Equal(s.orgID, driver.OrgID)
	s.Equal("CARTE906054SJ9AB", driver.LicenceNumber, "licence number is normalized to upper case")
	s.Equal(s.now, driver.CreatedAt)

	s.Require().Len(s.emitter.events, 1)
	s.Equal(string(audit.EventDriverCreated), s.emitter.events[0].Action)
	s.Equal(driver.ID, s.emitter.events[0].DriverID)
	s.Equal(s.orgID, s.emitter.events[0].OrgID)
}

func (s *ServiceSuite) TestCreateValidation() {
	_, err := s.service.Create(s.ctx, s.orgID, CreateDriverParams{
		Name:          "",
		LicenceNumber: "ABC123",
		DateOfBirth:   s.now.AddDate(-35, 0, 0),
	})
	s.Require().Error(err)
	s.True(dErrors.IsCode(err, dErrors.CodeInvariantViolation))

	_, err = s.service.Create(s.ctx, s.orgID, CreateDriverParams{
		Name:          "Sam Carter",
		LicenceNumber: "ABC123",
		DateOfBirth:   s.now.AddDate(1, 0, 0),
	})
	s.Require().Error(err)
	s.True(dErrors.IsCode(err, dErrors.CodeInvariantViolation), "future date of birth is rejected")

	s.Empty(s.emitter.events, "no audit events for rejected creates")
}

func (s *ServiceSuite) TestGet() {
	driver := s.createDriver()

	got, err := s.service.Get(s.ctx, s.orgID, driver.ID)
	s.Require().NoError(err)
	s.Equal(driver.ID, got.ID)
}

func (s *ServiceSuite) TestGetScopedToOrg() {
	driver := s.createDriver()

	_, err := s.service.Get(s.ctx, id.NewOrgID(), driver.ID)
	s.Require().Error(err)
	s.True(dErrors.IsCode(err, dErrors.CodeNotFound), "foreign org sees not found, not forbidden")
}

func (s *ServiceSuite) TestGetUnknown() {
	_, err := s.service.Get(s.ctx, s.orgID, id.NewDriverID())
	s.Require().Error(err)
	s.True(dErrors.IsCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestList() {
	first := s.createDriver()

	second, err := s.service.Create(requestcontext.WithTime(s.ctx, s.now.Add(time.Minute)), s.orgID, CreateDriverParams{
		Name:          "Alex Reid",
		LicenceNumber: "REID0906054AR9CD",
		DateOfBirth:   s.now.AddDate(-28, 0, 0),
	})
	s.Require().NoError(err)

	// Another org's driver must not appear.
	_, err = s.service.Create(s.ctx, id.NewOrgID(), CreateDriverParams{
		Name:          "Jo Park",
		LicenceNumber: "PARK0906054JP9EF",
		DateOfBirth:   s.now.AddDate(-40, 0, 0),
	})
	s.Require().NoError(err)

	drivers, err := s.service.List(s.ctx, s.orgID)
	s.Require().NoError(err)
	s.Require().Len(drivers, 2)
	s.Equal(first.ID, drivers[0].ID)
	s.Equal(second.ID, drivers[1].ID)
}

func (s *ServiceSuite) TestUpdate() {
	driver := s.createDriver()
	later := requestcontext.WithTime(s.ctx, s.now.Add(time.Hour))

	name := "Sam Carter-Jones"
	medical := s.now.AddDate(0, -1, 0)
	updated, err := s.service.Update(later, s.orgID, driver.ID, UpdateDriverParams{
		Name:          &name,
		LastMedicalAt: &medical,
	})
	s.Require().NoError(err)

	s.Equal(name, updated.Name)
	s.Require().NotNil(updated.LastMedicalAt)
	s.Equal(medical, *updated.LastMedicalAt)
	s.Equal(s.now.Add(time.Hour), updated.UpdatedAt)
	s.Equal(driver.LicenceNumber, updated.LicenceNumber, "unset fields are unchanged")

	s.Require().Len(s.emitter.events, 2)
	s.Equal(string(audit.EventDriverUpdated), s.emitter.events[1].Action)
}

func (s *ServiceSuite) TestUpdateEmptyName() {
	driver := s.createDriver()

	name := "   "
	_, err := s.service.Update(s.ctx, s.orgID, driver.ID, UpdateDriverParams{Name: &name})
	s.Require().Error(err)
	s.True(dErrors.IsCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestDelete() {
	driver := s.createDriver()

	s.Require().NoError(s.service.Delete(s.ctx, s.orgID, driver.ID))

	_, err := s.service.Get(s.ctx, s.orgID, driver.ID)
	s.True(dErrors.IsCode(err, dErrors.CodeNotFound))

	s.Require().Len(s.emitter.events, 2)
	s.Equal(string(audit.EventDriverDeleted), s.emitter.events[1].Action)
}

func (s *ServiceSuite) TestDeleteScopedToOrg() {
	driver := s.createDriver()

	err := s.service.Delete(s.ctx, id.NewOrgID(), driver.ID)
	s.Require().Error(err)
	s.True(dErrors.IsCode(err, dErrors.CodeNotFound))

	_, err = s.service.Get(s.ctx, s.orgID, driver.ID)
	s.NoError(err, "driver survives a foreign org's delete attempt")
}
