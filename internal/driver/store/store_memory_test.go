package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"driveguard/internal/driver/models"
	id "driveguard/pkg/domain"
	"driveguard/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *MemoryStore
	ctx   context.Context
	now   time.Time
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemory()
	s.ctx = context.Background()
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *MemoryStoreSuite) newDriver(orgID id.OrgID, createdAt time.Time) *models.Driver {
	driver, err := models.NewDriver(id.NewDriverID(), orgID, "Sam Carter", "ABC123", createdAt.AddDate(-35, 0, 0), createdAt)
	s.Require().NoError(err)
	return driver
}

func (s *MemoryStoreSuite) TestCreateAndFind() {
	driver := s.newDriver(id.NewOrgID(), s.now)
	s.Require().NoError(s.store.Create(s.ctx, driver))

	got, err := s.store.FindByID(s.ctx, driver.ID)
	s.Require().NoError(err)
	s.Equal(driver.ID, got.ID)
	s.Equal(driver.LicenceNumber, got.LicenceNumber)
}

func (s *MemoryStoreSuite) TestCreateDuplicate() {
	driver := s.newDriver(id.NewOrgID(), s.now)
	s.Require().NoError(s.store.Create(s.ctx, driver))
	s.Require().ErrorIs(s.store.Create(s.ctx, driver), sentinel.ErrConflict)
}

func (s *MemoryStoreSuite) TestFindNotFound() {
	_, err := s.store.FindByID(s.ctx, id.NewDriverID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestListByOrg() {
	orgID := id.NewOrgID()
	first := s.newDriver(orgID, s.now)
	second := s.newDriver(orgID, s.now.Add(time.Minute))

	s.Require().NoError(s.store.Create(s.ctx, second))
	s.Require().NoError(s.store.Create(s.ctx, first))
	s.Require().NoError(s.store.Create(s.ctx, s.newDriver(id.NewOrgID(), s.now)))

	drivers, err := s.store.ListByOrg(s.ctx, orgID)
	s.Require().NoError(err)
	s.Require().Len(drivers, 2)
	s.Equal(first.ID, drivers[0].ID, "ordered by creation time")
	s.Equal(second.ID, drivers[1].ID)
}

func (s *MemoryStoreSuite) TestUpdate() {
	driver := s.newDriver(id.NewOrgID(), s.now)
	s.Require().NoError(s.store.Create(s.ctx, driver))

	driver.Name = "Sam Carter-Jones"
	driver.PenaltyPoints = 6
	s.Require().NoError(s.store.Update(s.ctx, driver))

	got, err := s.store.FindByID(s.ctx, driver.ID)
	s.Require().NoError(err)
	s.Equal("Sam Carter-Jones", got.Name)
	s.Equal(6, got.PenaltyPoints)
}

func (s *MemoryStoreSuite) TestUpdateNotFound() {
	driver := s.newDriver(id.NewOrgID(), s.now)
	s.Require().ErrorIs(s.store.Update(s.ctx, driver), sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestDelete() {
	driver := s.newDriver(id.NewOrgID(), s.now)
	s.Require().NoError(s.store.Create(s.ctx, driver))

	s.Require().NoError(s.store.Delete(s.ctx, driver.ID))

	_, err := s.store.FindByID(s.ctx, driver.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
	s.Require().ErrorIs(s.store.Delete(s.ctx, driver.ID), sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestReadsReturnCopies() {
	driver := s.newDriver(id.NewOrgID(), s.now)
	driver.PreviousCategories = []string{"B"}
	s.Require().NoError(s.store.Create(s.ctx, driver))

	got, err := s.store.FindByID(s.ctx, driver.ID)
	s.Require().NoError(err)
	got.Name = "mutated"
	got.PreviousCategories[0] = "mutated"

	again, err := s.store.FindByID(s.ctx, driver.ID)
	s.Require().NoError(err)
	s.Equal("Sam Carter", again.Name)
	s.Equal([]string{"B"}, again.PreviousCategories)
}
