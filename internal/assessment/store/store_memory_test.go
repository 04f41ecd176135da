package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"driveguard/internal/assessment"
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

func (s *MemoryStoreSuite) newAssessment(driverID id.DriverID, assessedAt time.Time, tier assessment.RiskTier) *assessment.RiskAssessment {
	months := map[assessment.RiskTier]int{
		assessment.TierLow:    6,
		assessment.TierMedium: 3,
		assessment.TierHigh:   1,
	}
	return &assessment.RiskAssessment{
		ID:           id.NewAssessmentID(),
		DriverID:     driverID,
		LicenceValid: tier != assessment.TierHigh,
		Tier:         tier,
		Factors:      []string{"factor"},
		AssessedAt:   assessedAt,
		NextCheckDue: assessedAt.AddDate(0, months[tier], 0),
	}
}

func (s *MemoryStoreSuite) TestSaveAndListByDriver() {
	driverID := id.NewDriverID()
	first := s.newAssessment(driverID, s.now.AddDate(0, -6, 0), assessment.TierLow)
	second := s.newAssessment(driverID, s.now, assessment.TierMedium)

	s.Require().NoError(s.store.Save(s.ctx, first))
	s.Require().NoError(s.store.Save(s.ctx, second))
	s.Require().NoError(s.store.Save(s.ctx, s.newAssessment(id.NewDriverID(), s.now, assessment.TierLow)))

	history, err := s.store.ListByDriver(s.ctx, driverID)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(first.ID, history[0].ID)
	s.Equal(second.ID, history[1].ID)
}

func (s *MemoryStoreSuite) TestListByDriverEmpty() {
	history, err := s.store.ListByDriver(s.ctx, id.NewDriverID())
	s.Require().NoError(err)
	s.Empty(history)
}

func (s *MemoryStoreSuite) TestLatest() {
	driverID := id.NewDriverID()
	old := s.newAssessment(driverID, s.now.AddDate(0, -6, 0), assessment.TierHigh)
	newest := s.newAssessment(driverID, s.now, assessment.TierLow)

	// Insertion order must not matter, only AssessedAt.
	s.Require().NoError(s.store.Save(s.ctx, newest))
	s.Require().NoError(s.store.Save(s.ctx, old))

	got, err := s.store.Latest(s.ctx, driverID)
	s.Require().NoError(err)
	s.Equal(newest.ID, got.ID)
}

func (s *MemoryStoreSuite) TestLatestNotFound() {
	_, err := s.store.Latest(s.ctx, id.NewDriverID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestReadsReturnCopies() {
	driverID := id.NewDriverID()
	s.Require().NoError(s.store.Save(s.ctx, s.newAssessment(driverID, s.now, assessment.TierLow)))

	got, err := s.store.Latest(s.ctx, driverID)
	s.Require().NoError(err)
	got.Score = 999
	got.Factors[0] = "mutated"

	again, err := s.store.Latest(s.ctx, driverID)
	s.Require().NoError(err)
	s.Zero(again.Score)
	s.Equal("factor", again.Factors[0])
}

func (s *MemoryStoreSuite) TestListDueForRecheck() {
	overdueLong := id.NewDriverID()
	overdueShort := id.NewDriverID()
	current := id.NewDriverID()

	// Latest assessment decides: this driver was overdue once but has since
	// been rechecked.
	s.Require().NoError(s.store.Save(s.ctx, s.newAssessment(current, s.now.AddDate(0, -8, 0), assessment.TierLow)))
	s.Require().NoError(s.store.Save(s.ctx, s.newAssessment(current, s.now, assessment.TierLow)))

	s.Require().NoError(s.store.Save(s.ctx, s.newAssessment(overdueShort, s.now.AddDate(0, -2, 0), assessment.TierHigh)))
	s.Require().NoError(s.store.Save(s.ctx, s.newAssessment(overdueLong, s.now.AddDate(0, -12, 0), assessment.TierLow)))

	due, err := s.store.ListDueForRecheck(s.ctx, s.now, 10)
	s.Require().NoError(err)
	s.Equal([]id.DriverID{overdueLong, overdueShort}, due, "most overdue first")
}

func (s *MemoryStoreSuite) TestListDueForRecheckLimit() {
	for i := 0; i < 5; i++ {
		driverID := id.NewDriverID()
		s.Require().NoError(s.store.Save(s.ctx, s.newAssessment(driverID, s.now.AddDate(-1, 0, -i), assessment.TierHigh)))
	}

	due, err := s.store.ListDueForRecheck(s.ctx, s.now, 2)
	s.Require().NoError(err)
	s.Len(due, 2)
}

func (s *MemoryStoreSuite) TestListDueForRecheckBoundary() {
	driverID := id.NewDriverID()
	a := s.newAssessment(driverID, s.now, assessment.TierLow)
	a.NextCheckDue = s.now

	s.Require().NoError(s.store.Save(s.ctx, a))

	due, err := s.store.ListDueForRecheck(s.ctx, s.now, 10)
	s.Require().NoError(err)
	s.Equal([]id.DriverID{driverID}, due, "due exactly now counts as due")

	due, err = s.store.ListDueForRecheck(s.ctx, s.now.Add(-time.Second), 10)
	s.Require().NoError(err)
	s.Empty(due)
}
