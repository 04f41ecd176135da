package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	id "driveguard/pkg/domain"
	audit "driveguard/pkg/platform/audit"
)

type AuditStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func (s *AuditStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func TestAuditStoreSuite(t *testing.T) {
	suite.Run(t, new(AuditStoreSuite))
}

func (s *AuditStoreSuite) TestAppendAndListByDriver() {
	driverID := id.NewDriverID()
	other := id.NewDriverID()

	s.Require().NoError(s.store.Append(s.ctx, audit.Event{
		DriverID: driverID,
		Action:   string(audit.EventDriverCreated),
	}))
	s.Require().NoError(s.store.Append(s.ctx, audit.Event{
		DriverID: driverID,
		Action:   string(audit.EventCheckCompleted),
	}))
	s.Require().NoError(s.store.Append(s.ctx, audit.Event{
		DriverID: other,
		Action:   string(audit.EventDriverCreated),
	}))

	events, err := s.store.ListByDriver(s.ctx, driverID)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(string(audit.EventDriverCreated), events[0].Action)
	s.Equal(string(audit.EventCheckCompleted), events[1].Action)
}

func (s *AuditStoreSuite) TestListByDriverUnknown() {
	events, err := s.store.ListByDriver(s.ctx, id.NewDriverID())
	s.Require().NoError(err)
	s.Empty(events)
}

func (s *AuditStoreSuite) TestListRecent() {
	for i := range 5 {
		s.Require().NoError(s.store.Append(s.ctx, audit.Event{
			DriverID: id.NewDriverID(),
			Action:   string(audit.EventRecheckRun),
			Reason:   fmt.Sprintf("run-%d", i),
		}))
	}

	recent, err := s.store.ListRecent(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(recent, 2)
	s.Equal("run-3", recent[0].Reason)
	s.Equal("run-4", recent[1].Reason)

	all, err := s.store.ListRecent(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(all, 5)
}

func (s *AuditStoreSuite) TestClear() {
	driverID := id.NewDriverID()
	s.Require().NoError(s.store.Append(s.ctx, audit.Event{DriverID: driverID}))
	s.store.Clear()

	events, err := s.store.ListByDriver(s.ctx, driverID)
	s.Require().NoError(err)
	s.Empty(events)
}
