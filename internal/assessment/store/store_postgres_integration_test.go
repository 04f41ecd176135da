//go:build integration

package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"driveguard/internal/assessment"
	"driveguard/internal/platform/postgres"
	id "driveguard/pkg/domain"
	"driveguard/pkg/platform/sentinel"
)

type PostgresStoreSuite struct {
	suite.Suite
	db    *sql.DB
	store *PostgresStore
	ctx   context.Context
	now   time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcpostgres.Run(s.ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("driveguard"),
		tcpostgres.WithUsername("driveguard"),
		tcpostgres.WithPassword("driveguard"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	testcontainers.CleanupContainer(s.T(), container)

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.db, err = sql.Open("postgres", dsn)
	s.Require().NoError(err)
	s.Require().NoError(s.db.PingContext(s.ctx))
	s.Require().NoError(postgres.Migrate(s.ctx, s.db))

	s.store = NewPostgres(s.db)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	_, err := s.db.ExecContext(s.ctx, "TRUNCATE assessments")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) newAssessment(driverID id.DriverID, assessedAt time.Time) *assessment.RiskAssessment {
	return &assessment.RiskAssessment{
		ID:              id.NewAssessmentID(),
		DriverID:        driverID,
		LicenceValid:    true,
		Score:           15,
		Tier:            assessment.TierMedium,
		Factors:         []string{"Penalty points: 6"},
		Recommendations: []string{"Schedule driver awareness training"},
		AssessedAt:      assessedAt,
		NextCheckDue:    assessedAt.AddDate(0, 3, 0),
	}
}

func (s *PostgresStoreSuite) TestSaveAndListRoundTrip() {
	driverID := id.NewDriverID()
	first := s.newAssessment(driverID, s.now.AddDate(0, -3, 0))
	second := s.newAssessment(driverID, s.now)

	s.Require().NoError(s.store.Save(s.ctx, first))
	s.Require().NoError(s.store.Save(s.ctx, second))

	history, err := s.store.ListByDriver(s.ctx, driverID)
	s.Require().NoError(err)
	s.Require().Len(history, 2)

	s.Equal(first.ID, history[0].ID)
	s.Equal(first.Factors, history[0].Factors)
	s.Equal(first.Recommendations, history[0].Recommendations)
	s.Equal(first.Tier, history[0].Tier)
	s.True(history[0].AssessedAt.Equal(first.AssessedAt))
	s.Equal(second.ID, history[1].ID)
}

func (s *PostgresStoreSuite) TestLatest() {
	driverID := id.NewDriverID()
	s.Require().NoError(s.store.Save(s.ctx, s.newAssessment(driverID, s.now.AddDate(0, -3, 0))))
	newest := s.newAssessment(driverID, s.now)
	s.Require().NoError(s.store.Save(s.ctx, newest))

	got, err := s.store.Latest(s.ctx, driverID)
	s.Require().NoError(err)
	s.Equal(newest.ID, got.ID)
}

func (s *PostgresStoreSuite) TestLatestNotFound() {
	_, err := s.store.Latest(s.ctx, id.NewDriverID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListDueForRecheck() {
	overdue := id.NewDriverID()
	current := id.NewDriverID()

	s.Require().NoError(s.store.Save(s.ctx, s.newAssessment(overdue, s.now.AddDate(0, -6, 0))))
	s.Require().NoError(s.store.Save(s.ctx, s.newAssessment(current, s.now)))

	// A driver who was overdue but has a newer current assessment is not due.
	rechecked := id.NewDriverID()
	s.Require().NoError(s.store.Save(s.ctx, s.newAssessment(rechecked, s.now.AddDate(0, -6, 0))))
	s.Require().NoError(s.store.Save(s.ctx, s.newAssessment(rechecked, s.now)))

	due, err := s.store.ListDueForRecheck(s.ctx, s.now, 10)
	s.Require().NoError(err)
	s.Equal([]id.DriverID{overdue}, due)
}

func (s *PostgresStoreSuite) TestListDueForRecheckLimit() {
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.store.Save(s.ctx, s.newAssessment(id.NewDriverID(), s.now.AddDate(-1, 0, 0))))
	}

	due, err := s.store.ListDueForRecheck(s.ctx, s.now, 3)
	s.Require().NoError(err)
	s.Len(due, 3)
}
