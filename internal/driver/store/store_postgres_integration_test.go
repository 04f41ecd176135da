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

	"driveguard/internal/driver/models"
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
	_, err := s.db.ExecContext(s.ctx, "TRUNCATE drivers")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) newDriver(orgID id.OrgID) *models.Driver {
	driver, err := models.NewDriver(id.NewDriverID(), orgID, "Sam Carter", "ABC123", s.now.AddDate(-35, 0, 0), s.now)
	s.Require().NoError(err)
	return driver
}

func (s *PostgresStoreSuite) TestCreateAndFindRoundTrip() {
	driver := s.newDriver(id.NewOrgID())
	medical := s.now.AddDate(0, -6, 0)
	driver.LastMedicalAt = &medical
	driver.PreviousCategories = []string{"B", "CE"}
	driver.PenaltyPoints = 6

	s.Require().NoError(s.store.Create(s.ctx, driver))

	got, err := s.store.FindByID(s.ctx, driver.ID)
	s.Require().NoError(err)

	s.Equal(driver.ID, got.ID)
	s.Equal(driver.OrgID, got.OrgID)
	s.Equal(driver.Name, got.Name)
	s.Equal(driver.LicenceNumber, got.LicenceNumber)
	s.Equal(driver.PreviousCategories, got.PreviousCategories)
	s.Equal(driver.PenaltyPoints, got.PenaltyPoints)
	s.Require().NotNil(got.LastMedicalAt)
	s.True(got.LastMedicalAt.Equal(medical))
	s.Nil(got.LicenceIssuedAt)
}

func (s *PostgresStoreSuite) TestCreateDuplicate() {
	driver := s.newDriver(id.NewOrgID())
	s.Require().NoError(s.store.Create(s.ctx, driver))
	s.Require().ErrorIs(s.store.Create(s.ctx, driver), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestFindNotFound() {
	_, err := s.store.FindByID(s.ctx, id.NewDriverID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListByOrg() {
	orgID := id.NewOrgID()
	first := s.newDriver(orgID)
	second := s.newDriver(orgID)
	second.CreatedAt = s.now.Add(time.Minute)

	s.Require().NoError(s.store.Create(s.ctx, second))
	s.Require().NoError(s.store.Create(s.ctx, first))
	s.Require().NoError(s.store.Create(s.ctx, s.newDriver(id.NewOrgID())))

	drivers, err := s.store.ListByOrg(s.ctx, orgID)
	s.Require().NoError(err)
	s.Require().Len(drivers, 2)
	s.Equal(first.ID, drivers[0].ID)
	s.Equal(second.ID, drivers[1].ID)
}

func (s *PostgresStoreSuite) TestUpdate() {
	driver := s.newDriver(id.NewOrgID())
	s.Require().NoError(s.store.Create(s.ctx, driver))

	driver.Name = "Sam Carter-Jones"
	driver.PreviousCategories = []string{"B"}
	driver.PenaltyPoints = 3
	driver.UpdatedAt = s.now.Add(time.Hour)
	s.Require().NoError(s.store.Update(s.ctx, driver))

	got, err := s.store.FindByID(s.ctx, driver.ID)
	s.Require().NoError(err)
	s.Equal("Sam Carter-Jones", got.Name)
	s.Equal([]string{"B"}, got.PreviousCategories)
	s.Equal(3, got.PenaltyPoints)
}

func (s *PostgresStoreSuite) TestUpdateNotFound() {
	s.Require().ErrorIs(s.store.Update(s.ctx, s.newDriver(id.NewOrgID())), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestDelete() {
	driver := s.newDriver(id.NewOrgID())
	s.Require().NoError(s.store.Create(s.ctx, driver))

	s.Require().NoError(s.store.Delete(s.ctx, driver.ID))

	_, err := s.store.FindByID(s.ctx, driver.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
	s.Require().ErrorIs(s.store.Delete(s.ctx, driver.ID), sentinel.ErrNotFound)
}
