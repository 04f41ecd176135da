package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driveguard/internal/assessment/service"
	assessmentstore "driveguard/internal/assessment/store"
	"driveguard/internal/driver/models"
	driverstore "driveguard/internal/driver/store"
	"driveguard/internal/registry"
	id "driveguard/pkg/domain"
	"driveguard/pkg/testutil"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	router  chi.Router
	drivers *driverstore.MemoryStore
	org     id.OrgID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	drivers := driverstore.NewMemory()
	svc := service.New(
		registry.NewMockWithClock(func() time.Time { return testNow }),
		drivers,
		assessmentstore.NewMemory(),
		service.WithLogger(logger),
	)

	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return &fixture{router: r, drivers: drivers, org: id.NewOrgID()}
}

func (f *fixture) seedDriver(t *testing.T) *models.Driver {
	t.Helper()
	driver, err := models.NewDriver(id.NewDriverID(), f.org, "Sam Carter", "CARTE906054SJ9AB", testNow.AddDate(-35, 0, 0), testNow)
	require.NoError(t, err)
	require.NoError(t, f.drivers.Create(t.Context(), driver))
	return driver
}

// authed authenticates the request as a user of the fixture's organisation.
func (f *fixture) authed(req *http.Request) *http.Request {
	return testutil.WithTime(testutil.WithAuth(req, id.NewUserID().String(), f.org.String()), testNow)
}

// authedAs authenticates the request as a user of another organisation.
func (f *fixture) authedAs(req *http.Request, org id.OrgID) *http.Request {
	return testutil.WithTime(testutil.WithAuth(req, id.NewUserID().String(), org.String()), testNow)
}

func TestRunCheck(t *testing.T) {
	f := newFixture(t)
	driver := f.seedDriver(t)

	req := testutil.NewRequest(t, http.MethodPost, "/drivers/"+driver.ID.String()+"/checks")
	rr := testutil.DoRequest(f.router, f.authed(req))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	resp := testutil.DecodeJSON[AssessmentResponse](t, rr)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, driver.ID.String(), resp.DriverID)
	assert.Contains(t, []string{"low", "medium", "high"}, resp.Tier)
	assert.Equal(t, testNow, resp.AssessedAt.UTC())
	assert.NotNil(t, resp.Factors)
	assert.NotNil(t, resp.Recommendations)
}

func TestRunCheckUnknownDriver(t *testing.T) {
	f := newFixture(t)

	req := testutil.NewRequest(t, http.MethodPost, "/drivers/"+id.NewDriverID().String()+"/checks")
	rr := testutil.DoRequest(f.router, f.authed(req))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRunCheckBadDriverID(t *testing.T) {
	f := newFixture(t)

	req := testutil.NewRequest(t, http.MethodPost, "/drivers/not-a-uuid/checks")
	rr := testutil.DoRequest(f.router, f.authed(req))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRunCheckUnauthenticated(t *testing.T) {
	f := newFixture(t)
	driver := f.seedDriver(t)

	req := testutil.NewRequest(t, http.MethodPost, "/drivers/"+driver.ID.String()+"/checks")
	rr := testutil.DoRequest(f.router, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestListAssessments(t *testing.T) {
	f := newFixture(t)
	driver := f.seedDriver(t)

	for i := 0; i < 2; i++ {
		req := testutil.NewRequest(t, http.MethodPost, "/drivers/"+driver.ID.String()+"/checks")
		rr := testutil.DoRequest(f.router, f.authed(req))
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	req := testutil.NewRequest(t, http.MethodGet, "/drivers/"+driver.ID.String()+"/assessments")
	rr := testutil.DoRequest(f.router, f.authed(req))
	require.Equal(t, http.StatusOK, rr.Code)

	resp := testutil.DecodeJSON[ListAssessmentsResponse](t, rr)
	assert.Len(t, resp.Assessments, 2)
}

func TestListAssessmentsEmptyHistory(t *testing.T) {
	f := newFixture(t)
	driver := f.seedDriver(t)

	req := testutil.NewRequest(t, http.MethodGet, "/drivers/"+driver.ID.String()+"/assessments")
	rr := testutil.DoRequest(f.router, f.authed(req))
	require.Equal(t, http.StatusOK, rr.Code)

	resp := testutil.DecodeJSON[ListAssessmentsResponse](t, rr)
	assert.Empty(t, resp.Assessments)
}

func TestLatestAssessment(t *testing.T) {
	f := newFixture(t)
	driver := f.seedDriver(t)

	checkReq := testutil.NewRequest(t, http.MethodPost, "/drivers/"+driver.ID.String()+"/checks")
	checkRR := testutil.DoRequest(f.router, f.authed(checkReq))
	require.Equal(t, http.StatusCreated, checkRR.Code)
	created := testutil.DecodeJSON[AssessmentResponse](t, checkRR)

	req := testutil.NewRequest(t, http.MethodGet, "/drivers/"+driver.ID.String()+"/assessments/latest")
	rr := testutil.DoRequest(f.router, f.authed(req))
	require.Equal(t, http.StatusOK, rr.Code)

	resp := testutil.DecodeJSON[AssessmentResponse](t, rr)
	assert.Equal(t, created.ID, resp.ID)
}

func TestAssessmentsForeignOrg(t *testing.T) {
	f := newFixture(t)
	driver := f.seedDriver(t)

	checkReq := testutil.NewRequest(t, http.MethodPost, "/drivers/"+driver.ID.String()+"/checks")
	require.Equal(t, http.StatusCreated, testutil.DoRequest(f.router, f.authed(checkReq)).Code)

	// Another organisation sees not-found everywhere, same as the driver
	// endpoints: the ID alone must not confirm the driver exists.
	otherOrg := id.NewOrgID()
	paths := []struct {
		method, path string
	}{
		{http.MethodPost, "/drivers/" + driver.ID.String() + "/checks"},
		{http.MethodGet, "/drivers/" + driver.ID.String() + "/assessments"},
		{http.MethodGet, "/drivers/" + driver.ID.String() + "/assessments/latest"},
	}
	for _, p := range paths {
		req := testutil.NewRequest(t, p.method, p.path)
		rr := testutil.DoRequest(f.router, f.authedAs(req, otherOrg))
		assert.Equal(t, http.StatusNotFound, rr.Code, p.path)
	}
}

func TestLatestAssessmentNone(t *testing.T) {
	f := newFixture(t)
	driver := f.seedDriver(t)

	req := testutil.NewRequest(t, http.MethodGet, "/drivers/"+driver.ID.String()+"/assessments/latest")
	rr := testutil.DoRequest(f.router, f.authed(req))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
