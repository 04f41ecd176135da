// Package handler exposes the driver CRUD endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"driveguard/internal/driver/models"
	"driveguard/internal/driver/service"
	id "driveguard/pkg/domain"
	dErrors "driveguard/pkg/domain-errors"
	"driveguard/pkg/platform/httputil"
	"driveguard/pkg/requestcontext"
)

// Service defines the interface for driver operations.
type Service interface {
	Create(ctx context.Context, orgID id.OrgID, params service.CreateDriverParams) (*models.Driver, error)
	Get(ctx context.Context, orgID id.OrgID, driverID id.DriverID) (*models.Driver, error)
	List(ctx context.Context, orgID id.OrgID) ([]*models.Driver, error)
	Update(ctx context.Context, orgID id.OrgID, driverID id.DriverID, params service.UpdateDriverParams) (*models.Driver, error)
	Delete(ctx context.Context, orgID id.OrgID, driverID id.DriverID) error
}

// Handler wires driver endpoints to the driver service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a driver handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts driver endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/drivers", h.HandleCreate)
	r.Get("/drivers", h.HandleList)
	r.Get("/drivers/{driverID}", h.HandleGet)
	r.Put("/drivers/{driverID}", h.HandleUpdate)
	r.Delete("/drivers/{driverID}", h.HandleDelete)
}

// HandleCreate handles POST /drivers requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	orgID, ok := h.callerOrg(w, ctx)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[CreateDriverRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	driver, err := h.service.Create(ctx, orgID, service.CreateDriverParams{
		Name:            req.Name,
		LicenceNumber:   req.LicenceNumber,
		DateOfBirth:     req.DateOfBirth,
		LastMedicalAt:   req.LastMedicalAt,
		LicenceIssuedAt: req.LicenceIssuedAt,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "driver created",
		"request_id", requestID,
		"driver_id", driver.ID,
		"org_id", orgID,
	)

	httputil.WriteJSON(w, http.StatusCreated, FromDriver(driver))
}

// HandleList handles GET /drivers requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orgID, ok := h.callerOrg(w, ctx)
	if !ok {
		return
	}

	drivers, err := h.service.List(ctx, orgID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromDriverList(drivers))
}

// HandleGet handles GET /drivers/{driverID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orgID, ok := h.callerOrg(w, ctx)
	if !ok {
		return
	}

	driverID, err := id.ParseDriverID(chi.URLParam(r, "driverID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	driver, err := h.service.Get(ctx, orgID, driverID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromDriver(driver))
}

// HandleUpdate handles PUT /drivers/{driverID} requests.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	orgID, ok := h.callerOrg(w, ctx)
	if !ok {
		return
	}

	driverID, err := id.ParseDriverID(chi.URLParam(r, "driverID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateDriverRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	driver, err := h.service.Update(ctx, orgID, driverID, service.UpdateDriverParams{
		Name:            req.Name,
		LastMedicalAt:   req.LastMedicalAt,
		LicenceIssuedAt: req.LicenceIssuedAt,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromDriver(driver))
}

// HandleDelete handles DELETE /drivers/{driverID} requests.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orgID, ok := h.callerOrg(w, ctx)
	if !ok {
		return
	}

	driverID, err := id.ParseDriverID(chi.URLParam(r, "driverID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(ctx, orgID, driverID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// callerOrg extracts the authenticated organisation, writing an error
// response when the request is unauthenticated.
func (h *Handler) callerOrg(w http.ResponseWriter, ctx context.Context) (id.OrgID, bool) {
	orgID := requestcontext.OrgID(ctx)
	if orgID == (id.OrgID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.OrgID{}, false
	}
	return orgID, true
}
