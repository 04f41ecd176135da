// Package handler exposes the compliance check endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"driveguard/internal/assessment"
	id "driveguard/pkg/domain"
	dErrors "driveguard/pkg/domain-errors"
	"driveguard/pkg/platform/httputil"
	"driveguard/pkg/requestcontext"
)

// Service defines the interface for assessment operations.
type Service interface {
	RunCheck(ctx context.Context, driverID id.DriverID, trigger string) (*assessment.RiskAssessment, error)
	ListAssessments(ctx context.Context, driverID id.DriverID) ([]*assessment.RiskAssessment, error)
	LatestAssessment(ctx context.Context, driverID id.DriverID) (*assessment.RiskAssessment, error)
}

// TriggerAPI marks checks started by an API caller, as opposed to the
// background recheck worker.
const TriggerAPI = "api"

// Handler wires assessment endpoints to the assessment service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an assessment handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts assessment endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/drivers/{driverID}/checks", h.HandleRunCheck)
	r.Get("/drivers/{driverID}/assessments", h.HandleListAssessments)
	r.Get("/drivers/{driverID}/assessments/latest", h.HandleLatestAssessment)
}

// HandleRunCheck handles POST /drivers/{driverID}/checks requests.
func (h *Handler) HandleRunCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	driverID, err := id.ParseDriverID(chi.URLParam(r, "driverID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.RunCheck(ctx, driverID, TriggerAPI)
	if err != nil {
		h.logger.ErrorContext(ctx, "compliance check failed",
			"request_id", requestID,
			"driver_id", driverID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "compliance check completed",
		"request_id", requestID,
		"driver_id", driverID,
		"tier", result.Tier,
		"score", result.Score,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusCreated, FromAssessment(result))
}

// HandleListAssessments handles GET /drivers/{driverID}/assessments requests.
func (h *Handler) HandleListAssessments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	driverID, err := id.ParseDriverID(chi.URLParam(r, "driverID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	history, err := h.service.ListAssessments(ctx, driverID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromAssessmentList(history))
}

// HandleLatestAssessment handles GET /drivers/{driverID}/assessments/latest.
func (h *Handler) HandleLatestAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	driverID, err := id.ParseDriverID(chi.URLParam(r, "driverID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	latest, err := h.service.LatestAssessment(ctx, driverID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromAssessment(latest))
}
