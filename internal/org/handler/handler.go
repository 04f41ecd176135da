// Package handler exposes the organisation admin endpoints and the token
// exchange. Admin endpoints sit behind a static admin token; the token
// exchange is public and rate-limited by the credential itself (bcrypt).
package handler

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"driveguard/internal/org/models"
	id "driveguard/pkg/domain"
	dErrors "driveguard/pkg/domain-errors"
	"driveguard/pkg/platform/httputil"
	"driveguard/pkg/requestcontext"
)

// Service defines the interface for organisation operations.
type Service interface {
	Create(ctx context.Context, name string) (*models.Org, string, error)
	Get(ctx context.Context, orgID id.OrgID) (*models.Org, error)
	RotateCredential(ctx context.Context, orgID id.OrgID) (string, error)
	Authenticate(ctx context.Context, orgID id.OrgID, secret string) (*models.Org, error)
}

// TokenIssuer mints access tokens. Satisfied by the platform jwt service.
type TokenIssuer interface {
	GenerateAccessToken(userID id.UserID, orgID id.OrgID, expiresIn time.Duration) (string, error)
}

// Handler wires organisation endpoints to the organisation service.
type Handler struct {
	service    Service
	tokens     TokenIssuer
	tokenTTL   time.Duration
	adminToken string
	logger     *slog.Logger
}

// New constructs an organisation handler. An empty adminToken disables the
// admin endpoints.
func New(service Service, tokens TokenIssuer, tokenTTL time.Duration, adminToken string, logger *slog.Logger) *Handler {
	return &Handler{
		service:    service,
		tokens:     tokens,
		tokenTTL:   tokenTTL,
		adminToken: adminToken,
		logger:     logger,
	}
}

// Register mounts organisation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/token", h.HandleToken)
	r.Route("/admin/orgs", func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Post("/", h.HandleCreate)
		r.Get("/{orgID}", h.HandleGet)
		r.Post("/{orgID}/credentials/rotate", h.HandleRotateCredential)
	})
}

// requireAdmin guards admin endpoints with a constant-time token compare.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		supplied := r.Header.Get("X-Admin-Token")
		if h.adminToken == "" || supplied == "" ||
			subtle.ConstantTimeCompare([]byte(supplied), []byte(h.adminToken)) != 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "admin token required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HandleCreate handles POST /admin/orgs requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateOrgRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	org, secret, err := h.service.Create(ctx, req.Name)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "organisation created",
		"request_id", requestID,
		"org_id", org.ID,
		"name", org.Name,
	)

	httputil.WriteJSON(w, http.StatusCreated, CreateOrgResponse{
		OrgResponse: FromOrg(org),
		Secret:      secret,
	})
}

// HandleGet handles GET /admin/orgs/{orgID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orgID, err := id.ParseOrgID(chi.URLParam(r, "orgID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	org, err := h.service.Get(ctx, orgID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromOrg(org))
}

// HandleRotateCredential handles POST /admin/orgs/{orgID}/credentials/rotate.
func (h *Handler) HandleRotateCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orgID, err := id.ParseOrgID(chi.URLParam(r, "orgID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	secret, err := h.service.RotateCredential(ctx, orgID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "organisation credential rotated", "org_id", orgID)

	httputil.WriteJSON(w, http.StatusOK, RotateCredentialResponse{Secret: secret})
}

// HandleToken handles POST /auth/token requests.
func (h *Handler) HandleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[TokenRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	orgID, err := id.ParseOrgID(req.OrgID)
	if err != nil {
		// Malformed org IDs get the same answer as wrong credentials.
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials"))
		return
	}

	org, err := h.service.Authenticate(ctx, orgID, req.Secret)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	token, err := h.tokens.GenerateAccessToken(org.APIUserID, org.ID, h.tokenTTL)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.tokenTTL.Seconds()),
	})
}
