package testutil

import (
	"net/http"
	"time"

	id "driveguard/pkg/domain"
	"driveguard/pkg/requestcontext"
)

// WithAuth adds user and organisation IDs to the request context.
// This simulates what the auth middleware would do for authenticated requests.
// Invalid IDs are silently ignored.
func WithAuth(req *http.Request, userID, orgID string) *http.Request {
	ctx := req.Context()
	if userID != "" {
		if parsed, err := id.ParseUserID(userID); err == nil {
			ctx = requestcontext.WithUserID(ctx, parsed)
		}
	}
	if orgID != "" {
		if parsed, err := id.ParseOrgID(orgID); err == nil {
			ctx = requestcontext.WithOrgID(ctx, parsed)
		}
	}
	return req.WithContext(ctx)
}

// WithTime fixes the request-scoped clock, keeping handler tests deterministic.
func WithTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
