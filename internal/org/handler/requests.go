package handler

import (
	dErrors "driveguard/pkg/domain-errors"
)

// CreateOrgRequest is the payload for POST /admin/orgs.
type CreateOrgRequest struct {
	Name string `json:"name"`
}

func (r *CreateOrgRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return nil
}

// TokenRequest is the payload for POST /auth/token: an organisation
// exchanging its API credential for a bearer token.
type TokenRequest struct {
	OrgID  string `json:"org_id"`
	Secret string `json:"secret"`
}

func (r *TokenRequest) Validate() error {
	if r.OrgID == "" {
		return dErrors.New(dErrors.CodeValidation, "org_id is required")
	}
	if r.Secret == "" {
		return dErrors.New(dErrors.CodeValidation, "secret is required")
	}
	return nil
}
