package handler

import (
	"time"

	"driveguard/internal/org/models"
)

// OrgResponse is the wire form of an organisation.
type OrgResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateOrgResponse carries the new organisation plus its one-time API
// secret.
type CreateOrgResponse struct {
	OrgResponse
	Secret string `json:"secret"`
}

// RotateCredentialResponse carries the one-time replacement secret.
type RotateCredentialResponse struct {
	Secret string `json:"secret"`
}

// TokenResponse is the bearer token envelope.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// FromOrg converts a domain organisation to its wire form.
func FromOrg(org *models.Org) OrgResponse {
	return OrgResponse{
		ID:        org.ID.String(),
		Name:      org.Name,
		CreatedAt: org.CreatedAt,
		UpdatedAt: org.UpdatedAt,
	}
}
