// Package models defines the fleet organisation aggregate.
package models

import (
	"strings"
	"time"

	id "driveguard/pkg/domain"
	dErrors "driveguard/pkg/domain-errors"
)

// Org is a fleet or compliance organisation. Its API credential is stored
// only as a bcrypt hash; the plaintext secret is returned exactly once, at
// creation or rotation.
type Org struct {
	ID         id.OrgID  `json:"id"`
	Name       string    `json:"name"`
	SecretHash string    `json:"-"`
	// APIUserID is the machine identity carried in tokens issued against
	// this organisation's credential.
	APIUserID id.UserID `json:"api_user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewOrg constructs an Org and validates its invariants.
func NewOrg(orgID id.OrgID, name, secretHash string, now time.Time) (*Org, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "organisation name is required")
	}
	if secretHash == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "credential hash is required")
	}
	return &Org{
		ID:         orgID,
		Name:       name,
		SecretHash: secretHash,
		APIUserID:  id.NewUserID(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
