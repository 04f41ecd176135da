// Package domain provides typed identifiers shared across feature modules.
// Wrapping uuid.UUID in distinct types prevents accidental cross-assignment
// of, say, a driver ID where an organisation ID is expected.
package domain

import (
	"github.com/google/uuid"

	dErrors "driveguard/pkg/domain-errors"
)

// DriverID identifies a driver record owned by a fleet organisation.
type DriverID struct{ uuid.UUID }

// AssessmentID identifies a persisted risk assessment.
type AssessmentID struct{ uuid.UUID }

// OrgID identifies a fleet/compliance organisation.
type OrgID struct{ uuid.UUID }

// UserID identifies an authenticated API user.
type UserID struct{ uuid.UUID }

// NewDriverID generates a random driver ID.
func NewDriverID() DriverID { return DriverID{uuid.New()} }

// NewAssessmentID generates a random assessment ID.
func NewAssessmentID() AssessmentID { return AssessmentID{uuid.New()} }

// NewOrgID generates a random organisation ID.
func NewOrgID() OrgID { return OrgID{uuid.New()} }

// NewUserID generates a random user ID.
func NewUserID() UserID { return UserID{uuid.New()} }

// ParseDriverID parses a driver ID from its string form.
func ParseDriverID(s string) (DriverID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return DriverID{}, dErrors.New(dErrors.CodeValidation, "invalid driver id")
	}
	return DriverID{u}, nil
}

// ParseAssessmentID parses an assessment ID from its string form.
func ParseAssessmentID(s string) (AssessmentID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return AssessmentID{}, dErrors.New(dErrors.CodeValidation, "invalid assessment id")
	}
	return AssessmentID{u}, nil
}

// ParseOrgID parses an organisation ID from its string form.
func ParseOrgID(s string) (OrgID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return OrgID{}, dErrors.New(dErrors.CodeValidation, "invalid organisation id")
	}
	return OrgID{u}, nil
}

// ParseUserID parses a user ID from its string form.
func ParseUserID(s string) (UserID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, dErrors.New(dErrors.CodeValidation, "invalid user id")
	}
	return UserID{u}, nil
}

// IsNil reports whether the ID is the zero UUID.
func (id DriverID) IsNil() bool { return id.UUID == uuid.Nil }

// IsNil reports whether the ID is the zero UUID.
func (id AssessmentID) IsNil() bool { return id.UUID == uuid.Nil }

// IsNil reports whether the ID is the zero UUID.
func (id OrgID) IsNil() bool { return id.UUID == uuid.Nil }

// IsNil reports whether the ID is the zero UUID.
func (id UserID) IsNil() bool { return id.UUID == uuid.Nil }
