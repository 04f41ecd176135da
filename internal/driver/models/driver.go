package models

import (
	"strings"
	"time"

	id "driveguard/pkg/domain"
	dErrors "driveguard/pkg/domain-errors"
)

// Driver is the aggregate root for a fleet driver.
//
// Invariants:
//   - LicenceNumber is non-empty and at most 32 characters
//   - DateOfBirth is in the past
//   - PenaltyPoints is the organisation's recorded total, refreshed from the
//     latest registry snapshot after each completed check
//   - PreviousCategories only ever grows: once a professional category has
//     been recorded it stays recorded, so later snapshots can be compared
//     against it
type Driver struct {
	ID                 id.DriverID `json:"id"`
	OrgID              id.OrgID    `json:"org_id"`
	Name               string      `json:"name"`
	LicenceNumber      string      `json:"licence_number"`
	DateOfBirth        time.Time   `json:"date_of_birth"`
	LastMedicalAt      *time.Time  `json:"last_medical_at,omitempty"`
	LicenceIssuedAt    *time.Time  `json:"licence_issued_at,omitempty"`
	PreviousCategories []string    `json:"previous_categories,omitempty"`
	PenaltyPoints      int         `json:"penalty_points"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

const maxLicenceNumberLen = 32

// NewDriver constructs a Driver and validates its invariants.
func NewDriver(driverID id.DriverID, orgID id.OrgID, name, licenceNumber string, dateOfBirth, now time.Time) (*Driver, error) {
	name = strings.TrimSpace(name)
	licenceNumber = strings.ToUpper(strings.TrimSpace(licenceNumber))

	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "driver name is required")
	}
	if licenceNumber == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "licence number is required")
	}
	if len(licenceNumber) > maxLicenceNumberLen {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "licence number too long")
	}
	if !dateOfBirth.Before(now) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "date of birth must be in the past")
	}

	return &Driver{
		ID:            driverID,
		OrgID:         orgID,
		Name:          name,
		LicenceNumber: licenceNumber,
		DateOfBirth:   dateOfBirth,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// RecordSnapshot folds the professional categories and penalty points seen
// in a registry snapshot into the stored attributes. Categories accumulate;
// the point total is replaced.
func (d *Driver) RecordSnapshot(categories []string, penaltyPoints int, now time.Time) {
	seen := make(map[string]struct{}, len(d.PreviousCategories))
	for _, c := range d.PreviousCategories {
		seen[c] = struct{}{}
	}
	for _, c := range categories {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			d.PreviousCategories = append(d.PreviousCategories, c)
		}
	}
	d.PenaltyPoints = penaltyPoints
	d.UpdatedAt = now
}
