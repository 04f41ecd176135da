package handler

import (
	"time"

	dErrors "driveguard/pkg/domain-errors"
)

// CreateDriverRequest is the payload for POST /drivers.
type CreateDriverRequest struct {
	Name            string     `json:"name"`
	LicenceNumber   string     `json:"licence_number"`
	DateOfBirth     time.Time  `json:"date_of_birth"`
	LastMedicalAt   *time.Time `json:"last_medical_at,omitempty"`
	LicenceIssuedAt *time.Time `json:"licence_issued_at,omitempty"`
}

func (r *CreateDriverRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if r.LicenceNumber == "" {
		return dErrors.New(dErrors.CodeValidation, "licence_number is required")
	}
	if r.DateOfBirth.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "date_of_birth is required")
	}
	return nil
}

// UpdateDriverRequest is the payload for PUT /drivers/{driverID}. Omitted
// fields are left unchanged.
type UpdateDriverRequest struct {
	Name            *string    `json:"name,omitempty"`
	LastMedicalAt   *time.Time `json:"last_medical_at,omitempty"`
	LicenceIssuedAt *time.Time `json:"licence_issued_at,omitempty"`
}

func (r *UpdateDriverRequest) Validate() error {
	if r.Name == nil && r.LastMedicalAt == nil && r.LicenceIssuedAt == nil {
		return dErrors.New(dErrors.CodeValidation, "no fields to update")
	}
	return nil
}
