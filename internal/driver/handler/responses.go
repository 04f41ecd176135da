package handler

import (
	"time"

	"driveguard/internal/driver/models"
)

// DriverResponse is the wire form of a driver record.
type DriverResponse struct {
	ID                 string     `json:"id"`
	OrgID              string     `json:"org_id"`
	Name               string     `json:"name"`
	LicenceNumber      string     `json:"licence_number"`
	DateOfBirth        time.Time  `json:"date_of_birth"`
	LastMedicalAt      *time.Time `json:"last_medical_at,omitempty"`
	LicenceIssuedAt    *time.Time `json:"licence_issued_at,omitempty"`
	PreviousCategories []string   `json:"previous_categories"`
	PenaltyPoints      int        `json:"penalty_points"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ListDriversResponse wraps an organisation's drivers.
type ListDriversResponse struct {
	Drivers []DriverResponse `json:"drivers"`
}

// FromDriver converts a domain driver to its wire form.
func FromDriver(d *models.Driver) DriverResponse {
	resp := DriverResponse{
		ID:                 d.ID.String(),
		OrgID:              d.OrgID.String(),
		Name:               d.Name,
		LicenceNumber:      d.LicenceNumber,
		DateOfBirth:        d.DateOfBirth,
		LastMedicalAt:      d.LastMedicalAt,
		LicenceIssuedAt:    d.LicenceIssuedAt,
		PreviousCategories: d.PreviousCategories,
		PenaltyPoints:      d.PenaltyPoints,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
	if resp.PreviousCategories == nil {
		resp.PreviousCategories = []string{}
	}
	return resp
}

// FromDriverList converts a driver slice to its wire form.
func FromDriverList(list []*models.Driver) ListDriversResponse {
	resp := ListDriversResponse{Drivers: make([]DriverResponse, 0, len(list))}
	for _, d := range list {
		resp.Drivers = append(resp.Drivers, FromDriver(d))
	}
	return resp
}
