package handler

import (
	"time"

	"driveguard/internal/assessment"
)

// AssessmentResponse is the wire form of a persisted risk assessment.
type AssessmentResponse struct {
	ID              string    `json:"id"`
	DriverID        string    `json:"driver_id"`
	LicenceValid    bool      `json:"licence_valid"`
	Score           int       `json:"score"`
	Tier            string    `json:"tier"`
	Factors         []string  `json:"factors"`
	Recommendations []string  `json:"recommendations"`
	NextCheckDue    time.Time `json:"next_check_due"`
	AssessedAt      time.Time `json:"assessed_at"`
}

// ListAssessmentsResponse wraps an assessment history, oldest first.
type ListAssessmentsResponse struct {
	Assessments []AssessmentResponse `json:"assessments"`
}

// FromAssessment converts a domain assessment to its wire form.
func FromAssessment(a *assessment.RiskAssessment) AssessmentResponse {
	resp := AssessmentResponse{
		ID:              a.ID.String(),
		DriverID:        a.DriverID.String(),
		LicenceValid:    a.LicenceValid,
		Score:           a.Score,
		Tier:            string(a.Tier),
		Factors:         a.Factors,
		Recommendations: a.Recommendations,
		NextCheckDue:    a.NextCheckDue,
		AssessedAt:      a.AssessedAt,
	}
	if resp.Factors == nil {
		resp.Factors = []string{}
	}
	if resp.Recommendations == nil {
		resp.Recommendations = []string{}
	}
	return resp
}

// FromAssessmentList converts a history slice to its wire form.
func FromAssessmentList(list []*assessment.RiskAssessment) ListAssessmentsResponse {
	resp := ListAssessmentsResponse{Assessments: make([]AssessmentResponse, 0, len(list))}
	for _, a := range list {
		resp.Assessments = append(resp.Assessments, FromAssessment(a))
	}
	return resp
}
