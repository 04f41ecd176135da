// Package assessment implements the driver compliance risk engine: a pure,
// deterministic rules pipeline that turns a licence snapshot plus stored
// driver attributes into a validity verdict, a scored risk tier, factor and
// recommendation lists, and the next mandatory recheck date.
package assessment

import (
	"time"

	id "driveguard/pkg/domain"
)

// RiskTier buckets an aggregate score and drives the recheck cadence.
type RiskTier string

const (
	TierLow    RiskTier = "low"
	TierMedium RiskTier = "medium"
	TierHigh   RiskTier = "high"
)

// LicenceRecord is the normalized snapshot supplied by the registry client.
// Optional fields are nil/empty when the registry omitted them; the rules
// treat absence as non-triggering. Date fields that could not be parsed at
// the ingestion boundary arrive as nil and have already been logged there.
type LicenceRecord struct {
	Status            string
	Categories        []Category
	Endorsements      []Endorsement
	Disqualifications []Disqualification
	Restrictions      []string
	CPC               *CPC
	IssuedAt          *time.Time
	ExpiresAt         *time.Time
}

// Category is a single entitlement on the licence.
type Category struct {
	Code         string
	Type         CategoryType
	ValidFrom    *time.Time
	ValidTo      *time.Time
	Restrictions []string
}

// CategoryType distinguishes full from provisional entitlements.
type CategoryType string

const (
	CategoryFull        CategoryType = "full"
	CategoryProvisional CategoryType = "provisional"
)

// Endorsement is a penalty record tied to an offence code.
type Endorsement struct {
	Code          string
	ConvictedAt   *time.Time
	PenaltyPoints int
}

// Disqualification is a ban period. It is active while it has no end date or
// an end date in the future.
type Disqualification struct {
	Reason  string
	StartAt *time.Time
	EndAt   *time.Time
}

// Active reports whether the disqualification is still in force at now.
func (d Disqualification) Active(now time.Time) bool {
	return d.EndAt == nil || d.EndAt.After(now)
}

// CPC holds the professional competence certificate details, when present.
type CPC struct {
	ExpiresAt *time.Time
}

// DriverProfile carries the stored driver attributes that feed the rules but
// do not come from the registry snapshot.
type DriverProfile struct {
	DateOfBirth        time.Time
	LastMedicalAt      *time.Time
	LicenceIssuedAt    *time.Time
	PreviousCategories []string
	PenaltyPoints      int
}

// RiskAssessment is the engine output. It is created fresh per evaluation,
// never mutated, and persisted as an immutable audit record by the store.
type RiskAssessment struct {
	ID              id.AssessmentID `json:"id"`
	DriverID        id.DriverID     `json:"driver_id"`
	LicenceValid    bool            `json:"licence_valid"`
	Score           int             `json:"score"`
	Tier            RiskTier        `json:"tier"`
	Factors         []string        `json:"factors"`
	Recommendations []string        `json:"recommendations"`
	NextCheckDue    time.Time       `json:"next_check_due"`
	AssessedAt      time.Time       `json:"assessed_at"`
}

// Contribution is the output of a single rule group: a non-negative score
// delta plus the factors and recommendations the group wants recorded, in
// the order it produced them.
type Contribution struct {
	Points          int
	Factors         []string
	Recommendations []string
}

func (c Contribution) empty() bool {
	return c.Points == 0 && len(c.Factors) == 0 && len(c.Recommendations) == 0
}

// merge folds another contribution onto this one, preserving order.
func (c *Contribution) merge(other Contribution) {
	c.Points += other.Points
	c.Factors = append(c.Factors, other.Factors...)
	c.Recommendations = append(c.Recommendations, other.Recommendations...)
}
