package assessment

import "time"

// Engine assembles validity, scoring and scheduling into one RiskAssessment.
// This is pure domain logic - no I/O, no side effects, no clock reads: the
// caller supplies "now", so identical inputs always produce identical output.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs the full pipeline over a normalized licence snapshot and the
// stored driver attributes. It never fails for business-rule reasons and
// always returns a complete assessment; the service layer assigns identity
// and persists the result.
func (e *Engine) Evaluate(record LicenceRecord, profile DriverProfile, now time.Time) *RiskAssessment {
	valid := IsValid(record, now)
	bundle := scoreRecord(record, profile, now)
	tier := TierFor(bundle.Points)

	return &RiskAssessment{
		LicenceValid:    valid,
		Score:           bundle.Points,
		Tier:            tier,
		Factors:         bundle.Factors,
		Recommendations: bundle.Recommendations,
		NextCheckDue:    NextCheckDate(tier, now),
		AssessedAt:      now,
	}
}
