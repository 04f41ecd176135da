package assessment

import "time"

// Recheck intervals per tier, in calendar months.
const (
	highTierRecheckMonths   = 1
	mediumTierRecheckMonths = 3
	lowTierRecheckMonths    = 6
)

// NextCheckDate maps a risk tier to the next mandatory recheck date using
// calendar-month arithmetic from now.
func NextCheckDate(tier RiskTier, now time.Time) time.Time {
	switch tier {
	case TierHigh:
		return now.AddDate(0, highTierRecheckMonths, 0)
	case TierMedium:
		return now.AddDate(0, mediumTierRecheckMonths, 0)
	default:
		return now.AddDate(0, lowTierRecheckMonths, 0)
	}
}
