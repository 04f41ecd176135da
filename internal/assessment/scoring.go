package assessment

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Score thresholds for tier classification.
const (
	highTierThreshold   = 40
	mediumTierThreshold = 15
)

// cpcExpiryWarningDays is the look-ahead window for CPC expiry.
const cpcExpiryWarningDays = 30

// TierFor maps an aggregate score to its risk tier.
func TierFor(score int) RiskTier {
	switch {
	case score >= highTierThreshold:
		return TierHigh
	case score >= mediumTierThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// scoreRecord runs every rule group in its fixed order and folds the
// contributions into one bundle. No group short-circuits another: every
// applicable factor and recommendation is recorded, and factor order always
// mirrors evaluation order.
func scoreRecord(record LicenceRecord, profile DriverProfile, now time.Time) Contribution {
	var total Contribution

	// 1. Base invalidity.
	if !IsValid(record, now) {
		total.merge(Contribution{
			Points:  50,
			Factors: []string{"Licence is not currently valid"},
			Recommendations: []string{
				"Suspend the driver from all duties until licence validity is restored",
			},
		})
	}

	// 2. Penalty-point tier, from the snapshot's endorsement points.
	total.merge(penaltyPointContribution(record))

	// 3. Temporal patterns, each independent.
	total.merge(recencyContribution(record.Endorsements, now))
	total.merge(escalationContribution(record.Endorsements, now))
	total.merge(frequencyContribution(record.Endorsements, now))
	total.merge(repeatOffenceContribution(record.Endorsements, now))
	total.merge(clusterContribution(record.Endorsements, now))
	total.merge(trendContribution(record.Endorsements, now))

	// 4. Serious offence flag.
	total.merge(seriousOffenceContribution(record))

	// 5. Active disqualification, counted independently of group 1.
	if hasActiveDisqualification(record, now) {
		total.merge(Contribution{
			Points:  40,
			Factors: []string{"Disqualification currently in force"},
			Recommendations: []string{
				"Driver is disqualified - remove from driving duties immediately",
			},
		})
	}

	// 6. CPC currency.
	total.merge(cpcContribution(record, now))

	// 7. Age and medical policy.
	total.merge(ageMedicalContribution(profile, now))

	// 8. Professional category changes.
	total.merge(categoryChangeContribution(record, profile, now))

	// 9. Licence-level restrictions.
	if len(record.Restrictions) > 0 {
		total.merge(Contribution{
			Points:  10,
			Factors: []string{fmt.Sprintf("Licence carries %d restriction(s)", len(record.Restrictions))},
			Recommendations: []string{
				"Check restriction codes are compatible with assigned work",
			},
		})
	}

	return total
}

// penaltyPointContribution applies the flat point-total banding over the
// snapshot's endorsements.
func penaltyPointContribution(record LicenceRecord) Contribution {
	var points int
	for _, e := range record.Endorsements {
		points += e.PenaltyPoints
	}

	var delta int
	switch {
	case points >= 9:
		delta = 30
	case points >= 6:
		delta = 15
	case points >= 3:
		delta = 5
	default:
		return Contribution{}
	}

	c := Contribution{
		Points:  delta,
		Factors: []string{fmt.Sprintf("%d penalty points on licence", points)},
	}
	if points >= 9 {
		c.Recommendations = append(c.Recommendations,
			"Driver is close to totting-up disqualification - restrict driving duties")
	}
	return c
}

// seriousOffenceContribution fires once when any endorsement carries a code
// from the canonical serious-offence set.
func seriousOffenceContribution(record LicenceRecord) Contribution {
	var codes []string
	seen := make(map[string]struct{})
	for _, e := range record.Endorsements {
		if !isSeriousOffence(e.Code) {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(e.Code))
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return Contribution{}
	}
	sort.Strings(codes)

	return Contribution{
		Points:  35,
		Factors: []string{fmt.Sprintf("Serious offence on record: %s", strings.Join(codes, ", "))},
		Recommendations: []string{
			"Serious offence history - require management sign-off before assignment",
		},
	}
}

// cpcContribution checks professional competence certificate currency.
func cpcContribution(record LicenceRecord, now time.Time) Contribution {
	if record.CPC == nil || record.CPC.ExpiresAt == nil {
		return Contribution{}
	}
	expiry := *record.CPC.ExpiresAt

	if expiry.Before(now) {
		return Contribution{
			Points:  20,
			Factors: []string{"CPC has expired"},
			Recommendations: []string{
				"CPC expired - complete periodic training before further vocational driving",
			},
		}
	}
	if expiry.Before(now.AddDate(0, 0, cpcExpiryWarningDays)) {
		return Contribution{
			Points:  10,
			Factors: []string{fmt.Sprintf("CPC expires within %d days", cpcExpiryWarningDays)},
			Recommendations: []string{
				"CPC expiring soon - book periodic training now",
			},
		}
	}
	return Contribution{}
}
