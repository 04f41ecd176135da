package assessment

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Professional (vocational) category rules: loss of previously-held
// entitlements, trailer downgrades, restrictions, provisional status and
// per-category expiry, plus the flat professional-driver baseline.

// professionalCategories is the goods/passenger vehicle entitlement set
// subject to stricter medical and currency rules.
var professionalCategories = map[string]struct{}{
	"C": {}, "C1": {}, "CE": {}, "C1E": {},
	"D": {}, "D1": {}, "DE": {}, "D1E": {},
}

// trailerDowngrades maps each trailer entitlement to the solo entitlement it
// collapses to when the trailer part lapses.
var trailerDowngrades = map[string]string{
	"CE":  "C",
	"C1E": "C1",
	"DE":  "D",
	"D1E": "D1",
}

func isProfessionalCategory(code string) bool {
	_, ok := professionalCategories[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// categoryChangeContribution compares the current snapshot's categories with
// the previously-recorded professional categories and applies the
// professional-category rules in a fixed order: lost entitlements, trailer
// downgrades, restrictions, provisional status, expiry, baseline.
func categoryChangeContribution(record LicenceRecord, profile DriverProfile, now time.Time) Contribution {
	var c Contribution

	current := make(map[string]Category, len(record.Categories))
	for _, cat := range record.Categories {
		current[strings.ToUpper(strings.TrimSpace(cat.Code))] = cat
	}

	// Lost professional categories: previously held, absent from the snapshot.
	var lost []string
	for _, prev := range profile.PreviousCategories {
		code := strings.ToUpper(strings.TrimSpace(prev))
		if !isProfessionalCategory(code) {
			continue
		}
		if _, stillHeld := current[code]; !stillHeld {
			lost = append(lost, code)
		}
	}
	if len(lost) > 0 {
		sort.Strings(lost)
		c.merge(Contribution{
			Points:  30,
			Factors: []string{fmt.Sprintf("Professional categories no longer held: %s", strings.Join(lost, ", "))},
			Recommendations: []string{
				"Verify why professional entitlements were removed and reassess driver duties",
			},
		})
	}

	// Trailer downgrades: the trailer entitlement lapsed but the solo one
	// remains. Single aggregate contribution however many pairs match.
	var downgrades []string
	for _, prev := range profile.PreviousCategories {
		trailer := strings.ToUpper(strings.TrimSpace(prev))
		solo, isTrailer := trailerDowngrades[trailer]
		if !isTrailer {
			continue
		}
		_, hasTrailer := current[trailer]
		_, hasSolo := current[solo]
		if !hasTrailer && hasSolo {
			downgrades = append(downgrades, trailer+" -> "+solo)
		}
	}
	if len(downgrades) > 0 {
		sort.Strings(downgrades)
		c.merge(Contribution{
			Points:  20,
			Factors: []string{fmt.Sprintf("Trailer entitlement downgraded: %s", strings.Join(downgrades, ", "))},
			Recommendations: []string{
				"Driver can no longer tow - remove from trailer routes",
			},
		})
	}

	// The remaining rules examine the professional categories held right now,
	// in stable snapshot order.
	var restricted, provisional, expired bool
	for _, cat := range record.Categories {
		if !isProfessionalCategory(cat.Code) {
			continue
		}
		if len(cat.Restrictions) > 0 {
			restricted = true
		}
		if cat.Type == CategoryProvisional {
			provisional = true
		}
		if cat.ValidTo != nil && cat.ValidTo.Before(now) {
			expired = true
		}
	}

	if restricted {
		c.merge(Contribution{
			Points:  15,
			Factors: []string{"Restrictions apply to one or more professional categories"},
			Recommendations: []string{
				"Review category restriction codes against assigned vehicles",
			},
		})
	}
	if provisional {
		c.merge(Contribution{
			Points:  25,
			Factors: []string{"Professional category held as provisional only"},
			Recommendations: []string{
				"Provisional professional entitlement - confirm a full test pass before solo duties",
			},
		})
	}
	if expired {
		c.merge(Contribution{
			Points:  35,
			Factors: []string{"Professional category validity date has passed"},
			Recommendations: []string{
				"Professional entitlement expired - suspend vocational duties until renewed",
			},
		})
	}

	// Baseline: any professional category at all marks a professional driver.
	if holdsProfessionalCategory(record) {
		c.merge(Contribution{
			Points:  5,
			Factors: []string{"Professional driver (holds vocational categories)"},
			Recommendations: []string{
				"Keep vocational medical certification current",
			},
		})
	}

	return c
}

func holdsProfessionalCategory(record LicenceRecord) bool {
	for _, cat := range record.Categories {
		if isProfessionalCategory(cat.Code) {
			return true
		}
	}
	return false
}
