package assessment

import (
	"fmt"
	"time"
)

// Age-based medical review policy and the new-driver rule.
//
// Age uses the fixed 365.25-day year the source system used rather than
// calendar-aware arithmetic. The approximation can shift the 45/65 boundary
// by up to a day around leap years; kept deliberately so existing review
// schedules do not move (see DESIGN.md).

const (
	daysPerYear = 365.25

	seniorMedicalMaxDays  = 365
	seniorMedicalWarnDays = 30
	midlifeMedicalMaxDays = 1825
	midlifeMedicalWarnDays = 90

	newDriverWindowDays = 730
)

func ageAt(dateOfBirth, now time.Time) int {
	return int(now.Sub(dateOfBirth).Hours() / 24 / daysPerYear)
}

// ageMedicalContribution applies the medical review policy: annual reviews
// from 65, five-yearly from 45, none below. It also applies the new-driver
// rule - a licence issued within the last two years combined with six or
// more penalty points means the driver is one step from revocation.
func ageMedicalContribution(profile DriverProfile, now time.Time) Contribution {
	var c Contribution

	age := ageAt(profile.DateOfBirth, now)

	var maxDays, warnDays int
	switch {
	case age >= 65:
		maxDays, warnDays = seniorMedicalMaxDays, seniorMedicalWarnDays
	case age >= 45:
		maxDays, warnDays = midlifeMedicalMaxDays, midlifeMedicalWarnDays
	}

	if maxDays > 0 {
		switch {
		case profile.LastMedicalAt == nil:
			c.merge(Contribution{
				Points:  20,
				Factors: []string{fmt.Sprintf("Medical review required from age %d but none on record", reviewThreshold(age))},
				Recommendations: []string{
					"Obtain and record a medical examination for this driver",
				},
			})
		default:
			daysSince := int(now.Sub(*profile.LastMedicalAt).Hours() / 24)
			switch {
			case daysSince > maxDays:
				c.merge(Contribution{
					Points:  25,
					Factors: []string{fmt.Sprintf("Medical review overdue: last examination %d days ago (maximum %d)", daysSince, maxDays)},
					Recommendations: []string{
						"Medical review is overdue - book an examination immediately",
					},
				})
			case daysSince > maxDays-warnDays:
				c.merge(Contribution{
					Points:  10,
					Factors: []string{fmt.Sprintf("Medical review due within %d days", maxDays-daysSince)},
					Recommendations: []string{
						"Medical review due shortly - schedule an examination",
					},
				})
			}
		}
	}

	if profile.LicenceIssuedAt != nil {
		heldDays := int(now.Sub(*profile.LicenceIssuedAt).Hours() / 24)
		if heldDays >= 0 && heldDays <= newDriverWindowDays && profile.PenaltyPoints >= 6 {
			c.merge(Contribution{
				Points:  15,
				Factors: []string{fmt.Sprintf("New driver with %d penalty points - one step from revocation", profile.PenaltyPoints)},
				Recommendations: []string{
					"New driver close to the six-point revocation threshold - restrict to low-risk duties",
				},
			})
		}
	}

	return c
}

// reviewThreshold names the policy band the driver falls into, for factor text.
func reviewThreshold(age int) int {
	if age >= 65 {
		return 65
	}
	return 45
}
