package assessment

import "time"

// Shared fixtures for the rules tests. All rule tests pin "now" so results
// never depend on the wall clock.

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time { return &t }

func daysAgo(now time.Time, days int) *time.Time {
	d := now.AddDate(0, 0, -days)
	return &d
}

func endorsement(code string, convictedAt *time.Time, points int) Endorsement {
	return Endorsement{Code: code, ConvictedAt: convictedAt, PenaltyPoints: points}
}

// cleanRecord returns a valid licence with no history.
func cleanRecord(now time.Time) LicenceRecord {
	return LicenceRecord{
		Status:    "VALID",
		ExpiresAt: datePtr(now.AddDate(5, 0, 0)),
	}
}

// youngProfile returns a driver young enough that no medical rules apply.
func youngProfile(now time.Time) DriverProfile {
	return DriverProfile{
		DateOfBirth: now.AddDate(-30, 0, 0),
	}
}
