package assessment

import (
	"strings"
	"time"
)

// invalidStatuses are registry status codes under which no entitlement to
// drive exists, whatever the category data says.
var invalidStatuses = map[string]struct{}{
	"REVOKED":      {},
	"SURRENDERED":  {},
	"REFUSED":      {},
	"DISQUALIFIED": {},
}

// IsValid determines whether the licence permits driving at the given time.
// All three checks run over the normalized snapshot; missing dates are
// non-triggering (the ingestion boundary has already logged any unparseable
// values and mapped them to nil).
func IsValid(record LicenceRecord, now time.Time) bool {
	if record.ExpiresAt != nil && record.ExpiresAt.Before(now) {
		return false
	}
	if _, revoked := invalidStatuses[strings.ToUpper(strings.TrimSpace(record.Status))]; revoked {
		return false
	}
	if hasActiveDisqualification(record, now) {
		return false
	}
	return true
}

// hasActiveDisqualification reports whether any ban is still in force:
// open-ended, or ending in the future.
func hasActiveDisqualification(record LicenceRecord, now time.Time) bool {
	for _, d := range record.Disqualifications {
		if d.Active(now) {
			return true
		}
	}
	return false
}
