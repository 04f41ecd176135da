// Package registry fetches licence snapshots from the external licensing
// registry and normalizes its ad hoc response shapes into the single
// LicenceRecord the rules engine consumes. All field-name and date-format
// variance is absorbed here; rule code never branches on wire shapes.
package registry

import (
	"log/slog"
	"strings"
	"time"

	"driveguard/internal/assessment"
)

// snapshotResponse mirrors the registry's JSON. The registry has shipped two
// generations of field names for the same data; both are decoded and the
// populated one wins.
type snapshotResponse struct {
	Status string `json:"status"`

	// Current and legacy spellings for the entitlement list.
	Categories   []categoryResponse `json:"categories"`
	Entitlements []categoryResponse `json:"entitlements"`

	Endorsements      []endorsementResponse      `json:"endorsements"`
	Disqualifications []disqualificationResponse `json:"disqualifications"`
	Restrictions      []string                   `json:"restrictions"`

	CPC *cpcResponse `json:"cpc"`

	IssuedAt  string `json:"issued_at"`
	ExpiresAt string `json:"expires_at"`
}

type categoryResponse struct {
	// Current spelling, then legacy.
	Code     string `json:"code"`
	Category string `json:"category"`

	Type string `json:"type"`

	ValidFrom string `json:"valid_from"`
	From      string `json:"from"`
	ValidTo   string `json:"valid_to"`
	Until     string `json:"until"`

	Restrictions []string `json:"restrictions"`
}

type endorsementResponse struct {
	Code        string `json:"code"`
	OffenceCode string `json:"offence_code"`

	ConvictedAt    string `json:"convicted_at"`
	ConvictionDate string `json:"conviction_date"`

	PenaltyPoints int `json:"penalty_points"`
	Points        int `json:"points"`
}

type disqualificationResponse struct {
	Reason  string `json:"reason"`
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`
}

type cpcResponse struct {
	ExpiresAt string `json:"expires_at"`
}

// dateLayouts are the formats the registry has been observed emitting.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"02/01/2006",
}

// normalize converts a decoded registry response into the canonical record.
// Unparseable dates become nil after a warning; they must never fail the
// check or trigger a rule.
func normalize(resp snapshotResponse, logger *slog.Logger) assessment.LicenceRecord {
	record := assessment.LicenceRecord{
		Status:       strings.ToUpper(strings.TrimSpace(resp.Status)),
		Restrictions: resp.Restrictions,
		IssuedAt:     parseDate(resp.IssuedAt, "issued_at", logger),
		ExpiresAt:    parseDate(resp.ExpiresAt, "expires_at", logger),
	}

	categories := resp.Categories
	if len(categories) == 0 {
		categories = resp.Entitlements
	}
	for _, c := range categories {
		record.Categories = append(record.Categories, normalizeCategory(c, logger))
	}

	for _, e := range resp.Endorsements {
		record.Endorsements = append(record.Endorsements, assessment.Endorsement{
			Code:          strings.ToUpper(strings.TrimSpace(firstNonEmpty(e.Code, e.OffenceCode))),
			ConvictedAt:   parseDate(firstNonEmpty(e.ConvictedAt, e.ConvictionDate), "conviction_date", logger),
			PenaltyPoints: firstNonZero(e.PenaltyPoints, e.Points),
		})
	}

	for _, d := range resp.Disqualifications {
		record.Disqualifications = append(record.Disqualifications, assessment.Disqualification{
			Reason:  d.Reason,
			StartAt: parseDate(d.StartAt, "disqualification.start_at", logger),
			EndAt:   parseDate(d.EndAt, "disqualification.end_at", logger),
		})
	}

	if resp.CPC != nil {
		record.CPC = &assessment.CPC{
			ExpiresAt: parseDate(resp.CPC.ExpiresAt, "cpc.expires_at", logger),
		}
	}

	return record
}

func normalizeCategory(c categoryResponse, logger *slog.Logger) assessment.Category {
	catType := assessment.CategoryFull
	if strings.EqualFold(strings.TrimSpace(c.Type), "provisional") {
		catType = assessment.CategoryProvisional
	}
	return assessment.Category{
		Code:         strings.ToUpper(strings.TrimSpace(firstNonEmpty(c.Code, c.Category))),
		Type:         catType,
		ValidFrom:    parseDate(firstNonEmpty(c.ValidFrom, c.From), "category.valid_from", logger),
		ValidTo:      parseDate(firstNonEmpty(c.ValidTo, c.Until), "category.valid_to", logger),
		Restrictions: c.Restrictions,
	}
}

// parseDate tries each known layout and returns nil for absent or
// unparseable values, warning on the latter.
func parseDate(value, field string, logger *slog.Logger) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	if logger != nil {
		logger.Warn("unparseable date in registry response",
			"field", field,
			"value", value,
		)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
