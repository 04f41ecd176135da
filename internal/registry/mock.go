package registry

import (
	"context"
	"hash/fnv"
	"strings"
	"time"

	"driveguard/internal/assessment"
)

// Mock generates deterministic licence records from the licence number, for
// dev mode and integration environments without registry access. The same
// number always yields the same record.
type Mock struct {
	now func() time.Time
}

func NewMock() *Mock {
	return &Mock{now: time.Now}
}

// NewMockWithClock pins the mock's reference time for tests.
func NewMockWithClock(now func() time.Time) *Mock {
	return &Mock{now: now}
}

func (m *Mock) FetchLicence(_ context.Context, licenceNumber string) (*assessment.LicenceRecord, error) {
	if strings.TrimSpace(licenceNumber) == "" {
		return nil, newClientError(ErrorNotFound, "no record for licence number", nil)
	}

	h := fnv.New32a()
	h.Write([]byte(strings.ToUpper(strings.TrimSpace(licenceNumber))))
	seed := h.Sum32()
	now := m.now()

	record := assessment.LicenceRecord{
		Status: "VALID",
		Categories: []assessment.Category{
			{Code: "B", Type: assessment.CategoryFull},
		},
		IssuedAt:  datePtr(now.AddDate(-int(seed%20)-1, 0, 0)),
		ExpiresAt: datePtr(now.AddDate(int(seed%9)+1, 0, 0)),
	}

	// Roughly a third of mock drivers are professional.
	if seed%3 == 0 {
		record.Categories = append(record.Categories,
			assessment.Category{Code: "C", Type: assessment.CategoryFull},
		)
		record.CPC = &assessment.CPC{ExpiresAt: datePtr(now.AddDate(0, int(seed%24), 0))}
	}

	// Sprinkle endorsements by seed so tiers vary across numbers.
	switch seed % 4 {
	case 1:
		record.Endorsements = []assessment.Endorsement{
			{Code: "SP30", ConvictedAt: datePtr(now.AddDate(0, -8, 0)), PenaltyPoints: 3},
		}
	case 2:
		record.Endorsements = []assessment.Endorsement{
			{Code: "SP30", ConvictedAt: datePtr(now.AddDate(0, -3, 0)), PenaltyPoints: 3},
			{Code: "SP50", ConvictedAt: datePtr(now.AddDate(0, -5, 0)), PenaltyPoints: 3},
			{Code: "CU80", ConvictedAt: datePtr(now.AddDate(0, -14, 0)), PenaltyPoints: 3},
		}
	case 3:
		record.Endorsements = []assessment.Endorsement{
			{Code: "DR10", ConvictedAt: datePtr(now.AddDate(-1, 0, 0)), PenaltyPoints: 6},
		}
	}

	return &record, nil
}

func datePtr(t time.Time) *time.Time { return &t }
