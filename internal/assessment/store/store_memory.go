// Package store persists risk assessments. Assessments are append-only: a
// saved record is never updated, and reads return copies so callers cannot
// mutate stored history.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"driveguard/internal/assessment"
	id "driveguard/pkg/domain"
	"driveguard/pkg/platform/sentinel"
)

// MemoryStore is an in-memory assessment store for tests and development.
type MemoryStore struct {
	mu      sync.RWMutex
	byDrive map[id.DriverID][]assessment.RiskAssessment
}

// NewMemory constructs an empty in-memory assessment store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		byDrive: make(map[id.DriverID][]assessment.RiskAssessment),
	}
}

func (s *MemoryStore) Save(_ context.Context, a *assessment.RiskAssessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byDrive[a.DriverID] = append(s.byDrive[a.DriverID], copyAssessment(a))
	return nil
}

// ListByDriver returns the driver's history oldest first.
func (s *MemoryStore) ListByDriver(_ context.Context, driverID id.DriverID) ([]*assessment.RiskAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.byDrive[driverID]
	out := make([]*assessment.RiskAssessment, 0, len(history))
	for i := range history {
		a := copyAssessment(&history[i])
		out = append(out, &a)
	}
	return out, nil
}

// Latest returns the newest assessment by AssessedAt, or sentinel.ErrNotFound
// when the driver has no history.
func (s *MemoryStore) Latest(_ context.Context, driverID id.DriverID) (*assessment.RiskAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.byDrive[driverID]
	if len(history) == 0 {
		return nil, sentinel.ErrNotFound
	}
	newest := &history[0]
	for i := range history {
		if history[i].AssessedAt.After(newest.AssessedAt) {
			newest = &history[i]
		}
	}
	a := copyAssessment(newest)
	return &a, nil
}

// ListDueForRecheck returns drivers whose latest assessment has a
// NextCheckDue at or before now, most overdue first, capped at limit.
func (s *MemoryStore) ListDueForRecheck(ctx context.Context, now time.Time, limit int) ([]id.DriverID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type due struct {
		driverID id.DriverID
		at       time.Time
	}
	var overdue []due
	for driverID, history := range s.byDrive {
		if len(history) == 0 {
			continue
		}
		newest := history[0]
		for _, a := range history[1:] {
			if a.AssessedAt.After(newest.AssessedAt) {
				newest = a
			}
		}
		if !newest.NextCheckDue.After(now) {
			overdue = append(overdue, due{driverID: driverID, at: newest.NextCheckDue})
		}
	}
	sort.Slice(overdue, func(i, j int) bool {
		return overdue[i].at.Before(overdue[j].at)
	})

	if limit > 0 && len(overdue) > limit {
		overdue = overdue[:limit]
	}
	out := make([]id.DriverID, 0, len(overdue))
	for _, d := range overdue {
		out = append(out, d.driverID)
	}
	return out, nil
}

func copyAssessment(a *assessment.RiskAssessment) assessment.RiskAssessment {
	cp := *a
	cp.Factors = append([]string(nil), a.Factors...)
	cp.Recommendations = append([]string(nil), a.Recommendations...)
	return cp
}
