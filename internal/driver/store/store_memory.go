// Package store persists driver records.
package store

import (
	"context"
	"sort"
	"sync"

	"driveguard/internal/driver/models"
	id "driveguard/pkg/domain"
	"driveguard/pkg/platform/sentinel"
)

// MemoryStore is an in-memory driver store for tests and development.
type MemoryStore struct {
	mu      sync.RWMutex
	drivers map[id.DriverID]models.Driver
}

// NewMemory constructs an empty in-memory driver store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		drivers: make(map[id.DriverID]models.Driver),
	}
}

func (s *MemoryStore) Create(_ context.Context, driver *models.Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.drivers[driver.ID]; exists {
		return sentinel.ErrConflict
	}
	s.drivers[driver.ID] = copyDriver(driver)
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, driverID id.DriverID) (*models.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	driver, ok := s.drivers[driverID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := copyDriver(&driver)
	return &cp, nil
}

// ListByOrg returns an organisation's drivers ordered by creation time.
func (s *MemoryStore) ListByOrg(_ context.Context, orgID id.OrgID) ([]*models.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Driver
	for _, driver := range s.drivers {
		if driver.OrgID != orgID {
			continue
		}
		cp := copyDriver(&driver)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, driver *models.Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drivers[driver.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.drivers[driver.ID] = copyDriver(driver)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, driverID id.DriverID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drivers[driverID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.drivers, driverID)
	return nil
}

func copyDriver(d *models.Driver) models.Driver {
	cp := *d
	cp.PreviousCategories = append([]string(nil), d.PreviousCategories...)
	if d.LastMedicalAt != nil {
		t := *d.LastMedicalAt
		cp.LastMedicalAt = &t
	}
	if d.LicenceIssuedAt != nil {
		t := *d.LicenceIssuedAt
		cp.LicenceIssuedAt = &t
	}
	return cp
}
