// Package store persists organisation records.
package store

import (
	"context"
	"sync"

	"driveguard/internal/org/models"
	id "driveguard/pkg/domain"
	"driveguard/pkg/platform/sentinel"
)

// MemoryStore is an in-memory organisation store for tests and development.
type MemoryStore struct {
	mu   sync.RWMutex
	orgs map[id.OrgID]models.Org
}

// NewMemory constructs an empty in-memory organisation store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		orgs: make(map[id.OrgID]models.Org),
	}
}

// Create stores a new organisation. Names are unique.
func (s *MemoryStore) Create(_ context.Context, org *models.Org) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.orgs {
		if existing.Name == org.Name {
			return sentinel.ErrConflict
		}
	}
	s.orgs[org.ID] = *org
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, orgID id.OrgID) (*models.Org, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	org, ok := s.orgs[orgID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := org
	return &cp, nil
}

func (s *MemoryStore) Update(_ context.Context, org *models.Org) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orgs[org.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.orgs[org.ID] = *org
	return nil
}
