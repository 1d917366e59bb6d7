// Package property provides property persistence.
package property

import (
	"context"
	"sort"
	"sync"
	"time"

	"propertyhub/internal/property/models"
	"propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
)

// InMemoryPropertyStore keeps properties in memory.
type InMemoryPropertyStore struct {
	mu         sync.RWMutex
	properties map[domain.PropertyID]*models.Property
	nextID     domain.PropertyID
}

// NewInMemoryPropertyStore creates an empty property store.
func NewInMemoryPropertyStore() *InMemoryPropertyStore {
	return &InMemoryPropertyStore{
		properties: make(map[domain.PropertyID]*models.Property),
		nextID:     1,
	}
}

// Create assigns an ID and stores the property.
func (s *InMemoryPropertyStore) Create(ctx context.Context, property *models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	property.ID = s.nextID
	s.nextID++
	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	stored := *property
	s.properties[property.ID] = &stored
	return nil
}

// FindByID returns a copy of the property.
func (s *InMemoryPropertyStore) FindByID(ctx context.Context, id domain.PropertyID) (*models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	property, ok := s.properties[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "property not found")
	}
	copied := *property
	return &copied, nil
}

// ListByOwner returns the owner's properties ordered by ID.
func (s *InMemoryPropertyStore) ListByOwner(ctx context.Context, ownerID domain.OwnerID) ([]*models.Property, error) {
	s.mu.RLock()
	result := make([]*models.Property, 0)
	for _, property := range s.properties {
		if property.OwnerID == ownerID {
			copied := *property
			result = append(result, &copied)
		}
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update replaces the stored property, preserving CreatedAt.
func (s *InMemoryPropertyStore) Update(ctx context.Context, property *models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.properties[property.ID]
	if !ok {
		return dErrors.New(dErrors.CodeNotFound, "property not found")
	}
	property.CreatedAt = existing.CreatedAt
	property.UpdatedAt = time.Now()

	stored := *property
	s.properties[property.ID] = &stored
	return nil
}
