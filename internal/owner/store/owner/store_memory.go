// Package owner provides owner persistence.
package owner

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"propertyhub/internal/owner/models"
	"propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
)

// InMemoryOwnerStore keeps owners in memory. Suitable for development and
// tests; listing is a filtered scan over a snapshot sorted by ID.
type InMemoryOwnerStore struct {
	mu     sync.RWMutex
	owners map[domain.OwnerID]*models.Owner
	nextID domain.OwnerID
}

// NewInMemoryOwnerStore creates an empty owner store.
func NewInMemoryOwnerStore() *InMemoryOwnerStore {
	return &InMemoryOwnerStore{
		owners: make(map[domain.OwnerID]*models.Owner),
		nextID: 1,
	}
}

// Create assigns an ID and stores the owner. New owners start Active unless
// a status was set by the caller.
func (s *InMemoryOwnerStore) Create(ctx context.Context, owner *models.Owner) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner.ID = s.nextID
	s.nextID++
	if owner.Status == "" {
		owner.Status = domain.OwnerActive
	}
	now := time.Now()
	owner.CreatedAt = now
	owner.UpdatedAt = now

	stored := *owner
	s.owners[owner.ID] = &stored
	return nil
}

// FindByID returns a copy of the owner.
func (s *InMemoryOwnerStore) FindByID(ctx context.Context, id domain.OwnerID) (*models.Owner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owner, ok := s.owners[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "owner not found")
	}
	copied := *owner
	return &copied, nil
}

// List returns one page of owners matching the filter, ordered by ID.
func (s *InMemoryOwnerStore) List(ctx context.Context, filter models.ListFilter) (*models.Page, error) {
	s.mu.RLock()
	matched := make([]*models.Owner, 0, len(s.owners))
	for _, owner := range s.owners {
		if matches(owner, filter) {
			copied := *owner
			matched = append(matched, &copied)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	totalPages := (total + filter.Limit - 1) / filter.Limit
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}

	return &models.Page{
		Owners:     matched[start:end],
		Total:      total,
		PageNumber: filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateStatus sets the owner status and bumps UpdatedAt.
func (s *InMemoryOwnerStore) UpdateStatus(ctx context.Context, id domain.OwnerID, status domain.OwnerStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.owners[id]
	if !ok {
		return dErrors.New(dErrors.CodeNotFound, "owner not found")
	}
	owner.Status = status
	owner.UpdatedAt = time.Now()
	return nil
}

func matches(owner *models.Owner, filter models.ListFilter) bool {
	if filter.Status != "" && owner.Status != filter.Status {
		return false
	}
	if filter.StateID > 0 && owner.StateID != filter.StateID {
		return false
	}
	if filter.CityID > 0 && owner.CityID != filter.CityID {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		haystack := strings.ToLower(owner.FirstName + " " + owner.LastName + " " + owner.Email)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
