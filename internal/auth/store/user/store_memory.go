package user

import (
	"context"
	"strings"
	"sync"
	"time"

	"propertyhub/internal/auth/models"
	"propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
)

// Error Contract:
// All store methods follow this error pattern:
// - Return CodeNotFound when the requested entity does not exist
// - Return CodeConflict when a unique constraint would be violated
// - Return nil for successful operations
//
// InMemoryUserStore stores users in memory for tests/dev.
type InMemoryUserStore struct {
	mu      sync.RWMutex
	users   map[domain.UserID]*models.User
	byEmail map[string]domain.UserID
	nextID  domain.UserID
}

// New constructs an empty in-memory user store.
func New() *InMemoryUserStore {
	return &InMemoryUserStore{
		users:   make(map[domain.UserID]*models.User),
		byEmail: make(map[string]domain.UserID),
		nextID:  1,
	}
}

func (s *InMemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(user.Email)
	if _, exists := s.byEmail[key]; exists {
		return dErrors.New(dErrors.CodeConflict, "email already registered")
	}

	user.ID = s.nextID
	s.nextID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	cp := *user
	s.users[user.ID] = &cp
	s.byEmail[key] = user.ID
	return nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, id domain.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
}

func (s *InMemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.byEmail[normalizeEmail(email)]; ok {
		cp := *s.users[id]
		return &cp, nil
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
}

func (s *InMemoryUserStore) UpdatePassword(_ context.Context, id domain.UserID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return dErrors.New(dErrors.CodeNotFound, "user not found")
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
