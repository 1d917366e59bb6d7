// Package payment provides payment persistence.
package payment

import (
	"context"
	"sort"
	"sync"
	"time"

	"propertyhub/internal/payment/models"
	"propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
)

// InMemoryPaymentStore keeps payments in memory.
type InMemoryPaymentStore struct {
	mu       sync.RWMutex
	payments map[domain.PaymentID]*models.Payment
	byOrder  map[string]domain.PaymentID
	nextID   domain.PaymentID
}

// NewInMemoryPaymentStore creates an empty payment store.
func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{
		payments: make(map[domain.PaymentID]*models.Payment),
		byOrder:  make(map[string]domain.PaymentID),
		nextID:   1,
	}
}

// Create assigns an ID and stores the payment.
func (s *InMemoryPaymentStore) Create(ctx context.Context, payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payment.ID = s.nextID
	s.nextID++
	now := time.Now()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	stored := *payment
	s.payments[payment.ID] = &stored
	s.byOrder[payment.OrderRef] = payment.ID
	return nil
}

// FindByID returns a copy of the payment.
func (s *InMemoryPaymentStore) FindByID(ctx context.Context, id domain.PaymentID) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findLocked(id)
}

// FindByOrderRef resolves a gateway order reference to its payment.
func (s *InMemoryPaymentStore) FindByOrderRef(ctx context.Context, orderRef string) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byOrder[orderRef]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "payment not found")
	}
	return s.findLocked(id)
}

// Update replaces the stored payment, preserving CreatedAt.
func (s *InMemoryPaymentStore) Update(ctx context.Context, payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.payments[payment.ID]
	if !ok {
		return dErrors.New(dErrors.CodeNotFound, "payment not found")
	}
	payment.CreatedAt = existing.CreatedAt
	payment.UpdatedAt = time.Now()

	stored := *payment
	s.payments[payment.ID] = &stored
	return nil
}

// List returns one page of payments matching the filter, newest first.
func (s *InMemoryPaymentStore) List(ctx context.Context, filter models.ListFilter) (*models.Page, error) {
	s.mu.RLock()
	matched := make([]*models.Payment, 0, len(s.payments))
	for _, payment := range s.payments {
		if matches(payment, filter) {
			copied := *payment
			matched = append(matched, &copied)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

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
		Payments:   matched[start:end],
		Total:      total,
		PageNumber: filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *InMemoryPaymentStore) findLocked(id domain.PaymentID) (*models.Payment, error) {
	payment, ok := s.payments[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "payment not found")
	}
	copied := *payment
	return &copied, nil
}

func matches(payment *models.Payment, filter models.ListFilter) bool {
	if filter.Status != "" && payment.Status != filter.Status {
		return false
	}
	if filter.TenantID > 0 && payment.TenantID != filter.TenantID {
		return false
	}
	if filter.PropertyID > 0 && payment.PropertyID != filter.PropertyID {
		return false
	}
	if !filter.StartDate.IsZero() && payment.CreatedAt.Before(filter.StartDate) {
		return false
	}
	if !filter.EndDate.IsZero() {
		// EndDate is a date; anything on that day still matches.
		if !payment.CreatedAt.Before(filter.EndDate.AddDate(0, 0, 1)) {
			return false
		}
	}
	return true
}
