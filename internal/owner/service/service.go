// Package service implements the admin-facing owner operations: the filtered
// listing and status moderation.
package service

import (
	"context"
	"errors"
	"log/slog"

	"propertyhub/internal/owner/models"
	"propertyhub/pkg/domain"
)

// OwnerStore persists owner accounts.
type OwnerStore interface {
	Create(ctx context.Context, owner *models.Owner) error
	FindByID(ctx context.Context, id domain.OwnerID) (*models.Owner, error)
	List(ctx context.Context, filter models.ListFilter) (*models.Page, error)
	UpdateStatus(ctx context.Context, id domain.OwnerID, status domain.OwnerStatus) error
}

// Service wires the owner operations.
type Service struct {
	owners OwnerStore
	logger *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs the owner service.
func New(owners OwnerStore, opts ...Option) (*Service, error) {
	if owners == nil {
		return nil, errors.New("owner store is required")
	}
	s := &Service{owners: owners, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// List returns one page of owners. The filter arrives already validated and
// defaulted by the query schema.
func (s *Service) List(ctx context.Context, filter models.ListFilter) (*models.Page, error) {
	return s.owners.List(ctx, filter)
}

// UpdateStatus moderates an owner account. The change is logged because
// suspensions are an audit-relevant admin action.
func (s *Service) UpdateStatus(ctx context.Context, id domain.OwnerID, status domain.OwnerStatus) (*models.Owner, error) {
	owner, err := s.owners.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if owner.Status == status {
		return owner, nil
	}

	if err := s.owners.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "owner status updated",
		"owner_id", id.String(),
		"from", string(owner.Status),
		"to", string(status),
	)
	observeStatusChange(status)
	owner.Status = status
	return owner, nil
}
