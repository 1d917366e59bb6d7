// Package service implements the owner-facing property operations.
package service

import (
	"context"
	"errors"
	"log/slog"

	"propertyhub/internal/property/models"
	"propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
)

// PropertyStore persists properties.
type PropertyStore interface {
	Create(ctx context.Context, property *models.Property) error
	FindByID(ctx context.Context, id domain.PropertyID) (*models.Property, error)
	ListByOwner(ctx context.Context, ownerID domain.OwnerID) ([]*models.Property, error)
	Update(ctx context.Context, property *models.Property) error
}

// Service wires the property operations. Every operation is scoped to the
// calling owner; cross-owner access comes back as forbidden.
type Service struct {
	properties PropertyStore
	logger     *slog.Logger
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

// New constructs the property service.
func New(properties PropertyStore, opts ...Option) (*Service, error) {
	if properties == nil {
		return nil, errors.New("property store is required")
	}
	s := &Service{properties: properties, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Create lists a new property under the calling owner.
func (s *Service) Create(ctx context.Context, ownerID domain.OwnerID, in models.PropertyInput) (*models.Property, error) {
	property := &models.Property{
		OwnerID:  ownerID,
		Name:     in.Name,
		State:    in.State,
		City:     in.City,
		Contact:  in.Contact,
		Address:  in.Address,
		ImageURL: in.ImageURL,
	}
	if err := s.properties.Create(ctx, property); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "property created",
		"property_id", property.ID.String(),
		"owner_id", ownerID.String(),
	)
	return property, nil
}

// Update rewrites an existing property. UseExistingImage keeps the stored
// image instead of whatever the payload carries.
func (s *Service) Update(ctx context.Context, ownerID domain.OwnerID, in models.PropertyInput) (*models.Property, error) {
	existing, err := s.properties.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != ownerID {
		return nil, dErrors.New(dErrors.CodeForbidden, "property belongs to another owner")
	}

	image := in.ImageURL
	if in.UseExistingImage {
		image = existing.ImageURL
	}
	property := &models.Property{
		ID:       in.ID,
		OwnerID:  ownerID,
		Name:     in.Name,
		State:    in.State,
		City:     in.City,
		Contact:  in.Contact,
		Address:  in.Address,
		ImageURL: image,
	}
	if err := s.properties.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// List returns the calling owner's properties.
func (s *Service) List(ctx context.Context, ownerID domain.OwnerID) ([]*models.Property, error) {
	return s.properties.ListByOwner(ctx, ownerID)
}

// Get returns one property, scoped to the calling owner.
func (s *Service) Get(ctx context.Context, ownerID domain.OwnerID, id domain.PropertyID) (*models.Property, error) {
	property, err := s.properties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != ownerID {
		return nil, dErrors.New(dErrors.CodeForbidden, "property belongs to another owner")
	}
	return property, nil
}
