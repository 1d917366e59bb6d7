// Package models defines the property domain types.
package models

import (
	"time"

	"propertyhub/pkg/domain"
)

// Property is a rental building listed by an owner.
type Property struct {
	ID        domain.PropertyID
	OwnerID   domain.OwnerID
	Name      string
	State     string
	City      string
	Contact   string
	Address   string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PropertyInput is the typed, already-validated create or update payload.
// ID is zero on create. UseExistingImage keeps the stored image on update
// instead of replacing it with ImageURL.
type PropertyInput struct {
	ID               domain.PropertyID
	Name             string
	State            string
	City             string
	Contact          string
	Address          string
	ImageURL         string
	UseExistingImage bool
}
