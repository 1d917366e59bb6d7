// Package models defines the owner domain types.
package models

import (
	"time"

	"propertyhub/pkg/domain"
)

// Owner is a property owner account as the admin surface sees it.
type Owner struct {
	ID            domain.OwnerID
	UserID        domain.UserID
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Status        domain.OwnerStatus
	StateID       domain.StateID
	CityID        domain.CityID
	PropertyCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ListFilter narrows and pages the owner listing. Zero values mean
// "no filter" for the optional members; Page and Limit are always set because
// the query schema fills their defaults.
type ListFilter struct {
	Page    int
	Limit   int
	Search  string
	Status  domain.OwnerStatus
	StateID domain.StateID
	CityID  domain.CityID
}

// Page is one page of the owner listing plus the counts pagers need.
type Page struct {
	Owners     []*Owner
	Total      int
	PageNumber int
	Limit      int
	TotalPages int
}
