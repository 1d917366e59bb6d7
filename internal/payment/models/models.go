// Package models defines the rent payment domain types.
package models

import (
	"time"

	"propertyhub/pkg/domain"
)

// Payment is one rent payment order and its lifecycle. OrderRef is the
// gateway order handle assigned at creation; PaymentRef arrives with the
// gateway callback at verification.
type Payment struct {
	ID             domain.PaymentID
	OrderRef       string
	PaymentRef     string
	TenantID       domain.TenantID
	PropertyID     domain.PropertyID
	RoomID         domain.RoomID
	Amount         float64
	Description    string
	Status         domain.PaymentStatus
	Reason         string
	RefundRef      string
	RefundedAmount float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderInput is the typed, already-validated order creation payload.
type OrderInput struct {
	TenantID    domain.TenantID
	PropertyID  domain.PropertyID
	RoomID      domain.RoomID
	Amount      float64
	Description string
}

// VerifyInput carries the gateway callback fields the client relays after
// completing checkout.
type VerifyInput struct {
	OrderRef   string
	PaymentRef string
	Signature  string
}

// RefundInput requests a refund. Amount zero means full refund.
type RefundInput struct {
	PaymentID domain.PaymentID
	Amount    float64
	Reason    string
}

// ListFilter narrows and pages the payment listing. Zero time values mean
// "no bound".
type ListFilter struct {
	Page       int
	Limit      int
	Status     domain.PaymentStatus
	TenantID   domain.TenantID
	PropertyID domain.PropertyID
	StartDate  time.Time
	EndDate    time.Time
}

// Page is one page of the payment listing.
type Page struct {
	Payments   []*Payment
	Total      int
	PageNumber int
	Limit      int
	TotalPages int
}
