package domain

import (
	dErrors "propertyhub/pkg/domain-errors"
)

// RoleID enumerates the permission tier carried in an access token.
// Values match the identity provider's role claim.
type RoleID int

const (
	RoleUnknown RoleID = 0
	RoleAdmin   RoleID = 1
	RoleOwner   RoleID = 2
	RoleTenant  RoleID = 3
)

// ParseRoleID validates a role claim value from a decoded token.
func ParseRoleID(v int) (RoleID, error) {
	switch RoleID(v) {
	case RoleAdmin, RoleOwner, RoleTenant:
		return RoleID(v), nil
	}
	return RoleUnknown, dErrors.New(dErrors.CodeInvalidInput, "unknown role identifier")
}

func (r RoleID) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleOwner:
		return "owner"
	case RoleTenant:
		return "tenant"
	}
	return "unknown"
}

// IsValid reports whether the role is one of the known tiers.
func (r RoleID) IsValid() bool {
	return r == RoleAdmin || r == RoleOwner || r == RoleTenant
}

// OwnerStatus is the moderation state of an owner account.
type OwnerStatus string

const (
	OwnerActive    OwnerStatus = "Active"
	OwnerInactive  OwnerStatus = "Inactive"
	OwnerSuspended OwnerStatus = "Suspended"
)

// OwnerStatuses lists the accepted owner statuses in declaration order.
var OwnerStatuses = []string{string(OwnerActive), string(OwnerInactive), string(OwnerSuspended)}

// PaymentStatus is the lifecycle state of a rent payment order.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentCaptured PaymentStatus = "Captured"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentRefunded PaymentStatus = "Refunded"
)

// PaymentStatuses lists the accepted payment statuses in declaration order.
var PaymentStatuses = []string{
	string(PaymentPending), string(PaymentCaptured), string(PaymentFailed), string(PaymentRefunded),
}
