// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"strconv"

	"github.com/google/uuid"

	dErrors "propertyhub/pkg/domain-errors"
)

// Distinct numeric ID types - the compiler prevents passing an OwnerID where a
// PropertyID is expected. PropertyHub entities carry database-issued positive
// integer identifiers.
type (
	UserID     int64
	OwnerID    int64
	TenantID   int64
	PropertyID int64
	RoomID     int64
	PaymentID  int64
	StateID    int64
	CityID     int64
)

// SessionID identifies a login session record.
type SessionID uuid.UUID

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseUserID(s string) (UserID, error) {
	id, err := parsePositiveInt(s, "user ID")
	return UserID(id), err
}

func ParseOwnerID(s string) (OwnerID, error) {
	id, err := parsePositiveInt(s, "owner ID")
	return OwnerID(id), err
}

func ParsePropertyID(s string) (PropertyID, error) {
	id, err := parsePositiveInt(s, "property ID")
	return PropertyID(id), err
}

func ParsePaymentID(s string) (PaymentID, error) {
	id, err := parsePositiveInt(s, "payment ID")
	return PaymentID(id), err
}

func ParseSessionID(s string) (SessionID, error) {
	if s == "" {
		return SessionID(uuid.Nil), dErrors.New(dErrors.CodeInvalidInput, "session ID cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return SessionID(uuid.Nil), dErrors.New(dErrors.CodeInvalidInput, "session ID must be a valid uuid")
	}
	return SessionID(id), nil
}

// NewSessionID issues a fresh random session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.New())
}

// String methods - for logging and debugging.

func (id UserID) String() string     { return strconv.FormatInt(int64(id), 10) }
func (id OwnerID) String() string    { return strconv.FormatInt(int64(id), 10) }
func (id TenantID) String() string   { return strconv.FormatInt(int64(id), 10) }
func (id PropertyID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id RoomID) String() string     { return strconv.FormatInt(int64(id), 10) }
func (id PaymentID) String() string  { return strconv.FormatInt(int64(id), 10) }
func (id SessionID) String() string  { return uuid.UUID(id).String() }

// IsNil checks - used for service-layer validation.

func (id UserID) IsNil() bool     { return id <= 0 }
func (id OwnerID) IsNil() bool    { return id <= 0 }
func (id TenantID) IsNil() bool   { return id <= 0 }
func (id PropertyID) IsNil() bool { return id <= 0 }
func (id RoomID) IsNil() bool     { return id <= 0 }
func (id PaymentID) IsNil() bool  { return id <= 0 }
func (id SessionID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

// parsePositiveInt is the shared validation logic. PropertyHub IDs are
// database sequence values, so zero and negatives are always invalid.
func parsePositiveInt(s, label string) (int64, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 1 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, label+" must be a positive integer")
	}
	return v, nil
}
