package models

import (
	"time"

	"propertyhub/pkg/domain"
)

// User is an account on the platform. The role decides which surface the
// client lands on after login; the core only ever hands the role out.
type User struct {
	ID           domain.UserID
	Role         domain.RoleID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterInput is the typed, already-validated registration payload.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      domain.RoleID
}

// Credentials carries a login attempt plus the device description captured
// from the User-Agent, kept on the audit log so users recognize their logins.
type Credentials struct {
	Email    string
	Password string
	Device   string
}

// AuthResult is what a successful login or registration hands back.
type AuthResult struct {
	User  *User
	Token string
}
