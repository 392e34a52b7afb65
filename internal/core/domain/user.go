package domain

import (
	"errors"
	"time"
)

// Role is the closed set of roles known to the authorization layer.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleClientAdmin Role = "CLIENT_ADMIN"
	RoleTechnician  Role = "TECHNICIAN"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleClientAdmin, RoleTechnician:
		return true
	}
	return false
}

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("access forbidden")
)

// User models an account holder: a platform admin, a client-side admin scoped
// to one tenant, or a field technician.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Role         Role       `json:"role"`
	ClientID     string     `json:"client_id,omitempty"`
	ResetToken   string     `json:"-"`
	ResetExpiry  *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CanAccessClient reports whether the user may touch data belonging to the
// given tenant. Admins are unscoped; everyone else is pinned to their own
// client. An empty clientID means "no tenant restriction requested".
func (u *User) CanAccessClient(clientID string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	return clientID == "" || clientID == u.ClientID
}
