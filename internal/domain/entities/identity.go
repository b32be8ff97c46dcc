package entities

import (
	"time"
)

// Role represents the role of an authenticated actor
type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// Identity represents an authenticated actor: a customer, a provider,
// or an admin. Providers additionally carry the service category they
// serve, which drives assignment and marketplace visibility.
type Identity struct {
	ID              string          `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	Email           string          `json:"email" db:"email"`
	Role            Role            `json:"role" db:"role"`
	ServiceCategory ServiceCategory `json:"serviceCategory,omitempty" db:"service_category"`
	Phone           string          `json:"phone,omitempty" db:"phone"`
	Blocked         bool            `json:"blocked" db:"blocked"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
}

// IsProvider reports whether the identity acts as a service provider
func (i *Identity) IsProvider() bool {
	return i.Role == RoleProvider
}

// IsAdmin reports whether the identity has platform-wide privileges
func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
