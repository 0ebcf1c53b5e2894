package domain

import (
	"time"
)

// Role is the access level of a user.
type Role string

// Role constants define the allowed user roles.
const (
	RoleCustomer     Role = "customer"
	RoleCollaborator Role = "collaborator"
	RoleAdmin        Role = "admin"
)

// ValidRoles returns the set of valid user roles.
func ValidRoles() []Role {
	return []Role{RoleCustomer, RoleCollaborator, RoleAdmin}
}

// IsValid checks whether the role is a known user role.
func (r Role) IsValid() bool {
	for _, v := range ValidRoles() {
		if v == r {
			return true
		}
	}
	return false
}

// User represents an account on the platform.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
