package models

import "time"

// UserRole represents the four caller roles sharing the outpass record set.
type UserRole string

const (
	RoleResident   UserRole = "RESIDENT"
	RoleSupervisor UserRole = "SUPERVISOR"
	RoleOfficer    UserRole = "OFFICER"
	RoleAdmin      UserRole = "ADMIN"
)

// Valid reports whether the role is one of the four known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleResident, RoleSupervisor, RoleOfficer, RoleAdmin:
		return true
	}
	return false
}

// User is the base identity stored in the users table. Role-specific data
// lives in one profile table per role, joined one-to-one on user id.
type User struct {
	ID           string     `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Email        string     `db:"email" json:"email"`
	MobileNumber string     `db:"mobile_number" json:"mobile_number"`
	Role         UserRole   `db:"role" json:"role"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
