package model

import "time"

// Role names stored in users.role.
const (
	RoleAdmin   = "admin"
	RoleCaptain = "captain"
	RoleCrew    = "crew"
	RoleManager = "manager"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleCaptain, RoleCrew, RoleManager:
		return true
	}
	return false
}

// User represents an account as stored in the `users` table.  The
// password hash is never serialized.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique, lower-cased email address.
//	PasswordHash – bcrypt hashed password.
//	FirstName    – optional given name captured at registration.
//	Surname      – optional family name captured at registration.
//	Role         – one of admin, captain, crew, manager.
//	IsActive     – whether the account may log in.
//	CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    *string   `json:"first_name,omitempty"`
	Surname      *string   `json:"surname,omitempty"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
