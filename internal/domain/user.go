package domain

import "time"

// UserRole separates employees from administrators.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// Valid reports whether the role is a known value.
func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an employee account. IDs are 6-digit strings assigned at
// creation; CompanyID carries the badge code derived from the ID.
type User struct {
	ID           string
	Username     string
	FullName     string
	Department   string
	Email        string
	Role         UserRole
	CompanyID    *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
