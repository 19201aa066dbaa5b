package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email" validate:"required,email"`
	Mobile       string    `json:"mobile,omitempty"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	Role         UserRole  `json:"role"`
	Blocked      bool      `json:"blocked"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasAdminAccess reports whether the user carries the admin capability,
// either via the legacy is_admin flag or the role column.
func (u *User) HasAdminAccess() bool {
	return u.IsAdmin || u.Role == RoleAdmin
}
