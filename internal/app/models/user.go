package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID            int64      `json:"id" db:"id" example:"1"`
	Email         string     `json:"email" db:"email" example:"user@example.com"`
	Password      string     `json:"-" db:"password"` // hashed, excluded from JSON
	FirstName     string     `json:"firstName" db:"first_name" example:"John"`
	LastName      string     `json:"lastName" db:"last_name" example:"Doe"`
	RoleType      RoleType   `json:"roleType" db:"role_type" example:"USER"`
	EmailVerified bool       `json:"emailVerified" db:"email_verified" example:"true"`
	IsActive      bool       `json:"isActive" db:"is_active" example:"true"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.RoleType == RoleAdmin
}
