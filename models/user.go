package models

import (
	"strings"
	"time"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is unique case-insensitively; it is always stored normalised
	// by [NormalizeEmail].
	Email string `json:"email"`

	// PasswordHash is the self-describing bcrypt digest. Never serialised.
	PasswordHash string `json:"-"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Role is the privilege level.
	Role Role `json:"role"`

	// VendorID is the optional owning vendor.
	VendorID *int64 `json:"vendorId,omitempty"`

	// IsActive is false for deactivated accounts; they cannot log in or
	// refresh tokens.
	IsActive bool `json:"isActive"`

	// LastLoginAt is updated asynchronously after each successful login.
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`

	// Phone is the optional contact number.
	Phone *string `json:"phone,omitempty"`

	// PasswordChangedAt is set by password changes.
	PasswordChangedAt *time.Time `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// PublicUser is the projection of [User] returned by the API.
type PublicUser struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        Role       `json:"role"`
	VendorID    *int64     `json:"vendorId,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// UserSummary is the short identity returned with a successful login.
type UserSummary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Public returns the user's public fields.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:          u.UserID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		VendorID:    u.VendorID,
		Phone:       u.Phone,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// Summary returns {id, email, name, role}.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:    u.UserID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
