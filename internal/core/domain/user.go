package domain

import "time"

// UserRole is the authorization role of a user.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// AuthProvider identifies an external OAuth identity provider.
type AuthProvider string

const (
	ProviderGoogle   AuthProvider = "google"
	ProviderFacebook AuthProvider = "facebook"
)

// IsValid reports whether the provider is one the application supports.
func (p AuthProvider) IsValid() bool {
	return p == ProviderGoogle || p == ProviderFacebook
}

// Profile holds display-only user details.
type Profile struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ProviderLink associates a user with an identity at an OAuth provider.
// Each (Provider, ProviderUserID) pair is unique across all users.
type ProviderLink struct {
	Provider       AuthProvider `json:"provider"`
	ProviderUserID string       `json:"providerUserID"`
}

// User represents a storefront account. A user holds a password hash, one or
// more provider links, or both; never neither after creation.
type User struct {
	UserID       string         `json:"userID"`
	Email        string         `json:"email,omitempty"`
	PasswordHash string         `json:"-"`
	Providers    []ProviderLink `json:"-"`
	Role         UserRole       `json:"role"`
	Profile      Profile        `json:"profile"`
	CreatedAt    time.Time      `json:"createdAt"`
	LastLogin    *time.Time     `json:"lastLogin,omitempty"`
}

// HasPassword reports whether the user can authenticate with a local password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// LinkedTo reports whether the user already has a link for the given provider.
func (u *User) LinkedTo(provider AuthProvider) bool {
	for _, link := range u.Providers {
		if link.Provider == provider {
			return true
		}
	}
	return false
}
