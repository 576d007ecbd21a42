package dto

import (
	"time"

	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
)

// RegisterRequest is the payload for local email/password registration.
// Email format and password length are enforced here, at the HTTP boundary.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// LoginRequest is the payload for local email/password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries the editable profile fields. Pointers
// differentiate omitted fields from explicit zero values.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
}

// UserResponse is the public view of a user. It never carries the password
// hash or the provider subject IDs.
type UserResponse struct {
	ID        string          `json:"id"`
	Email     string          `json:"email,omitempty"`
	Profile   domain.Profile  `json:"profile"`
	Role      domain.UserRole `json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
	LastLogin *time.Time      `json:"lastLogin,omitempty"`
}

// AuthResponse is returned by register, login, and OAuth sign-in.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse converts a domain.User to its public view.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.UserID,
		Email:     user.Email,
		Profile:   user.Profile,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		LastLogin: user.LastLogin,
	}
}
