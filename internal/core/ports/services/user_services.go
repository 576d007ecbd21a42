package services

import (
	"context"

	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
	"github.com/luxe-fragrances/storefront-backend/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID. The caller is responsible for
	// exposing only the public view.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserAuthSvc defines the identity-resolution operations: every path that
// turns a credential into a (user, token) pair.
type UserAuthSvc interface {
	// Register creates a local email/password account and returns the
	// new user with a freshly issued bearer token. Fails with
	// apperrors.ErrAccountExists if the email is already claimed.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, string, error)

	// Login authenticates a local account. Unknown email, OAuth-only
	// account, and wrong password all fail with
	// apperrors.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)

	// OAuthSignIn finds or creates the account for a normalized provider
	// profile. An existing account with the same email gains a provider
	// link rather than a duplicate identity being created.
	OAuthSignIn(ctx context.Context, profile domain.OAuthProfile) (*domain.User, string, error)
}

// UserWriterSvc defines mutation operations for user data.
type UserWriterSvc interface {
	// UpdateProfile updates the display-only profile fields.
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserAuthSvc
	UserWriterSvc
}
