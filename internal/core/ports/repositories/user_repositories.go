package repositories

import (
	"context"

	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
)

// UserReader defines read operations for user data. Every call reflects the
// latest committed state; implementations must not cache.
type UserReader interface {
	// FindUserByID retrieves a user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by normalized (lowercased) email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByProvider retrieves the user linked to the given
	// (provider, providerUserID) pair.
	FindUserByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// CreateUser persists a new user together with any provider links.
	// Returns apperrors.ErrDuplicate if the email or a provider link is
	// already claimed; uniqueness is enforced by the store itself so that
	// concurrent creates resolve to exactly one success.
	CreateUser(ctx context.Context, user domain.User) error

	// UpdateUser persists mutations (profile, password hash, last login)
	// to an existing user. Returns apperrors.ErrNotFound if the record no
	// longer exists.
	UpdateUser(ctx context.Context, user domain.User) error

	// AddProviderLink attaches an OAuth provider identity to an existing
	// user. Returns apperrors.ErrDuplicate if the pair is already linked.
	AddProviderLink(ctx context.Context, userID string, link domain.ProviderLink) error
}

// UserRepository combines all user-related repository interfaces.
type UserRepository interface {
	UserReader
	UserWriter
}
