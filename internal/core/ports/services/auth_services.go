package services

import (
	"context"
	"time"

	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
)

// PasswordHasher defines one-way credential hashing. Hashing is deliberately
// expensive; the work factor is fixed at construction time.
type PasswordHasher interface {
	// Hash produces a salted one-way digest. Two calls with the same input
	// yield different digests.
	Hash(password string) (string, error)

	// Verify reports whether password matches the stored digest. It
	// returns false, never an error, for malformed digests.
	Verify(password, hash string) bool
}

// TokenSvcFacade defines the interface for bearer token management.
type TokenSvcFacade interface {
	// IssueToken mints a signed, self-contained bearer token embedding
	// the user's ID, email, and role, valid for the configured window.
	IssueToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// VerifyToken checks signature and expiry and returns the embedded
	// identity. Verification is purely cryptographic; it never consults
	// the user store. Any failure is apperrors.ErrInvalidToken.
	VerifyToken(ctx context.Context, tokenString string) (*domain.Identity, error)
}

// OAuthSvcFacade defines the interface for the OAuth provider exchange.
// It owns the code-for-token exchange and userinfo retrieval for the
// supported providers and hands the resolver a normalized profile.
type OAuthSvcFacade interface {
	// GenerateStateString creates a secure random CSRF token for the
	// OAuth redirect flow.
	GenerateStateString(ctx context.Context) (string, error)

	// GetLoginURL returns the provider consent URL for the given state.
	GetLoginURL(ctx context.Context, provider domain.AuthProvider, state string) (string, error)

	// ExchangeCode exchanges an authorization code for provider tokens,
	// validates them, and returns the normalized user profile.
	ExchangeCode(ctx context.Context, provider domain.AuthProvider, code string) (*domain.OAuthProfile, error)
}
