package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/luxe-fragrances/storefront-backend/internal/apperrors"
	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
	portssvc "github.com/luxe-fragrances/storefront-backend/internal/core/ports/services"
	"github.com/luxe-fragrances/storefront-backend/internal/platform/config"
)

// TokenClaims are the claims embedded in an application bearer token. The
// user ID travels in the registered Subject claim; email and role are custom
// claims so authorization checks never need a store lookup.
type TokenClaims struct {
	Email string          `json:"email,omitempty"`
	Role  domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// tokenService implements TokenSvcFacade with HS256-signed JWTs. The signing
// key, validity window, and issuer come from configuration at construction.
type tokenService struct {
	secret   []byte
	validity time.Duration
	issuer   string
}

// NewTokenService creates a new tokenService from application configuration.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{
		secret:   []byte(cfg.JWTSecret),
		validity: cfg.JWTExpiryDuration,
		issuer:   cfg.JWTIssuer,
	}
}

// IssueToken mints a signed bearer token for the user, valid for the
// configured window (7 days by default).
func (s *tokenService) IssueToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.validity)

	claims := TokenClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// VerifyToken checks the signature and expiry of a bearer token and returns
// the identity it embeds. It never consults the user store; a token stays
// valid for its full window regardless of later account changes.
func (s *tokenService) VerifyToken(ctx context.Context, tokenString string) (*domain.Identity, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		// Malformed structure, signature mismatch, and expiry all
		// collapse to the same error for the caller.
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, apperrors.ErrInvalidToken
	}

	return &domain.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
