package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/luxe-fragrances/storefront-backend/internal/apperrors"
	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
	portsrepo "github.com/luxe-fragrances/storefront-backend/internal/core/ports/repositories"
	portssvc "github.com/luxe-fragrances/storefront-backend/internal/core/ports/services"
	"github.com/luxe-fragrances/storefront-backend/internal/dto"
)

// userService implements UserSvcFacade. It is the only component with
// multi-step identity orchestration: every path that turns a credential into
// a (user, token) pair lives here. It holds no identity state of its own;
// the repository is the system of record.
type userService struct {
	userRepo portsrepo.UserRepository
	hasher   portssvc.PasswordHasher
	tokenSvc portssvc.TokenSvcFacade
}

// NewUserService creates a new userService.
func NewUserService(userRepo portsrepo.UserRepository, hasher portssvc.PasswordHasher, tokenSvc portssvc.TokenSvcFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
		tokenSvc: tokenSvc,
	}
}

// normalizeEmail folds case and trims whitespace so that lookups and the
// store's uniqueness constraint agree on what "the same email" means.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a local email/password account and signs the user in.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, string, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check for existing account: %w", err)
	}
	if existing != nil {
		return nil, "", apperrors.ErrAccountExists
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         domain.RoleUser,
		Profile: domain.Profile{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
		},
		CreatedAt: now,
		LastLogin: &now,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		// The store's uniqueness constraint is the real guarantee; a
		// concurrent registration can slip past the lookup above.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, "", apperrors.ErrAccountExists
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, _, err := s.tokenSvc.IssueToken(ctx, &user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return &user, token, nil
}

// Login authenticates a local email/password account. All failure modes
// collapse to ErrInvalidCredentials so callers cannot enumerate accounts.
func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	// OAuth-only accounts have no password to check.
	if !user.HasPassword() {
		return nil, "", apperrors.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if err := s.touchLastLogin(ctx, user); err != nil {
		return nil, "", err
	}

	token, _, err := s.tokenSvc.IssueToken(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

// OAuthSignIn resolves a normalized provider profile to a local account:
// an existing link wins, then an existing account with the same email gains
// the link, and only then is a fresh account created.
func (s *userService) OAuthSignIn(ctx context.Context, profile domain.OAuthProfile) (*domain.User, string, error) {
	if !profile.Provider.IsValid() {
		return nil, "", fmt.Errorf("%w: unsupported provider %q", apperrors.ErrValidation, profile.Provider)
	}

	user, err := s.userRepo.FindUserByProvider(ctx, profile.Provider, profile.ProviderUserID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to look up provider link: %w", err)
	}

	if user == nil {
		user, err = s.linkOrCreateOAuthUser(ctx, profile)
		if err != nil {
			return nil, "", err
		}
	}

	if err := s.touchLastLogin(ctx, user); err != nil {
		return nil, "", err
	}

	token, _, err := s.tokenSvc.IssueToken(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

// linkOrCreateOAuthUser handles the first sign-in for a provider identity:
// attach the link to the account that already owns the email, or create a
// new account carrying just the link.
func (s *userService) linkOrCreateOAuthUser(ctx context.Context, profile domain.OAuthProfile) (*domain.User, error) {
	email := normalizeEmail(profile.Email)
	link := domain.ProviderLink{Provider: profile.Provider, ProviderUserID: profile.ProviderUserID}

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	if existing != nil {
		if err := s.userRepo.AddProviderLink(ctx, existing.UserID, link); err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("failed to link provider to account: %w", err)
		}
		existing.Providers = append(existing.Providers, link)
		return existing, nil
	}

	now := time.Now()
	user := domain.User{
		UserID:    uuid.NewString(),
		Email:     email,
		Providers: []domain.ProviderLink{link},
		Role:      domain.RoleUser,
		Profile: domain.Profile{
			FirstName: profile.GivenName,
			LastName:  profile.FamilyName,
		},
		CreatedAt: now,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.adoptRaceWinner(ctx, profile, link)
		}
		return nil, fmt.Errorf("failed to create oauth user: %w", err)
	}
	return &user, nil
}

// adoptRaceWinner resolves a create collision during OAuth sign-in. The
// duplicate came either from a concurrent sign-in with the same provider
// identity, in which case the winner's record is the account, or from a
// concurrent local registration claiming the email, in which case that
// account gains the provider link.
func (s *userService) adoptRaceWinner(ctx context.Context, profile domain.OAuthProfile, link domain.ProviderLink) (*domain.User, error) {
	winner, err := s.userRepo.FindUserByProvider(ctx, profile.Provider, profile.ProviderUserID)
	if err == nil {
		return winner, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up provider link after create collision: %w", err)
	}

	existing, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(profile.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to look up user by email after create collision: %w", err)
	}
	if err := s.userRepo.AddProviderLink(ctx, existing.UserID, link); err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
		return nil, fmt.Errorf("failed to link provider to account: %w", err)
	}
	existing.Providers = append(existing.Providers, link)
	return existing, nil
}

// touchLastLogin records a successful authentication on the user record.
func (s *userService) touchLastLogin(ctx context.Context, user *domain.User) error {
	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a partial update to the display-only profile fields.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user for profile update: %w", err)
	}

	if req.FirstName != nil {
		user.Profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.Profile.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Profile.Phone = *req.Phone
	}

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}
