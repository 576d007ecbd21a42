package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/luxe-fragrances/storefront-backend/internal/apperrors"
	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
	portssvc "github.com/luxe-fragrances/storefront-backend/internal/core/ports/services"
	"github.com/luxe-fragrances/storefront-backend/internal/core/services"
	"github.com/luxe-fragrances/storefront-backend/internal/dto"
)

// --- Mock UserRepository (based on UserService usage) ---
type MockUserRepository struct {
	mock.Mock
	FindUserByIDFn       func(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	FindUserByProviderFn func(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)
	CreateUserFn         func(ctx context.Context, user domain.User) error
	UpdateUserFn         func(ctx context.Context, user domain.User) error
	AddProviderLinkFn    func(ctx context.Context, userID string, link domain.ProviderLink) error
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindUserByEmailFn != nil {
		return m.FindUserByEmailFn(ctx, email)
	}
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	if m.FindUserByProviderFn != nil {
		return m.FindUserByProviderFn(ctx, provider, providerUserID)
	}
	args := m.Called(ctx, provider, providerUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user domain.User) error {
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) AddProviderLink(ctx context.Context, userID string, link domain.ProviderLink) error {
	if m.AddProviderLinkFn != nil {
		return m.AddProviderLinkFn(ctx, userID, link)
	}
	args := m.Called(ctx, userID, link)
	return args.Error(0)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	hasher       portssvc.PasswordHasher
	tokenSvc     portssvc.TokenSvcFacade
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.hasher = services.NewBcryptHasher(bcrypt.MinCost)
	suite.tokenSvc = services.NewTokenService(tokenConfig(time.Hour))
	suite.service = services.NewUserService(suite.mockUserRepo, suite.hasher, suite.tokenSvc)
}

func (suite *UserServiceTestSuite) hashOf(password string) string {
	hash, err := suite.hasher.Hash(password)
	suite.Require().NoError(err)
	return hash
}

// --- Register Tests ---

func (suite *UserServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Email:     "Ann@Example.COM",
		Password:  "password123",
		FirstName: "Ann",
		LastName:  "Smith",
	}

	// Lookups use the normalized email, not the raw input.
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ann@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("CreateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "ann@example.com" &&
			user.PasswordHash != "" &&
			user.PasswordHash != req.Password &&
			user.Role == domain.RoleUser &&
			user.LastLogin != nil
	})).Return(nil).Once()

	user, token, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal("ann@example.com", user.Email)
	suite.Equal("Ann", user.Profile.FirstName)
	suite.NotEmpty(user.UserID)
	suite.True(user.HasPassword())

	identity, err := suite.tokenSvc.VerifyToken(ctx, token)
	suite.Require().NoError(err)
	suite.Equal(user.UserID, identity.UserID)
	suite.Equal(user.Email, identity.Email)

	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_AccountExists() {
	ctx := context.Background()
	existing := &domain.User{UserID: "u1", Email: "ann@example.com"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ann@example.com").Return(existing, nil).Once()

	user, token, err := suite.service.Register(ctx, dto.RegisterRequest{
		Email:    "ann@example.com",
		Password: "password123",
	})

	suite.ErrorIs(err, apperrors.ErrAccountExists)
	suite.Nil(user)
	suite.Empty(token)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_ConcurrentDuplicate() {
	ctx := context.Background()

	// The pre-check misses, then the store's unique constraint fires.
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ann@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("CreateUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	_, _, err := suite.service.Register(ctx, dto.RegisterRequest{
		Email:    "ann@example.com",
		Password: "password123",
	})

	suite.ErrorIs(err, apperrors.ErrAccountExists)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Login Tests ---

func (suite *UserServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	stored := &domain.User{
		UserID:       "u1",
		Email:        "ann@example.com",
		PasswordHash: suite.hashOf("password123"),
		Role:         domain.RoleUser,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ann@example.com").Return(stored, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.UserID == "u1" && user.LastLogin != nil
	})).Return(nil).Once()

	user, token, err := suite.service.Login(ctx, "Ann@Example.com", "password123")

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotNil(user.LastLogin)
	suite.NotEmpty(token)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestLogin_UnknownEmail() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.Login(ctx, "nobody@example.com", "password123")

	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	stored := &domain.User{
		UserID:       "u1",
		Email:        "ann@example.com",
		PasswordHash: suite.hashOf("password123"),
	}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ann@example.com").Return(stored, nil).Once()

	_, _, err := suite.service.Login(ctx, "ann@example.com", "not-the-password")

	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestLogin_OAuthOnlyAccount() {
	ctx := context.Background()
	// Account created through OAuth has no password hash at all.
	stored := &domain.User{
		UserID: "u1",
		Email:  "ann@example.com",
		Providers: []domain.ProviderLink{
			{Provider: domain.ProviderGoogle, ProviderUserID: "g-123"},
		},
	}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ann@example.com").Return(stored, nil).Once()

	_, _, err := suite.service.Login(ctx, "ann@example.com", "anything")

	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- OAuthSignIn Tests ---

func (suite *UserServiceTestSuite) TestOAuthSignIn_ExistingLink() {
	ctx := context.Background()
	stored := &domain.User{
		UserID: "u1",
		Email:  "ann@example.com",
		Providers: []domain.ProviderLink{
			{Provider: domain.ProviderGoogle, ProviderUserID: "g-123"},
		},
	}

	suite.mockUserRepo.On("FindUserByProvider", ctx, domain.ProviderGoogle, "g-123").Return(stored, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, token, err := suite.service.OAuthSignIn(ctx, domain.OAuthProfile{
		Provider:       domain.ProviderGoogle,
		ProviderUserID: "g-123",
		Email:          "ann@example.com",
	})

	suite.Require().NoError(err)
	suite.Equal("u1", user.UserID)
	suite.NotEmpty(token)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestOAuthSignIn_LinksExistingEmailAccount() {
	ctx := context.Background()
	passwordHash := suite.hashOf("password123")
	stored := &domain.User{
		UserID:       "u1",
		Email:        "ann@example.com",
		PasswordHash: passwordHash,
	}
	link := domain.ProviderLink{Provider: domain.ProviderFacebook, ProviderUserID: "fb-9"}

	suite.mockUserRepo.On("FindUserByProvider", ctx, domain.ProviderFacebook, "fb-9").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ann@example.com").Return(stored, nil).Once()
	suite.mockUserRepo.On("AddProviderLink", ctx, "u1", link).Return(nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, _, err := suite.service.OAuthSignIn(ctx, domain.OAuthProfile{
		Provider:       domain.ProviderFacebook,
		ProviderUserID: "fb-9",
		Email:          "Ann@Example.com",
	})

	suite.Require().NoError(err)
	suite.Equal("u1", user.UserID)
	// Linking must not disturb the local credential.
	suite.Equal(passwordHash, user.PasswordHash)
	suite.True(user.LinkedTo(domain.ProviderFacebook))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestOAuthSignIn_CreatesNewUser() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByProvider", ctx, domain.ProviderGoogle, "g-777").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("CreateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "new@example.com" &&
			!user.HasPassword() &&
			user.LinkedTo(domain.ProviderGoogle) &&
			user.Profile.FirstName == "New" &&
			user.Profile.LastName == "Person"
	})).Return(nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, token, err := suite.service.OAuthSignIn(ctx, domain.OAuthProfile{
		Provider:       domain.ProviderGoogle,
		ProviderUserID: "g-777",
		Email:          "new@example.com",
		GivenName:      "New",
		FamilyName:     "Person",
	})

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.NotEmpty(token)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestOAuthSignIn_CreateRaceRefetchesWinner() {
	ctx := context.Background()
	winner := &domain.User{UserID: "winner", Email: "new@example.com"}

	// First provider lookup misses, the create collides, and the second
	// lookup returns the record the concurrent sign-in created.
	suite.mockUserRepo.On("FindUserByProvider", ctx, domain.ProviderGoogle, "g-777").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("CreateUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()
	suite.mockUserRepo.On("FindUserByProvider", ctx, domain.ProviderGoogle, "g-777").Return(winner, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, _, err := suite.service.OAuthSignIn(ctx, domain.OAuthProfile{
		Provider:       domain.ProviderGoogle,
		ProviderUserID: "g-777",
		Email:          "new@example.com",
	})

	suite.Require().NoError(err)
	suite.Equal("winner", user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestOAuthSignIn_CreateRaceAgainstLocalRegistration() {
	ctx := context.Background()
	local := &domain.User{UserID: "local", Email: "new@example.com", PasswordHash: "hash"}
	link := domain.ProviderLink{Provider: domain.ProviderGoogle, ProviderUserID: "g-777"}

	// The create collides on the email because a concurrent local
	// registration claimed it; the provider-pair refetch misses and the
	// local account gains the link instead.
	suite.mockUserRepo.On("FindUserByProvider", ctx, domain.ProviderGoogle, "g-777").Return(nil, apperrors.ErrNotFound).Twice()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("CreateUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(local, nil).Once()
	suite.mockUserRepo.On("AddProviderLink", ctx, "local", link).Return(nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, _, err := suite.service.OAuthSignIn(ctx, domain.OAuthProfile{
		Provider:       domain.ProviderGoogle,
		ProviderUserID: "g-777",
		Email:          "new@example.com",
	})

	suite.Require().NoError(err)
	suite.Equal("local", user.UserID)
	suite.True(user.LinkedTo(domain.ProviderGoogle))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestOAuthSignIn_UnsupportedProvider() {
	_, _, err := suite.service.OAuthSignIn(context.Background(), domain.OAuthProfile{
		Provider:       domain.AuthProvider("myspace"),
		ProviderUserID: "x",
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- UpdateProfile Tests ---

func (suite *UserServiceTestSuite) TestUpdateProfile_PartialUpdate() {
	ctx := context.Background()
	stored := &domain.User{
		UserID: "u1",
		Email:  "ann@example.com",
		Profile: domain.Profile{
			FirstName: "Ann",
			LastName:  "Smith",
			Phone:     "555-0100",
		},
	}
	newPhone := "555-0199"

	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(stored, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Profile.Phone == newPhone && user.Profile.FirstName == "Ann"
	})).Return(nil).Once()

	user, err := suite.service.UpdateProfile(ctx, "u1", dto.UpdateProfileRequest{Phone: &newPhone})

	suite.Require().NoError(err)
	suite.Equal(newPhone, user.Profile.Phone)
	suite.Equal("Smith", user.Profile.LastName)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateProfile_UserNotFound() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, "gone").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateProfile(ctx, "gone", dto.UpdateProfileRequest{})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
