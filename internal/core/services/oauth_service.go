package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
	portssvc "github.com/luxe-fragrances/storefront-backend/internal/core/ports/services"
	"github.com/luxe-fragrances/storefront-backend/internal/platform/config"
	"github.com/luxe-fragrances/storefront-backend/internal/utils"
)

const facebookUserInfoURL = "https://graph.facebook.com/me?fields=id,email,first_name,last_name"

// oauthService implements OAuthSvcFacade for the two supported providers.
// It owns the provider handshake end-to-end and hands callers a normalized
// profile; nothing downstream ever sees a raw provider payload.
type oauthService struct {
	googleClientID string
	configs        map[domain.AuthProvider]*oauth2.Config
}

// NewOAuthService creates a new oauthService from application configuration.
func NewOAuthService(cfg *config.Config) portssvc.OAuthSvcFacade {
	return &oauthService{
		googleClientID: cfg.GoogleClientID,
		configs: map[domain.AuthProvider]*oauth2.Config{
			domain.ProviderGoogle: {
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				RedirectURL:  cfg.GoogleRedirectURL,
				Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
				Endpoint:     google.Endpoint,
			},
			domain.ProviderFacebook: {
				ClientID:     cfg.FacebookClientID,
				ClientSecret: cfg.FacebookClientSecret,
				RedirectURL:  cfg.FacebookRedirectURL,
				Scopes:       []string{"email", "public_profile"},
				Endpoint:     facebook.Endpoint,
			},
		},
	}
}

// GenerateStateString creates a secure random string to be used as a CSRF
// token for the OAuth redirect flow.
func (s *oauthService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

// GetLoginURL returns the provider consent URL for the given state.
func (s *oauthService) GetLoginURL(ctx context.Context, provider domain.AuthProvider, state string) (string, error) {
	conf, ok := s.configs[provider]
	if !ok {
		return "", fmt.Errorf("unsupported oauth provider: %s", provider)
	}
	return conf.AuthCodeURL(state), nil
}

// ExchangeCode exchanges an authorization code for provider tokens and
// returns the normalized user profile.
func (s *oauthService) ExchangeCode(ctx context.Context, provider domain.AuthProvider, code string) (*domain.OAuthProfile, error) {
	conf, ok := s.configs[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported oauth provider: %s", provider)
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}

	switch provider {
	case domain.ProviderGoogle:
		return s.googleProfile(ctx, token)
	case domain.ProviderFacebook:
		return s.facebookProfile(ctx, conf, token)
	default:
		return nil, fmt.Errorf("unsupported oauth provider: %s", provider)
	}
}

// googleProfile validates the ID token Google returns alongside the access
// token and extracts the identity claims from its payload.
func (s *oauthService) googleProfile(ctx context.Context, token *oauth2.Token) (*domain.OAuthProfile, error) {
	idTokenString, ok := token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		return nil, errors.New("id token missing from google token response")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.googleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	givenName, _ := payload.Claims["given_name"].(string)
	familyName, _ := payload.Claims["family_name"].(string)

	if payload.Subject == "" || email == "" {
		return nil, errors.New("essential claims missing from google ID token")
	}

	return &domain.OAuthProfile{
		Provider:       domain.ProviderGoogle,
		ProviderUserID: payload.Subject,
		Email:          email,
		GivenName:      givenName,
		FamilyName:     familyName,
	}, nil
}

// facebookProfile fetches the user's identity from the Facebook Graph API
// with the freshly exchanged access token.
func (s *oauthService) facebookProfile(ctx context.Context, conf *oauth2.Config, token *oauth2.Token) (*domain.OAuthProfile, error) {
	client := conf.Client(ctx, token)
	resp, err := client.Get(facebookUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info from facebook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("facebook graph api returned non-200 status for userinfo: %s", resp.Status)
	}

	var userInfo domain.FacebookUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info from facebook: %w", err)
	}

	if userInfo.ID == "" || userInfo.Email == "" {
		return nil, errors.New("essential fields missing from facebook user info")
	}

	return &domain.OAuthProfile{
		Provider:       domain.ProviderFacebook,
		ProviderUserID: userInfo.ID,
		Email:          userInfo.Email,
		GivenName:      userInfo.FirstName,
		FamilyName:     userInfo.LastName,
	}, nil
}
