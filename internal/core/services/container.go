package services

import (
	portsrepo "github.com/luxe-fragrances/storefront-backend/internal/core/ports/repositories"
	portssvc "github.com/luxe-fragrances/storefront-backend/internal/core/ports/services"
	"github.com/luxe-fragrances/storefront-backend/internal/platform/config"
)

// NewServiceContainer wires every application service against the repository
// provider and configuration.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	hasher := NewBcryptHasher(cfg.BcryptCost)
	tokenSvc := NewTokenService(cfg)

	return &portssvc.ServiceContainer{
		User:    NewUserService(repos.UserRepo, hasher, tokenSvc),
		Token:   tokenSvc,
		OAuth:   NewOAuthService(cfg),
		Product: NewProductService(repos.ProductRepo),
		Order:   NewOrderService(repos.OrderRepo, repos.ProductRepo, cfg),
	}
}
