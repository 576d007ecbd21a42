package services

import (
	"context"

	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
	"github.com/luxe-fragrances/storefront-backend/internal/dto"
)

// ProductSvcFacade defines catalog operations.
type ProductSvcFacade interface {
	// GetProductByID retrieves a single product.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves products matching the query parameters.
	ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error)

	// ListFeaturedProducts retrieves the featured selection.
	ListFeaturedProducts(ctx context.Context, limit int) ([]domain.Product, error)

	// CreateProduct adds a catalog item (admin only, enforced upstream).
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error)

	// UpdateProduct applies a partial update to a product.
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (*domain.Product, error)

	// DeleteProduct removes a product from the catalog.
	DeleteProduct(ctx context.Context, productID string) error
}
