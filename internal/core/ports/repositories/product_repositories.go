package repositories

import (
	"context"

	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
)

// ProductReader defines read operations for the catalog.
type ProductReader interface {
	// FindProductByID retrieves a product by ID.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProducts retrieves products matching the filter.
	FindProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
}

// ProductWriter defines write operations for the catalog.
type ProductWriter interface {
	// CreateProduct persists a new product.
	CreateProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct persists changes to an existing product. Returns
	// apperrors.ErrNotFound if it does not exist.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// DeleteProduct removes a product from the catalog.
	DeleteProduct(ctx context.Context, productID string) error
}

// ProductRepository combines all product-related repository interfaces.
type ProductRepository interface {
	ProductReader
	ProductWriter
}
