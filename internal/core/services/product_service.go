package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/luxe-fragrances/storefront-backend/internal/apperrors"
	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
	portsrepo "github.com/luxe-fragrances/storefront-backend/internal/core/ports/repositories"
	portssvc "github.com/luxe-fragrances/storefront-backend/internal/core/ports/services"
	"github.com/luxe-fragrances/storefront-backend/internal/dto"
)

// productService implements ProductSvcFacade.
type productService struct {
	productRepo portsrepo.ProductRepository
}

// NewProductService creates a new productService.
func NewProductService(productRepo portsrepo.ProductRepository) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo}
}

// GetProductByID retrieves a single product.
func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}
	return product, nil
}

// ListProducts retrieves products matching the query parameters.
func (s *productService) ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error) {
	filter := domain.ProductFilter{
		Category: params.Category,
		Brand:    params.Brand,
		Search:   params.Search,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}

	if params.MinPrice != "" {
		min, err := decimal.NewFromString(params.MinPrice)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid minPrice %q", apperrors.ErrValidation, params.MinPrice)
		}
		filter.MinPrice = &min
	}
	if params.MaxPrice != "" {
		max, err := decimal.NewFromString(params.MaxPrice)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid maxPrice %q", apperrors.ErrValidation, params.MaxPrice)
		}
		filter.MaxPrice = &max
	}

	products, err := s.productRepo.FindProducts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListFeaturedProducts retrieves the featured selection.
func (s *productService) ListFeaturedProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	featured := true
	products, err := s.productRepo.FindProducts(ctx, domain.ProductFilter{
		Featured: &featured,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list featured products: %w", err)
	}
	return products, nil
}

// CreateProduct adds a catalog item.
func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	product := domain.Product{
		ProductID:   uuid.NewString(),
		Name:        req.Name,
		Brand:       req.Brand,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		Featured:    req.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// UpdateProduct applies a partial update to a product.
func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product for update: %w", err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must not be negative", apperrors.ErrValidation)
		}
		product.Price = *req.Price
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("%w: stock must not be negative", apperrors.ErrValidation)
		}
		product.Stock = *req.Stock
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.productRepo.DeleteProduct(ctx, productID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
