package services

import (
	"context"

	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
	"github.com/luxe-fragrances/storefront-backend/internal/dto"
)

// OrderSvcFacade defines order operations.
type OrderSvcFacade interface {
	// CreateOrder places an order for the given user from a checkout
	// payload, pricing the items from the catalog server-side.
	CreateOrder(ctx context.Context, userID string, req dto.CreateOrderRequest) (*domain.Order, error)

	// GetOrderByID retrieves an order. Callers enforce ownership.
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrdersForUser retrieves a user's orders, newest first.
	ListOrdersForUser(ctx context.Context, userID string, params dto.ListOrdersParams) ([]domain.Order, error)

	// UpdateOrderStatus transitions an order to a new status (admin
	// only, enforced upstream). Illegal transitions fail with
	// apperrors.ErrValidation.
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
}
