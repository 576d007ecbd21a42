package repositories

import (
	"context"

	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
)

// OrderReader defines read operations for orders.
type OrderReader interface {
	// FindOrderByID retrieves an order and its items.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// FindOrdersByUser retrieves a user's orders, newest first.
	FindOrdersByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, error)
}

// OrderWriter defines write operations for orders.
type OrderWriter interface {
	// CreateOrder persists the order and its items and decrements stock
	// for every line, all within a single transaction. Returns
	// apperrors.ErrValidation if any product has insufficient stock.
	CreateOrder(ctx context.Context, order domain.Order) error

	// UpdateOrderStatus moves an order to a new status. Returns
	// apperrors.ErrNotFound if the order does not exist.
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
}

// OrderRepository combines all order-related repository interfaces.
type OrderRepository interface {
	OrderReader
	OrderWriter
}
