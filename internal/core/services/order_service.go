package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/luxe-fragrances/storefront-backend/internal/apperrors"
	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
	portsrepo "github.com/luxe-fragrances/storefront-backend/internal/core/ports/repositories"
	portssvc "github.com/luxe-fragrances/storefront-backend/internal/core/ports/services"
	"github.com/luxe-fragrances/storefront-backend/internal/dto"
	"github.com/luxe-fragrances/storefront-backend/internal/platform/config"
)

// orderService implements OrderSvcFacade. Items are priced from the catalog
// at order time; client-supplied prices are never trusted.
type orderService struct {
	orderRepo   portsrepo.OrderRepository
	productRepo portsrepo.ProductRepository

	shippingFlatFee       decimal.Decimal
	freeShippingThreshold decimal.Decimal
	taxRate               decimal.Decimal
}

// NewOrderService creates a new orderService with pricing rules from
// configuration.
func NewOrderService(orderRepo portsrepo.OrderRepository, productRepo portsrepo.ProductRepository, cfg *config.Config) portssvc.OrderSvcFacade {
	return &orderService{
		orderRepo:             orderRepo,
		productRepo:           productRepo,
		shippingFlatFee:       cfg.ShippingFlatFee,
		freeShippingThreshold: cfg.FreeShippingThreshold,
		taxRate:               cfg.TaxRate,
	}
}

// CreateOrder places an order from a checkout payload. Shipping is a flat
// fee waived above the free-shipping threshold; tax applies to the subtotal.
func (s *orderService) CreateOrder(ctx context.Context, userID string, req dto.CreateOrderRequest) (*domain.Order, error) {
	items := make([]domain.OrderItem, 0, len(req.Items))
	subtotal := decimal.Zero

	for _, line := range req.Items {
		product, err := s.productRepo.FindProductByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown product %s", apperrors.ErrValidation, line.ProductID)
			}
			return nil, fmt.Errorf("failed to price order item: %w", err)
		}
		if product.Stock < line.Quantity {
			return nil, fmt.Errorf("%w: insufficient stock for %s", apperrors.ErrValidation, product.Name)
		}

		item := domain.OrderItem{
			ProductID:   product.ProductID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    line.Quantity,
		}
		items = append(items, item)
		subtotal = subtotal.Add(item.LineTotal())
	}

	shipping := s.shippingFlatFee
	if subtotal.GreaterThan(s.freeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(s.taxRate).Round(2)

	now := time.Now()
	order := domain.Order{
		OrderID:     uuid.NewString(),
		UserID:      userID,
		Items:       items,
		Subtotal:    subtotal,
		ShippingFee: shipping,
		Tax:         tax,
		Total:       subtotal.Add(shipping).Add(tax),
		Status:      domain.OrderStatusPending,
		ShippingAddress: domain.ShippingAddress{
			Line1:      req.ShippingAddress.Line1,
			Line2:      req.ShippingAddress.Line2,
			City:       req.ShippingAddress.City,
			State:      req.ShippingAddress.State,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	return &order, nil
}

// GetOrderByID retrieves an order and its items.
func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order by ID: %w", err)
	}
	return order, nil
}

// ListOrdersForUser retrieves a user's orders, newest first.
func (s *orderService) ListOrdersForUser(ctx context.Context, userID string, params dto.ListOrdersParams) ([]domain.Order, error) {
	orders, err := s.orderRepo.FindOrdersByUser(ctx, userID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus transitions an order to a new status.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order for status update: %w", err)
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", apperrors.ErrValidation, order.Status, status)
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	return order, nil
}
