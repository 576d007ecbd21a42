package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/luxe-fragrances/storefront-backend/internal/apperrors"
	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
	portssvc "github.com/luxe-fragrances/storefront-backend/internal/core/ports/services"
	"github.com/luxe-fragrances/storefront-backend/internal/core/services"
	"github.com/luxe-fragrances/storefront-backend/internal/dto"
	"github.com/luxe-fragrances/storefront-backend/internal/platform/config"
)

// --- Mock OrderRepository ---
type MockOrderRepository struct {
	mock.Mock
	CreateOrderFn       func(ctx context.Context, order domain.Order) error
	FindOrderByIDFn     func(ctx context.Context, orderID string) (*domain.Order, error)
	FindOrdersByUserFn  func(ctx context.Context, userID string, limit, offset int) ([]domain.Order, error)
	UpdateOrderStatusFn func(ctx context.Context, orderID string, status domain.OrderStatus) error
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order domain.Order) error {
	if m.CreateOrderFn != nil {
		return m.CreateOrderFn(ctx, order)
	}
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	if m.FindOrderByIDFn != nil {
		return m.FindOrderByIDFn(ctx, orderID)
	}
	args := m.Called(ctx, orderID)
	var order *domain.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *MockOrderRepository) FindOrdersByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, error) {
	if m.FindOrdersByUserFn != nil {
		return m.FindOrdersByUserFn(ctx, userID, limit, offset)
	}
	args := m.Called(ctx, userID, limit, offset)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *MockOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	if m.UpdateOrderStatusFn != nil {
		return m.UpdateOrderStatusFn(ctx, orderID, status)
	}
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
	FindProductByIDFn func(ctx context.Context, productID string) (*domain.Product, error)
	FindProductsFn    func(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	CreateProductFn   func(ctx context.Context, product domain.Product) error
	UpdateProductFn   func(ctx context.Context, product domain.Product) error
	DeleteProductFn   func(ctx context.Context, productID string) error
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	if m.FindProductByIDFn != nil {
		return m.FindProductByIDFn(ctx, productID)
	}
	args := m.Called(ctx, productID)
	var product *domain.Product
	if args.Get(0) != nil {
		product = args.Get(0).(*domain.Product)
	}
	return product, args.Error(1)
}

func (m *MockProductRepository) FindProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if m.FindProductsFn != nil {
		return m.FindProductsFn(ctx, filter)
	}
	args := m.Called(ctx, filter)
	var products []domain.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]domain.Product)
	}
	return products, args.Error(1)
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, product domain.Product) error {
	if m.CreateProductFn != nil {
		return m.CreateProductFn(ctx, product)
	}
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	if m.UpdateProductFn != nil {
		return m.UpdateProductFn(ctx, product)
	}
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	if m.DeleteProductFn != nil {
		return m.DeleteProductFn(ctx, productID)
	}
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// --- Test Suite ---
type OrderServiceTestSuite struct {
	suite.Suite
	mockOrderRepo   *MockOrderRepository
	mockProductRepo *MockProductRepository
	service         portssvc.OrderSvcFacade
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.service = services.NewOrderService(suite.mockOrderRepo, suite.mockProductRepo, &config.Config{
		ShippingFlatFee:       decimal.RequireFromString("9.99"),
		FreeShippingThreshold: decimal.RequireFromString("100"),
		TaxRate:               decimal.RequireFromString("0.08"),
	})
}

func (suite *OrderServiceTestSuite) stockProduct(id, name, price string, stock int) *domain.Product {
	return &domain.Product{
		ProductID: id,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
	}
}

func checkoutRequest(items ...dto.OrderItemRequest) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		Items: items,
		ShippingAddress: dto.ShippingAddressRequest{
			Line1:      "1 Rue de la Paix",
			City:       "Paris",
			PostalCode: "75002",
			Country:    "FR",
		},
	}
}

// --- CreateOrder Tests ---

func (suite *OrderServiceTestSuite) TestCreateOrder_PricesFromCatalog() {
	ctx := context.Background()

	suite.mockProductRepo.On("FindProductByID", ctx, "p1").
		Return(suite.stockProduct("p1", "Noir Intense", "45.50", 10), nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, "p2").
		Return(suite.stockProduct("p2", "Amber Oud", "12.00", 10), nil).Once()
	suite.mockOrderRepo.On("CreateOrder", ctx, mock.AnythingOfType("domain.Order")).Return(nil).Once()

	order, err := suite.service.CreateOrder(ctx, "u1", checkoutRequest(
		dto.OrderItemRequest{ProductID: "p1", Quantity: 1},
		dto.OrderItemRequest{ProductID: "p2", Quantity: 2},
	))

	suite.Require().NoError(err)
	// 45.50 + 2 * 12.00 = 69.50, below the free shipping threshold.
	suite.True(order.Subtotal.Equal(decimal.RequireFromString("69.50")), "subtotal %s", order.Subtotal)
	suite.True(order.ShippingFee.Equal(decimal.RequireFromString("9.99")), "shipping %s", order.ShippingFee)
	suite.True(order.Tax.Equal(decimal.RequireFromString("5.56")), "tax %s", order.Tax)
	suite.True(order.Total.Equal(decimal.RequireFromString("85.05")), "total %s", order.Total)
	suite.Equal(domain.OrderStatusPending, order.Status)
	suite.Equal("u1", order.UserID)
	suite.mockOrderRepo.AssertExpectations(suite.T())
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_FreeShippingAboveThreshold() {
	ctx := context.Background()

	suite.mockProductRepo.On("FindProductByID", ctx, "p1").
		Return(suite.stockProduct("p1", "Noir Intense", "55.00", 10), nil).Once()
	suite.mockOrderRepo.On("CreateOrder", ctx, mock.AnythingOfType("domain.Order")).Return(nil).Once()

	order, err := suite.service.CreateOrder(ctx, "u1", checkoutRequest(
		dto.OrderItemRequest{ProductID: "p1", Quantity: 2},
	))

	suite.Require().NoError(err)
	suite.True(order.Subtotal.Equal(decimal.RequireFromString("110.00")))
	suite.True(order.ShippingFee.IsZero(), "shipping %s", order.ShippingFee)
	suite.True(order.Tax.Equal(decimal.RequireFromString("8.80")), "tax %s", order.Tax)
	suite.True(order.Total.Equal(decimal.RequireFromString("118.80")), "total %s", order.Total)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_ExactThresholdStillPaysShipping() {
	ctx := context.Background()

	suite.mockProductRepo.On("FindProductByID", ctx, "p1").
		Return(suite.stockProduct("p1", "Noir Intense", "100.00", 10), nil).Once()
	suite.mockOrderRepo.On("CreateOrder", ctx, mock.AnythingOfType("domain.Order")).Return(nil).Once()

	order, err := suite.service.CreateOrder(ctx, "u1", checkoutRequest(
		dto.OrderItemRequest{ProductID: "p1", Quantity: 1},
	))

	suite.Require().NoError(err)
	suite.True(order.ShippingFee.Equal(decimal.RequireFromString("9.99")))
}

func (suite *OrderServiceTestSuite) TestCreateOrder_UnknownProduct() {
	ctx := context.Background()
	suite.mockProductRepo.On("FindProductByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateOrder(ctx, "u1", checkoutRequest(
		dto.OrderItemRequest{ProductID: "ghost", Quantity: 1},
	))

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_InsufficientStock() {
	ctx := context.Background()
	suite.mockProductRepo.On("FindProductByID", ctx, "p1").
		Return(suite.stockProduct("p1", "Noir Intense", "45.50", 1), nil).Once()

	_, err := suite.service.CreateOrder(ctx, "u1", checkoutRequest(
		dto.OrderItemRequest{ProductID: "p1", Quantity: 3},
	))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "CreateOrder", mock.Anything, mock.Anything)
}

// --- UpdateOrderStatus Tests ---

func (suite *OrderServiceTestSuite) TestUpdateOrderStatus_ValidTransition() {
	ctx := context.Background()
	stored := &domain.Order{OrderID: "o1", Status: domain.OrderStatusPending}

	suite.mockOrderRepo.On("FindOrderByID", ctx, "o1").Return(stored, nil).Once()
	suite.mockOrderRepo.On("UpdateOrderStatus", ctx, "o1", domain.OrderStatusPaid).Return(nil).Once()

	order, err := suite.service.UpdateOrderStatus(ctx, "o1", domain.OrderStatusPaid)

	suite.Require().NoError(err)
	suite.Equal(domain.OrderStatusPaid, order.Status)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestUpdateOrderStatus_InvalidTransition() {
	ctx := context.Background()
	stored := &domain.Order{OrderID: "o1", Status: domain.OrderStatusDelivered}

	suite.mockOrderRepo.On("FindOrderByID", ctx, "o1").Return(stored, nil).Once()

	_, err := suite.service.UpdateOrderStatus(ctx, "o1", domain.OrderStatusCancelled)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateOrderStatus_OrderNotFound() {
	ctx := context.Background()
	suite.mockOrderRepo.On("FindOrderByID", ctx, "gone").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateOrderStatus(ctx, "gone", domain.OrderStatusPaid)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
