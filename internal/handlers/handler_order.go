package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
	portssvc "github.com/luxe-fragrances/storefront-backend/internal/core/ports/services"
	"github.com/luxe-fragrances/storefront-backend/internal/dto"
	"github.com/luxe-fragrances/storefront-backend/internal/middleware"
)

// OrderHandler handles checkout and order requests.
type OrderHandler struct {
	orderService portssvc.OrderSvcFacade
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService portssvc.OrderSvcFacade) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder godoc
// @Summary Place an order
// @Description Creates an order from a checkout payload. Prices come from the catalog, never the client.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Checkout payload"
// @Success 201 {object} domain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), identity.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListMyOrders godoc
// @Summary List the current user's orders
// @Tags orders
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} domain.Order
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders [get]
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	orders, err := h.orderService.ListOrdersForUser(c.Request.Context(), identity.UserID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder godoc
// @Summary Get an order by ID
// @Description Returns the order if the caller owns it or is an admin.
// @Tags orders
// @Produce json
// @Param orderID path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	order, err := h.orderService.GetOrderByID(c.Request.Context(), c.Param("orderID"))
	if err != nil {
		respondError(c, err)
		return
	}

	// A 404 rather than a 403 keeps order IDs unguessable.
	if order.UserID != identity.UserID && !identity.IsAdmin() {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "resource not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus godoc
// @Summary Update an order's status
// @Tags orders
// @Accept json
// @Produce json
// @Param orderID path string true "Order ID"
// @Param status body dto.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID}/status [put]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), c.Param("orderID"), domain.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
