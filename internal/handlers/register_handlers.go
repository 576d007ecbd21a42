package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/luxe-fragrances/storefront-backend/cmd/docs"
	portssvc "github.com/luxe-fragrances/storefront-backend/internal/core/ports/services"
	"github.com/luxe-fragrances/storefront-backend/internal/middleware"
	"github.com/luxe-fragrances/storefront-backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) error {
	r.GET("/health", Health)

	v1 := r.Group("/api/v1")

	if err := registerAuthRoutes(v1, cfg, services); err != nil {
		return err
	}
	registerProductRoutes(v1, services)
	registerAuthenticatedRoutes(v1, services)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// registerAuthRoutes sets up the public authentication routes. Credential
// endpoints are rate limited per client IP.
func registerAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) error {
	authHandler := NewAuthHandler(services.User)
	oauthHandler := NewOAuthHandler(services.OAuth, services.User)

	ipLimiter, err := middleware.NewAuthRateLimiter(cfg.AuthRateLimit)
	if err != nil {
		return fmt.Errorf("invalid auth rate limit %q: %w", cfg.AuthRateLimit, err)
	}
	limit := middleware.RateLimit(ipLimiter)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", limit, authHandler.Register)
		auth.POST("/login", limit, authHandler.Login)
		auth.POST("/logout", authHandler.Logout)

		oauth := auth.Group("/oauth/:provider")
		oauth.GET("/login-url", oauthHandler.LoginURL)
		oauth.POST("/exchange-code", limit, oauthHandler.ExchangeCode)
	}
	return nil
}

// registerProductRoutes sets up the catalog. Reads are public; writes
// require an authenticated admin.
func registerProductRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewProductHandler(services.Product)

	products := rg.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/featured", h.ListFeatured)
		products.GET("/:productID", h.GetProduct)
	}

	admin := rg.Group("/products", middleware.AuthMiddleware(services.Token), middleware.RequireAdmin())
	{
		admin.POST("", h.CreateProduct)
		admin.PUT("/:productID", h.UpdateProduct)
		admin.DELETE("/:productID", h.DeleteProduct)
	}
}

// registerAuthenticatedRoutes sets up the routes that require a valid
// bearer token.
func registerAuthenticatedRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	authed := rg.Group("", middleware.AuthMiddleware(services.Token))

	userHandler := NewUserHandler(services.User)
	authed.GET("/me", userHandler.GetMe)
	authed.PUT("/me", userHandler.UpdateMe)

	orderHandler := NewOrderHandler(services.Order)
	orders := authed.Group("/orders")
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", orderHandler.ListMyOrders)
		orders.GET("/:orderID", orderHandler.GetOrder)
		orders.PUT("/:orderID/status", middleware.RequireAdmin(), orderHandler.UpdateOrderStatus)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
