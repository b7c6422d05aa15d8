// internal/router/router.go
package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"

	"github.com/shopfront/storefront-api/internal/config"
	"github.com/shopfront/storefront-api/internal/handlers"
	"github.com/shopfront/storefront-api/internal/middleware"
	"github.com/shopfront/storefront-api/internal/repository"
	"github.com/shopfront/storefront-api/internal/services"
	"github.com/shopfront/storefront-api/internal/telemetry"
)

// Initialize builds the HTTP engine. ctx bounds background work started by
// middleware such as the rate limiter's cleanup loop.
func Initialize(ctx context.Context, store repository.Store, cfg *config.Config) *gin.Engine {
	// Initialize services
	orderMetrics, err := telemetry.NewOrderMetrics(otel.GetMeterProvider())
	if err != nil {
		logrus.WithError(err).Warn("Order metrics disabled")
	}

	catalogService := services.NewCatalogService(store)
	orderService := services.NewOrderService(store, orderMetrics)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)

	// Initialize Gin router
	r := gin.New()
	r.RedirectTrailingSlash = false

	// Global middleware
	r.Use(gin.Recovery())
	if cfg.Telemetry.Enabled {
		r.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.RateLimit(ctx, cfg.RateLimit))

	// Health check
	r.GET("/health", handlers.Health)

	// Product routes
	products := r.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/", productHandler.GetProducts)
		products.GET("/:slug", productHandler.GetProduct)
	}

	// Order routes
	orders := r.Group("/orders")
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.POST("/", orderHandler.CreateOrder)
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/", orderHandler.GetOrders)
		orders.GET("/:id", orderHandler.GetOrder)
	}

	return r
}
