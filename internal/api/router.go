package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/umituz/turkticaret-case-sub003/internal/api/handlers"
	"github.com/umituz/turkticaret-case-sub003/internal/api/middleware"
	"github.com/umituz/turkticaret-case-sub003/internal/config"
	"github.com/umituz/turkticaret-case-sub003/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, orders service.OrderService, carts service.CartService, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.POST("/orders", handlers.HandleCreateOrder(orders, logger))
		v1.GET("/orders/:id", handlers.HandleGetOrder(orders, logger))
		v1.GET("/orders/:id/history", handlers.HandleGetHistory(orders, logger))

		v1.POST("/carts/:cartId/items", handlers.HandleAddCartItem(carts, logger))
		v1.GET("/carts/:cartId/items", handlers.HandleGetCart(carts, logger))
		v1.PUT("/carts/:cartId/items/:productId", handlers.HandleSetCartItemQuantity(carts, logger))
		v1.DELETE("/carts/:cartId/items/:productId", handlers.HandleRemoveCartItem(carts, logger))
		v1.DELETE("/carts/:cartId/items", handlers.HandleClearCart(carts, logger))

		// Admin routes (status changes are operator actions)
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AdminAuthMiddleware(cfg.API.AdminKeyHash, logger))
		{
			adminRoutes.POST("/orders/:id/status", handlers.HandleTransitionOrder(orders, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
