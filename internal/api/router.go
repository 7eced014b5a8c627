package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dukamarket/checkout-api/internal/api/handlers"
	"github.com/dukamarket/checkout-api/internal/api/middleware"
	"github.com/dukamarket/checkout-api/internal/checkout"
	"github.com/dukamarket/checkout-api/internal/config"
	"github.com/dukamarket/checkout-api/internal/confirmation"
)

// NewRouter creates and configures the Gin router
func NewRouter(
	cfg *config.Config,
	svc *checkout.Service,
	resolver *confirmation.Resolver,
	logger *zap.Logger,
) *gin.Engine {
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

	// API v1 routes
	v1 := router.Group("/v1")
	v1.Use(middleware.AuthMiddleware(cfg.API, logger))
	{
		v1.POST("/checkout", handlers.HandleBeginCheckout(svc, logger))
		v1.GET("/checkout/:sessionId", handlers.HandleGetCheckout(svc))
		v1.PUT("/checkout/:sessionId/shipping", handlers.HandleUpdateShipping(svc))
		v1.PUT("/checkout/:sessionId/payment", handlers.HandleUpdatePayment(svc))
		v1.POST("/checkout/:sessionId/advance", handlers.HandleAdvance(svc))
		v1.POST("/checkout/:sessionId/back", handlers.HandleBack(svc))
		v1.POST("/checkout/:sessionId/retry", handlers.HandleRetry(svc))
		v1.POST("/checkout/:sessionId/submit", handlers.HandleSubmit(svc, logger))

		v1.GET("/orders/confirmation", handlers.HandleConfirmation(resolver, logger))
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
