package handlers

import (
	goerrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dukamarket/checkout-api/internal/confirmation"
	"github.com/dukamarket/checkout-api/pkg/errors"
)

// HandleConfirmation handles GET /v1/orders/confirmation?orderId=...
func HandleConfirmation(resolver *confirmation.Resolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Query("orderId")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderId is required"})
			return
		}

		view, err := resolver.Resolve(c.Request.Context(), orderID)
		if err != nil {
			var notFound *errors.ErrNotFound
			if goerrors.As(err, &notFound) {
				// Terminal: a distinct error view with recovery actions,
				// never a partially populated confirmation.
				c.JSON(http.StatusNotFound, gin.H{
					"error": "order not found",
					"links": gin.H{
						"orders": "/orders",
						"home":   "/",
					},
				})
				return
			}
			logger.Error("Failed to resolve order confirmation",
				zap.String("order_id", orderID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, view)
	}
}
