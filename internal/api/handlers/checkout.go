package handlers

import (
	goerrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dukamarket/checkout-api/internal/api/middleware"
	"github.com/dukamarket/checkout-api/internal/checkout"
	"github.com/dukamarket/checkout-api/internal/currency"
	"github.com/dukamarket/checkout-api/internal/domain"
	"github.com/dukamarket/checkout-api/pkg/errors"
)

// BeginCheckoutRequest starts a wizard session in the user's display
// currency.
type BeginCheckoutRequest struct {
	Currency string `json:"currency" binding:"required"`
}

// UpdatePaymentRequest carries the step-two fields.
type UpdatePaymentRequest struct {
	Delivery      domain.DeliveryMethod `json:"delivery" binding:"required"`
	Payment       domain.PaymentMethod  `json:"payment" binding:"required"`
	Details       domain.PaymentDetails `json:"details"`
	TermsAccepted bool                  `json:"terms_accepted"`
}

// HandleBeginCheckout handles POST /v1/checkout
func HandleBeginCheckout(svc *checkout.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req BeginCheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		session, err := svc.Begin(c.Request.Context(), userID, currency.Code(req.Currency))
		if err != nil {
			var unauthorized *errors.ErrUnauthorized
			var verification *errors.ErrVerificationRequired
			var selection *errors.ErrSelectionRequired
			var unsupported *errors.ErrUnsupportedCurrency
			switch {
			case goerrors.As(err, &unauthorized):
				// Hard precondition: send the caller to login with a
				// return target.
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":    "sign in to check out",
					"redirect": "/login?return_to=/checkout",
				})
			case goerrors.As(err, &verification):
				c.JSON(http.StatusForbidden, gin.H{
					"error":  "account verification required",
					"action": verification.Action,
				})
			case goerrors.As(err, &selection):
				c.JSON(http.StatusConflict, gin.H{
					"error":    "select items to check out",
					"redirect": "/cart",
				})
			case goerrors.As(err, &unsupported):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				logger.Error("Failed to begin checkout", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.JSON(http.StatusCreated, session.State())
	}
}

// sessionForUser loads the session and enforces that it belongs to the
// acting user.
func sessionForUser(c *gin.Context, svc *checkout.Service) (*checkout.Session, bool) {
	userID, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}

	session, err := svc.Get(c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "checkout session not found"})
		return nil, false
	}
	if session.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return nil, false
	}
	return session, true
}

// HandleGetCheckout handles GET /v1/checkout/:sessionId
func HandleGetCheckout(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionForUser(c, svc)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, session.State())
	}
}

// HandleUpdateShipping handles PUT /v1/checkout/:sessionId/shipping
func HandleUpdateShipping(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionForUser(c, svc)
		if !ok {
			return
		}

		var addr domain.ShippingAddress
		if err := c.ShouldBindJSON(&addr); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		session.SetShipping(addr)
		c.JSON(http.StatusOK, session.State())
	}
}

// HandleUpdatePayment handles PUT /v1/checkout/:sessionId/payment
func HandleUpdatePayment(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionForUser(c, svc)
		if !ok {
			return
		}

		var req UpdatePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		session.SetPayment(req.Delivery, req.Payment, req.Details, req.TermsAccepted)
		c.JSON(http.StatusOK, session.State())
	}
}

func stepChange(c *gin.Context, session *checkout.Session, move func() error) {
	if err := move(); err != nil {
		var incomplete *errors.ErrStepIncomplete
		var invalid *errors.ErrInvalidStateTransition
		switch {
		case goerrors.As(err, &incomplete):
			// Validation errors stay inline; the advance control is
			// disabled, not merely ignored.
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case goerrors.As(err, &invalid):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, session.State())
}

// HandleAdvance handles POST /v1/checkout/:sessionId/advance
func HandleAdvance(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionForUser(c, svc)
		if !ok {
			return
		}
		stepChange(c, session, session.Advance)
	}
}

// HandleBack handles POST /v1/checkout/:sessionId/back
func HandleBack(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionForUser(c, svc)
		if !ok {
			return
		}
		stepChange(c, session, session.Back)
	}
}

// HandleRetry handles POST /v1/checkout/:sessionId/retry
func HandleRetry(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionForUser(c, svc)
		if !ok {
			return
		}
		stepChange(c, session, session.Retry)
	}
}

// HandleSubmit handles POST /v1/checkout/:sessionId/submit
func HandleSubmit(svc *checkout.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionForUser(c, svc)
		if !ok {
			return
		}

		result, err := svc.Submit(c.Request.Context(), session.ID)
		if err != nil {
			var inFlight *errors.ErrSubmitInFlight
			var incomplete *errors.ErrStepIncomplete
			var invalid *errors.ErrInvalidStateTransition
			var procErr *errors.ErrProcessor
			var unmapped *errors.ErrUnmappedCode
			switch {
			case goerrors.As(err, &inFlight):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			case goerrors.As(err, &incomplete):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			case goerrors.As(err, &invalid):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			case goerrors.As(err, &procErr):
				// Recoverable: the session is back at a retryable state
				// with the processor's message.
				c.JSON(http.StatusPaymentRequired, gin.H{"error": procErr.Message})
			case goerrors.As(err, &unmapped):
				// Programmer-facing mapping error: specific cause is
				// logged inside the service, the user sees the generic
				// message.
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Payment processing failed. Please try again or contact support.",
				})
			default:
				logger.Error("Checkout submission failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
