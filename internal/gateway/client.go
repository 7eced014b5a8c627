package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dukamarket/checkout-api/internal/config"
	"github.com/dukamarket/checkout-api/internal/domain"
	"github.com/dukamarket/checkout-api/pkg/errors"
)

// FallbackMessage is shown when the processor fails without a message of
// its own.
const FallbackMessage = "Payment processing failed. Please try again or contact support."

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new payment processor client
func NewClient(cfg config.GatewayConfig, logger *zap.Logger) *Client {
	// Normalize base URL - remove trailing slashes
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Submit sends one assembled checkout payload to the processor. Both
// success shapes are terminal: a hosted redirect carries PaymentURL, a
// direct confirmation does not. A success=false reply or any transport
// error is normalized into *errors.ErrProcessor carrying the processor's
// message, or the generic fallback when it gave none.
func (c *Client) Submit(ctx context.Context, payload *domain.CheckoutPayload) (*domain.CheckoutResponse, error) {
	url := fmt.Sprintf("%s/v1/payments/orders", c.baseURL)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Payment processor request failed", zap.Error(err))
		return nil, &errors.ErrProcessor{Message: FallbackMessage}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Failed to read processor response", zap.Error(err))
		return nil, &errors.ErrProcessor{Message: FallbackMessage}
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Payment processor returned non-OK status",
			zap.Int("status", resp.StatusCode), zap.String("body", string(body)))
		return nil, &errors.ErrProcessor{Message: FallbackMessage}
	}

	var checkoutResp domain.CheckoutResponse
	if err := json.Unmarshal(body, &checkoutResp); err != nil {
		c.logger.Error("Failed to unmarshal processor response", zap.Error(err))
		return nil, &errors.ErrProcessor{Message: FallbackMessage}
	}

	if !checkoutResp.Success {
		message := checkoutResp.Error
		if message == "" {
			message = checkoutResp.Message
		}
		if message == "" {
			message = FallbackMessage
		}
		return nil, &errors.ErrProcessor{Message: message}
	}

	return &checkoutResp, nil
}
