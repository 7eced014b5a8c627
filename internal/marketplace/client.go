package marketplace

import (
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

// Client talks to the marketplace core, which owns the cart, user profiles
// and the verification gate. Checkout consumes these collaborators only
// through this narrow surface.
type Client struct {
	baseURL      string
	serviceToken string
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewClient creates a new marketplace core client
func NewClient(cfg config.MarketplaceConfig, logger *zap.Logger) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		baseURL:      baseURL,
		serviceToken: cfg.ServiceToken,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("marketplace request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return &errors.ErrUnauthorized{Message: "sign in to check out"}
	case http.StatusNotFound:
		return &errors.ErrNotFound{Resource: "marketplace resource", ID: path}
	default:
		return fmt.Errorf("marketplace API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

type cartResponse struct {
	Items    []domain.LineItem `json:"items"`
	Selected []domain.LineItem `json:"selected"`
}

// Items returns the user's full cart.
func (c *Client) Items(ctx context.Context, userID string) ([]domain.LineItem, error) {
	var cart cartResponse
	if err := c.get(ctx, "/v1/users/"+userID+"/cart", &cart); err != nil {
		return nil, err
	}
	return cart.Items, nil
}

// Selected returns the subset of the cart marked for checkout.
func (c *Client) Selected(ctx context.Context, userID string) ([]domain.LineItem, error) {
	var cart cartResponse
	if err := c.get(ctx, "/v1/users/"+userID+"/cart", &cart); err != nil {
		return nil, err
	}
	return cart.Selected, nil
}

// ClearSelected removes the selected items from the user's cart.
func (c *Client) ClearSelected(ctx context.Context, userID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+"/v1/users/"+userID+"/cart/selected", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("marketplace request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("marketplace API error: status %d", resp.StatusCode)
	}
	return nil
}

// Get returns the signed-in user's profile for address pre-fill.
func (c *Client) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := c.get(ctx, "/v1/users/"+userID+"/profile", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

type verificationResponse struct {
	Verified bool `json:"verified"`
}

// CheckVerification asks the gate whether the user may perform the action.
func (c *Client) CheckVerification(ctx context.Context, userID, action string) (bool, error) {
	var result verificationResponse
	path := fmt.Sprintf("/v1/users/%s/verification?action=%s", userID, action)
	if err := c.get(ctx, path, &result); err != nil {
		return false, err
	}
	return result.Verified, nil
}
