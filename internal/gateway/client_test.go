package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dukamarket/checkout-api/internal/config"
	"github.com/dukamarket/checkout-api/internal/domain"
	apperrors "github.com/dukamarket/checkout-api/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.GatewayConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
	}, zap.NewNop())
}

func testPayload() *domain.CheckoutPayload {
	return &domain.CheckoutPayload{
		FirstName:     "Amina",
		LastName:      "Juma",
		Phone:         "+255712345678",
		DeliveryCode:  "DOOR_DELIVERY",
		PaymentCode:   "MPESA_TZ",
		Amount:        45000,
		Currency:      "TZS",
		AcceptedTerms: true,
	}
}

func TestSubmit_DirectConfirmation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payments/orders", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var got domain.CheckoutPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "TZS", got.Currency)

		json.NewEncoder(w).Encode(domain.CheckoutResponse{
			Success:       true,
			OrderID:       "ord-77",
			TransactionID: "txn-1",
			Message:       "Order received",
		})
	})

	resp, err := client.Submit(context.Background(), testPayload())
	require.NoError(t, err)
	assert.Equal(t, "ord-77", resp.OrderID)
	assert.Empty(t, resp.PaymentURL)
}

func TestSubmit_HostedRedirect(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.CheckoutResponse{
			Success:    true,
			OrderID:    "ord-88",
			PaymentURL: "https://pay.example.com/session/abc",
		})
	})

	resp, err := client.Submit(context.Background(), testPayload())
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/session/abc", resp.PaymentURL)
}

func TestSubmit_ProcessorDecline(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.CheckoutResponse{
			Success: false,
			Error:   "Insufficient funds",
		})
	})

	_, err := client.Submit(context.Background(), testPayload())

	var procErr *apperrors.ErrProcessor
	require.ErrorAs(t, err, &procErr)
	// The processor's exact message is preserved for the user.
	assert.Equal(t, "Insufficient funds", procErr.Message)
}

func TestSubmit_DeclineWithoutMessageUsesFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.CheckoutResponse{Success: false})
	})

	_, err := client.Submit(context.Background(), testPayload())

	var procErr *apperrors.ErrProcessor
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, FallbackMessage, procErr.Message)
}

func TestSubmit_NonOKStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Submit(context.Background(), testPayload())

	var procErr *apperrors.ErrProcessor
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, FallbackMessage, procErr.Message)
}

func TestSubmit_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.CheckoutResponse{Success: true})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Submit(ctx, testPayload())
	require.Error(t, err)
}
