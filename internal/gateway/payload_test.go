package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukamarket/checkout-api/internal/currency"
	"github.com/dukamarket/checkout-api/internal/domain"
	apperrors "github.com/dukamarket/checkout-api/pkg/errors"
)

func wizardData() domain.WizardData {
	return domain.WizardData{
		Shipping: domain.ShippingAddress{
			FirstName: "Amina",
			LastName:  "Juma",
			Email:     "amina@example.com",
			Phone:     "0712 345 678",
			Street:    "12 Uhuru St",
			Country:   "Tanzania",
			City:      "Dar es Salaam",
		},
		Delivery:      domain.DeliveryArranged,
		Payment:       domain.PaymentMPesa,
		Details:       domain.PaymentDetails{MobileNumber: "0712345678"},
		TermsAccepted: true,
	}
}

func TestBuildPayload_MobileMoneyInTanzania(t *testing.T) {
	payload, err := BuildPayload(wizardData(), 45000, currency.TZS, "ref-1")
	require.NoError(t, err)

	assert.Equal(t, "TZS", payload.Currency)
	assert.Equal(t, int64(45000), payload.Amount)
	assert.Equal(t, "DOOR_DELIVERY", payload.DeliveryCode)
	assert.Equal(t, "MPESA_TZ", payload.PaymentCode)
	assert.Equal(t, "+255712345678", payload.Phone)
	assert.True(t, payload.AcceptedTerms)
	assert.Equal(t, "ref-1", payload.OrderReference)
}

func TestBuildPayload_ConvertsDisplayCurrencyToBase(t *testing.T) {
	payload, err := BuildPayload(wizardData(), 10, currency.USD, "ref-2")
	require.NoError(t, err)

	// Amounts always reach the processor in the base currency.
	assert.Equal(t, "TZS", payload.Currency)
	assert.Equal(t, int64(25641), payload.Amount)
}

func TestBuildPayload_UnmappedDeliveryMethod(t *testing.T) {
	data := wizardData()
	data.Delivery = domain.DeliveryMethod("drone")

	_, err := BuildPayload(data, 100, currency.TZS, "ref-3")

	var unmapped *apperrors.ErrUnmappedCode
	require.ErrorAs(t, err, &unmapped)
	assert.Equal(t, "delivery", unmapped.Kind)
}

func TestBuildPayload_UnmappedPaymentMethod(t *testing.T) {
	data := wizardData()
	data.Payment = domain.PaymentMethod("bank-transfer")

	_, err := BuildPayload(data, 100, currency.TZS, "ref-4")

	var unmapped *apperrors.ErrUnmappedCode
	require.ErrorAs(t, err, &unmapped)
	assert.Equal(t, "payment", unmapped.Kind)
}

func TestBuildPayload_UnsupportedCurrency(t *testing.T) {
	_, err := BuildPayload(wizardData(), 100, currency.Code("EUR"), "ref-5")

	var unsupported *apperrors.ErrUnsupportedCurrency
	require.ErrorAs(t, err, &unsupported)
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		country string
		want    string
	}{
		{"leading zero replaced", "0712345678", "Tanzania", "+255712345678"},
		{"spaces and dashes stripped", "0712-345 678", "Tanzania", "+255712345678"},
		{"kenyan dial code", "0722111222", "Kenya", "+254722111222"},
		{"already international", "+256700111222", "Uganda", "+256700111222"},
		{"no leading zero", "712345678", "Tanzania", "+255712345678"},
		{"unknown country left alone", "0712345678", "Atlantis", "0712345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.raw, tt.country))
		})
	}
}
