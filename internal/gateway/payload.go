package gateway

import (
	"strings"

	"github.com/dukamarket/checkout-api/internal/currency"
	"github.com/dukamarket/checkout-api/internal/domain"
	"github.com/dukamarket/checkout-api/pkg/errors"
)

// deliveryCodes maps the UI delivery choice to the processor's codes.
// An unmapped choice aborts the submission; nothing passes through silently.
var deliveryCodes = map[domain.DeliveryMethod]string{
	domain.DeliveryArranged:   "DOOR_DELIVERY",
	domain.DeliveryWithSeller: "SELLER_PICKUP",
}

// paymentCodes maps the catalog payment methods to the processor's codes.
var paymentCodes = map[domain.PaymentMethod]string{
	domain.PaymentMPesa:       "MPESA_TZ",
	domain.PaymentTigoPesa:    "TIGOPESA_TZ",
	domain.PaymentAirtelMoney: "AIRTEL_TZ",
	domain.PaymentCard:        "CARD",
}

// dialCodes maps supported shipping countries to international prefixes
// for phone normalization.
var dialCodes = map[string]string{
	"Tanzania": "+255",
	"Kenya":    "+254",
	"Uganda":   "+256",
}

// NormalizePhone rewrites a locally formatted number into international
// form for the given country: strip spaces and dashes, replace a leading
// zero with the country dial code. Already-international numbers pass
// through unchanged.
func NormalizePhone(raw, country string) string {
	phone := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(raw)
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	dial, ok := dialCodes[country]
	if !ok {
		return phone
	}
	if strings.HasPrefix(phone, "0") {
		return dial + phone[1:]
	}
	return dial + phone
}

// BuildPayload assembles the single-use processor request from the frozen
// wizard data: shipping fields copied, phone normalized, delivery and
// payment choices mapped through the code tables, and the subtotal
// converted from the display currency to the base currency.
func BuildPayload(data domain.WizardData, subtotal int64, code currency.Code, orderRef string) (*domain.CheckoutPayload, error) {
	deliveryCode, ok := deliveryCodes[data.Delivery]
	if !ok {
		return nil, &errors.ErrUnmappedCode{Kind: "delivery", Value: string(data.Delivery)}
	}

	paymentCode, ok := paymentCodes[data.Payment]
	if !ok {
		return nil, &errors.ErrUnmappedCode{Kind: "payment", Value: string(data.Payment)}
	}

	amount, err := currency.ToBase(float64(subtotal), code)
	if err != nil {
		return nil, err
	}

	return &domain.CheckoutPayload{
		FirstName:      data.Shipping.FirstName,
		LastName:       data.Shipping.LastName,
		Email:          data.Shipping.Email,
		Phone:          NormalizePhone(data.Shipping.Phone, data.Shipping.Country),
		Street:         data.Shipping.Street,
		City:           data.Shipping.City,
		Country:        data.Shipping.Country,
		DeliveryCode:   deliveryCode,
		PaymentCode:    paymentCode,
		Amount:         amount,
		Currency:       string(currency.Base),
		AcceptedTerms:  data.TermsAccepted,
		OrderReference: orderRef,
	}, nil
}
