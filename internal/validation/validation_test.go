package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dukamarket/checkout-api/internal/domain"
)

func filledShipping() domain.ShippingAddress {
	return domain.ShippingAddress{
		FirstName: "Amina",
		LastName:  "Juma",
		Email:     "amina@example.com",
		Phone:     "0712345678",
		Street:    "12 Uhuru St",
		Country:   "Tanzania",
		City:      "Dar es Salaam",
	}
}

func TestShippingComplete_AllFieldsFilled(t *testing.T) {
	assert.True(t, ShippingComplete(filledShipping()))
}

// Blanking any single required field must fail the gate, for every field.
func TestShippingComplete_AnyBlankFieldFails(t *testing.T) {
	clearers := map[string]func(*domain.ShippingAddress){
		"first name": func(a *domain.ShippingAddress) { a.FirstName = "" },
		"last name":  func(a *domain.ShippingAddress) { a.LastName = " " },
		"email":      func(a *domain.ShippingAddress) { a.Email = "" },
		"phone":      func(a *domain.ShippingAddress) { a.Phone = "" },
		"street":     func(a *domain.ShippingAddress) { a.Street = "\t" },
		"country":    func(a *domain.ShippingAddress) { a.Country = "" },
		"city":       func(a *domain.ShippingAddress) { a.City = "" },
	}

	for name, clear := range clearers {
		addr := filledShipping()
		clear(&addr)
		assert.Falsef(t, ShippingComplete(addr), "blank %s should fail", name)
	}
}

func TestShippingComplete_InstructionsOptional(t *testing.T) {
	addr := filledShipping()
	addr.Instructions = ""
	assert.True(t, ShippingComplete(addr))
}

func TestShippingComplete_CityMustMatchCountry(t *testing.T) {
	addr := filledShipping()
	addr.Country = "Kenya"
	addr.City = "Dar es Salaam"
	assert.False(t, ShippingComplete(addr))

	addr.City = "Nairobi"
	assert.True(t, ShippingComplete(addr))
}

func TestCityInCountry(t *testing.T) {
	assert.True(t, CityInCountry("Uganda", "Kampala"))
	assert.False(t, CityInCountry("Uganda", "Nairobi"))
	assert.False(t, CityInCountry("Rwanda", "Kigali"))
}

func TestCitiesFor_UnsupportedCountry(t *testing.T) {
	assert.Nil(t, CitiesFor("Atlantis"))
	assert.Len(t, Countries(), 3)
}

func mobileData() domain.WizardData {
	return domain.WizardData{
		Shipping:      filledShipping(),
		Delivery:      domain.DeliveryArranged,
		Payment:       domain.PaymentMPesa,
		Details:       domain.PaymentDetails{MobileNumber: "0712345678"},
		TermsAccepted: true,
	}
}

func TestPaymentComplete_MobileBranch(t *testing.T) {
	data := mobileData()
	assert.True(t, PaymentComplete(data))

	data.Details.MobileNumber = ""
	assert.False(t, PaymentComplete(data))
}

func TestPaymentComplete_CardBranch(t *testing.T) {
	data := mobileData()
	data.Payment = domain.PaymentCard
	data.Details = domain.PaymentDetails{
		CardName:   "Amina Juma",
		CardNumber: "4111111111111111",
		CardExpiry: "12/27",
		CardCVV:    "123",
	}
	assert.True(t, PaymentComplete(data))

	// An empty CVV keeps the step gated.
	data.Details.CardCVV = ""
	assert.False(t, PaymentComplete(data))
}

func TestPaymentComplete_RequiresTermsAndSelection(t *testing.T) {
	data := mobileData()
	data.TermsAccepted = false
	assert.False(t, PaymentComplete(data))

	data = mobileData()
	data.Payment = domain.PaymentMethod("")
	assert.False(t, PaymentComplete(data))

	data.Payment = domain.PaymentMethod("bank-transfer")
	assert.False(t, PaymentComplete(data))
}

func TestCanAdvance(t *testing.T) {
	data := mobileData()

	assert.True(t, CanAdvance(domain.StepShipping, data))
	assert.True(t, CanAdvance(domain.StepPayment, data))
	assert.True(t, CanAdvance(domain.StepReview, data))

	data.Shipping.City = ""
	assert.False(t, CanAdvance(domain.StepShipping, data))

	// No forward gate exists past review.
	assert.False(t, CanAdvance(domain.StepSubmitting, data))
	assert.False(t, CanAdvance(domain.StepSucceeded, data))
}
