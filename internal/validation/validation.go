package validation

import (
	"strings"

	"github.com/dukamarket/checkout-api/internal/domain"
)

// countryCities is the fixed catalog of supported shipping destinations.
// The city list is country-dependent; a city outside its country's list
// never passes the shipping gate.
var countryCities = map[string][]string{
	"Tanzania": {"Dar es Salaam", "Arusha", "Mwanza", "Dodoma", "Mbeya", "Zanzibar City"},
	"Kenya":    {"Nairobi", "Mombasa", "Kisumu", "Nakuru"},
	"Uganda":   {"Kampala", "Entebbe", "Jinja", "Gulu"},
}

// Countries returns the supported shipping countries.
func Countries() []string {
	out := make([]string, 0, len(countryCities))
	for country := range countryCities {
		out = append(out, country)
	}
	return out
}

// CitiesFor returns the fixed city list for a country, nil if the country
// is not supported.
func CitiesFor(country string) []string {
	return countryCities[country]
}

// CityInCountry reports whether city belongs to the country's city list.
func CityInCountry(country, city string) bool {
	for _, c := range countryCities[country] {
		if c == city {
			return true
		}
	}
	return false
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ShippingComplete reports whether all required shipping fields are filled.
// Delivery instructions are the only optional field. The city must also be
// a member of the selected country's city list.
func ShippingComplete(addr domain.ShippingAddress) bool {
	if blank(addr.FirstName) || blank(addr.LastName) || blank(addr.Email) ||
		blank(addr.Phone) || blank(addr.Street) || blank(addr.Country) || blank(addr.City) {
		return false
	}
	return CityInCountry(addr.Country, addr.City)
}

// PaymentComplete reports whether the payment step can advance: a catalog
// method is selected, terms are accepted, and the method-specific details
// branch is fully filled.
func PaymentComplete(data domain.WizardData) bool {
	if !data.Payment.IsValid() || !data.TermsAccepted {
		return false
	}
	switch data.Payment.Type() {
	case domain.PaymentTypeMobile:
		return !blank(data.Details.MobileNumber)
	case domain.PaymentTypeCard:
		return !blank(data.Details.CardName) && !blank(data.Details.CardNumber) &&
			!blank(data.Details.CardExpiry) && !blank(data.Details.CardCVV)
	default:
		return false
	}
}

// CanAdvance decides whether the wizard may move forward from the given
// step. Pure and side-effect free; the wizard re-runs it on every field
// change, so it must stay cheap.
func CanAdvance(step domain.CheckoutStep, data domain.WizardData) bool {
	switch step {
	case domain.StepShipping:
		return ShippingComplete(data.Shipping)
	case domain.StepPayment:
		return PaymentComplete(data)
	case domain.StepReview:
		// Review is display-only; submission re-runs the payment gate.
		return true
	default:
		return false
	}
}
