package currency

import (
	"math"

	"github.com/dukamarket/checkout-api/pkg/errors"
)

// Code identifies a supported display currency
type Code string

const (
	TZS Code = "TZS" // base currency, no minor units
	USD Code = "USD"
	KES Code = "KES"
	UGX Code = "UGX"
)

// Base is the currency in which every amount reaches the payment processor.
const Base = TZS

// rates maps a currency code to its value per one unit of the base
// currency. ToBase divides by the rate, FromBase multiplies.
var rates = map[Code]float64{
	TZS: 1,
	USD: 0.00039,
	KES: 0.052,
	UGX: 1.44,
}

// Supported reports whether the code has an exchange rate.
func Supported(code Code) bool {
	_, ok := rates[code]
	return ok
}

// ToBase converts a display-currency amount to the base currency, rounded
// to the nearest whole unit. The base currency carries no minor units, so
// integer rounding at this boundary is deliberate. Unknown codes fail;
// callers must never default to a rate, that would misprice the order.
func ToBase(amount float64, code Code) (int64, error) {
	rate, ok := rates[code]
	if !ok {
		return 0, &errors.ErrUnsupportedCurrency{Code: string(code)}
	}
	return int64(math.Round(amount / rate)), nil
}

// FromBase converts a base-currency amount to the display currency.
func FromBase(amount int64, code Code) (float64, error) {
	rate, ok := rates[code]
	if !ok {
		return 0, &errors.ErrUnsupportedCurrency{Code: string(code)}
	}
	return float64(amount) * rate, nil
}
