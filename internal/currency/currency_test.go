package currency

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dukamarket/checkout-api/pkg/errors"
)

func TestToBase_BaseCurrencyIsIdentity(t *testing.T) {
	got, err := ToBase(25000, TZS)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), got)
}

func TestToBase_RoundsToNearestWholeUnit(t *testing.T) {
	// 10 USD at 0.00039 USD per TZS = 25641.02..., rounds down.
	got, err := ToBase(10, USD)
	require.NoError(t, err)
	assert.Equal(t, int64(25641), got)
}

func TestToBase_UnknownCurrency(t *testing.T) {
	_, err := ToBase(100, Code("EUR"))
	require.Error(t, err)

	var unsupported *apperrors.ErrUnsupportedCurrency
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "EUR", unsupported.Code)
}

func TestFromBase_UnknownCurrency(t *testing.T) {
	_, err := FromBase(100, Code("GBP"))

	var unsupported *apperrors.ErrUnsupportedCurrency
	require.ErrorAs(t, err, &unsupported)
}

// Round-tripping through the base currency must reproduce the original
// amount within one unit of integer rounding error.
func TestRoundTrip_AllSupportedCurrencies(t *testing.T) {
	codes := []Code{TZS, USD, KES, UGX}
	amounts := []float64{1, 7, 49.5, 120, 999, 45000}

	for _, code := range codes {
		rate := rates[code]
		for _, amount := range amounts {
			base, err := ToBase(amount, code)
			require.NoError(t, err)

			back, err := FromBase(base, code)
			require.NoError(t, err)

			// One whole base unit of rounding slack, expressed in the
			// display currency.
			assert.InDeltaf(t, amount, back, rate+1e-9,
				"round trip for %v %s", amount, code)
		}
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported(TZS))
	assert.True(t, Supported(UGX))
	assert.False(t, Supported(Code("BTC")))
}

func TestToBase_FractionalDisplayAmounts(t *testing.T) {
	// 3.33 KES at 0.052 KES per TZS = 64.038..., nearest whole unit.
	got, err := ToBase(3.33, KES)
	require.NoError(t, err)
	assert.Equal(t, int64(math.Round(3.33/0.052)), got)

	// Half units in the base currency round away from zero.
	got, err = ToBase(0.5, TZS)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}
