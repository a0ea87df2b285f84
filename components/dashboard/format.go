package dashboard

import (
	"math"
	"strconv"
)

const (
	// CurrencyPrefix is prepended to every monetary value.
	CurrencyPrefix = "R"
	// ShoppingListNotFound is shown when the item total is unavailable.
	ShoppingListNotFound = "Shopping list not found"
)

// FormatNumber renders a value the way the front-end interpolates numbers:
// no trailing zeros, no exponent for ordinary amounts.
func FormatNumber(v float64) string {
	if v == 0 {
		// -0 prints as "0" in the front-end.
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatAmount renders a monetary value with the currency prefix.
func FormatAmount(v float64) string {
	return CurrencyPrefix + FormatNumber(v)
}

// FormatOptionalAmount renders a nullable monetary value, using zero when nil or NaN.
func FormatOptionalAmount(v *float64) string {
	if !usable(v) {
		return FormatAmount(0)
	}
	return FormatAmount(*v)
}

// FormatOptionalNumber renders a nullable value or the fallback when nil.
func FormatOptionalNumber(v *float64, fallback string) string {
	if !usable(v) {
		return fallback
	}
	return FormatNumber(*v)
}

func usable(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}
