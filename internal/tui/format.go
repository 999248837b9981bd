package tui

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// defaultCurrency is used when a summary carries no currency code.
const defaultCurrency = "USD"

// percentScale converts a 0..1 rate to a percentage.
const percentScale = 100

// printer groups thousands with English separators regardless of the host locale.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// currencySymbol returns the display symbol for an ISO 4217 code, or the code itself.
func currencySymbol(code string) string {
	switch code {
	case "USD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "JPY", "CNY":
		return "¥"
	case "CAD":
		return "C$"
	case "AUD":
		return "A$"
	case "NZD":
		return "NZ$"
	case "INR":
		return "₹"
	default:
		return code + " "
	}
}

// FormatMoney renders amount in the given currency, e.g. "$1,234.50" or "¥150,000".
// The number of decimals follows the currency's standard rounding; unknown codes
// fall back to two decimals.
func FormatMoney(amount float64, code string) string {
	if code == "" {
		code = defaultCurrency
	}
	code = strings.ToUpper(code)

	scale := 2
	if unit, err := currency.ParseISO(code); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
	}

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + currencySymbol(code) + formatFloat(amount, scale)
}

// formatFloat formats f with the given precision and thousand separators.
func formatFloat(f float64, precision int) string {
	const base = 10
	if precision < 0 {
		precision = 0
	}
	multiplier := int64(math.Pow(base, float64(precision)))
	units := int64(math.Round(f * float64(multiplier)))

	sign := ""
	if units < 0 {
		sign = "-"
		units = -units
	}
	intPart := sign + printer.Sprintf("%d", units/multiplier)
	if precision == 0 {
		return intPart
	}
	return intPart + "." + fmt.Sprintf("%0*d", precision, units%multiplier)
}

// FormatPercent renders a 0..1 rate as a percentage with one decimal.
func FormatPercent(rate float64) string {
	return formatFloat(rate*percentScale, 1) + "%"
}

// FormatCount renders an integer with thousand separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}
