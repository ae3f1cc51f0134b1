package dashboard

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatCount renders an integer metric with thousand separators for the
// dashboard cards.
func FormatCount(n int) string {
	return printer.Sprintf("%v", number.Decimal(n))
}

// FormatQuantity renders a quantity metric with at most one decimal place.
func FormatQuantity(q float64) string {
	return printer.Sprintf("%v", number.Decimal(q, number.MaxFractionDigits(1)))
}
