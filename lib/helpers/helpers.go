package helpers

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatAmount renders a currency amount for chat display, grouping
// thousands and picking a decimal count by magnitude.
func FormatAmount(amount float64) string {
	decimals := 6
	switch {
	case amount == math.Trunc(amount):
		decimals = 0
	case amount >= 1000:
		decimals = 2
	case amount > 1.2:
		decimals = 2
	case amount < 0.00001:
		decimals = 8
	}

	p := message.NewPrinter(language.English)
	return p.Sprintf("%.*f", decimals, amount)
}
