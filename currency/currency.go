// Package currency converts between the two settlement currencies using a
// single statically configured rate. Display rounding belongs to callers.
package currency

import "fmt"

// DefaultCNYToUSDRate is used when no rate is configured.
const DefaultCNYToUSDRate = 7.3

// Converter converts between USD and CNY with a fixed rate expressed as CNY
// units per one USD.
type Converter struct {
	rate float64
}

// NewConverter returns a converter for the given CNY-per-USD rate. A zero or
// negative rate falls back to the default.
func NewConverter(rate float64) *Converter {
	if rate <= 0 {
		rate = DefaultCNYToUSDRate
	}
	return &Converter{rate: rate}
}

// Rate returns the configured CNY-per-USD rate.
func (c *Converter) Rate() float64 { return c.rate }

// ToUSD converts an amount of CNY to USD.
func (c *Converter) ToUSD(cny float64) float64 { return cny / c.rate }

// ToCNY converts an amount of USD to CNY.
func (c *Converter) ToCNY(usd float64) float64 { return usd * c.rate }

// Format renders an amount with its currency symbol at display precision.
func Format(amount float64, currency string) string {
	switch currency {
	case "USD":
		return fmt.Sprintf("$%.4f", amount)
	case "CNY":
		return fmt.Sprintf("¥%.4f", amount)
	}
	return fmt.Sprintf("%.4f %s", amount, currency)
}
