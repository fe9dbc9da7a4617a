package pricing

import "github.com/shopspring/decimal"

// QuantityScale is the maximum number of decimal places a traded quantity
// may carry.
const QuantityScale = 2

// Total computes the invoice total for a quantity at the product's unit
// price, rounded half-up to a whole unit. Decimal math keeps the comparison
// with the caller-supplied integer price exact.
func Total(quantity float64, unitPrice int64) int64 {
	total := decimal.NewFromFloat(quantity).Mul(decimal.NewFromInt(unitPrice))
	return total.Round(0).IntPart()
}

// ValidQuantity reports whether the quantity is positive and fits in
// QuantityScale decimal places.
func ValidQuantity(quantity float64) bool {
	d := decimal.NewFromFloat(quantity)
	if d.LessThanOrEqual(decimal.Zero) {
		return false
	}
	return d.Equal(d.Round(QuantityScale))
}
