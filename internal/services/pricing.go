package services

import (
	"booking-system/models"

	"github.com/shopspring/decimal"
)

// DefaultPlatformFee is the fixed additive charge applied to every
// booking, independent of ticket count.
var DefaultPlatformFee = decimal.NewFromInt(20)

// Subtotal is the exact sum of quantity x unit price over all lines.
// Money math stays in decimal; float64 prices coming from the store are
// converted once at the boundary.
func Subtotal(lines []models.SelectedLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		price := decimal.NewFromFloat(line.UnitPrice)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// TotalWithFee adds the platform fee to a subtotal.
func TotalWithFee(subtotal, fee decimal.Decimal) decimal.Decimal {
	return subtotal.Add(fee)
}
