package services

import (
	"testing"

	"booking-system/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSubtotal(t *testing.T) {
	lines := []models.SelectedLine{
		{TierID: "early", TierName: "Early Bird", UnitPrice: 500, Quantity: 2},
		{TierID: "vip", TierName: "VIP", UnitPrice: 1200, Quantity: 1},
	}

	subtotal := Subtotal(lines)

	assert.True(t, subtotal.Equal(decimal.NewFromInt(2200)), "got %s", subtotal)
}

func TestSubtotal_Empty(t *testing.T) {
	assert.True(t, Subtotal(nil).IsZero())
	assert.True(t, Subtotal([]models.SelectedLine{}).IsZero())
}

func TestSubtotal_NoFloatDrift(t *testing.T) {
	// 3 x 0.1 must be exactly 0.3, not 0.30000000000000004.
	lines := []models.SelectedLine{
		{TierID: "a", UnitPrice: 0.1, Quantity: 3},
	}

	subtotal := Subtotal(lines)

	assert.Equal(t, "0.3", subtotal.String())
}

func TestTotalWithFee(t *testing.T) {
	subtotal := decimal.NewFromInt(2200)

	total := TotalWithFee(subtotal, DefaultPlatformFee)

	assert.True(t, total.Equal(decimal.NewFromInt(2220)), "got %s", total)
}

func TestTotalWithFee_FeeIsFlat(t *testing.T) {
	// The fee does not scale with ticket count.
	one := TotalWithFee(decimal.NewFromInt(500), DefaultPlatformFee)
	many := TotalWithFee(decimal.NewFromInt(5000), DefaultPlatformFee)

	assert.Equal(t, "520", one.String())
	assert.Equal(t, "5020", many.String())
}
