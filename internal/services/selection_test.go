package services

import (
	"testing"

	"booking-system/models"

	"github.com/stretchr/testify/assert"
)

func testTier(id string, price float64, capacity, sold int, enabled bool) models.TicketTier {
	return models.TicketTier{
		ID:       id,
		EventID:  "event-1",
		Name:     id,
		Price:    price,
		Capacity: capacity,
		Sold:     sold,
		Enabled:  enabled,
	}
}

func TestTicketSelection_SetQuantity(t *testing.T) {
	sel := NewTicketSelection(nil)
	tier := testTier("general", 500, 100, 0, true)

	applied := sel.SetQuantity(tier, 2)

	assert.Equal(t, 2, applied)
	assert.Equal(t, 2, sel.Quantity("general"))
	assert.Equal(t, 2, sel.TicketCount())
}

func TestTicketSelection_SetQuantity_ClampsToAvailable(t *testing.T) {
	sel := NewTicketSelection(nil)
	tier := testTier("early", 500, 10, 8, true)

	applied := sel.SetQuantity(tier, 3)

	assert.Equal(t, 2, applied)
	assert.Equal(t, 2, sel.Quantity("early"))
}

func TestTicketSelection_SetQuantity_NegativeClampsToZero(t *testing.T) {
	sel := NewTicketSelection(nil)
	tier := testTier("general", 500, 100, 0, true)
	sel.SetQuantity(tier, 2)

	applied := sel.SetQuantity(tier, -5)

	assert.Equal(t, 0, applied)
	assert.Equal(t, 0, sel.Quantity("general"))
}

func TestTicketSelection_SetQuantity_ZeroRemovesLine(t *testing.T) {
	sel := NewTicketSelection(nil)
	tier := testTier("general", 500, 100, 0, true)
	sel.SetQuantity(tier, 2)

	sel.SetQuantity(tier, 0)

	assert.Empty(t, sel.Lines())
	assert.Equal(t, 0, sel.TicketCount())
}

func TestTicketSelection_SetQuantity_DisabledTierIgnored(t *testing.T) {
	sel := NewTicketSelection(nil)
	tier := testTier("hidden", 500, 100, 0, false)

	applied := sel.SetQuantity(tier, 2)

	assert.Equal(t, 0, applied)
	assert.Empty(t, sel.Lines())
}

func TestTicketSelection_SetQuantity_SoldOutTierIgnored(t *testing.T) {
	sel := NewTicketSelection(nil)
	tier := testTier("gone", 500, 50, 50, true)

	applied := sel.SetQuantity(tier, 1)

	assert.Equal(t, 0, applied)
	assert.Equal(t, 0, sel.Quantity("gone"))
}

func TestTicketSelection_SetQuantity_KeepsExistingOnSoldOut(t *testing.T) {
	// A line picked earlier survives a later no-op request against the
	// now sold out tier.
	tier := testTier("early", 500, 10, 8, true)
	sel := NewTicketSelection(nil)
	sel.SetQuantity(tier, 2)

	tier.Sold = 10
	applied := sel.SetQuantity(tier, 5)

	assert.Equal(t, 2, applied)
	assert.Equal(t, 2, sel.Quantity("early"))
}

func TestTicketSelection_NewDropsZeroQuantityLines(t *testing.T) {
	sel := NewTicketSelection([]models.SelectedLine{
		{TierID: "a", Quantity: 0},
		{TierID: "b", Quantity: 1},
	})

	assert.Len(t, sel.Lines(), 1)
	assert.Equal(t, "b", sel.Lines()[0].TierID)
}

func TestTicketSelection_MixedTiers(t *testing.T) {
	sel := NewTicketSelection(nil)
	early := testTier("early", 500, 100, 0, true)
	vip := testTier("vip", 1200, 20, 0, true)

	sel.SetQuantity(early, 2)
	sel.SetQuantity(vip, 1)

	assert.Equal(t, 3, sel.TicketCount())
	assert.Equal(t, "2200", sel.Subtotal().String())
}

func TestTicketSelection_LinesReturnsCopy(t *testing.T) {
	sel := NewTicketSelection(nil)
	sel.SetQuantity(testTier("general", 500, 100, 0, true), 2)

	lines := sel.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 2, sel.Quantity("general"))
}
