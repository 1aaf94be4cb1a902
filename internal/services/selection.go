package services

import (
	"booking-system/models"

	"github.com/shopspring/decimal"
)

// TicketSelection holds the tier quantities a buyer has picked so far.
// Quantities are always clamped to what the tier can still provide, and
// lines at quantity zero are dropped rather than kept around.
type TicketSelection struct {
	lines []models.SelectedLine
}

func NewTicketSelection(lines []models.SelectedLine) *TicketSelection {
	s := &TicketSelection{}
	for _, line := range lines {
		if line.Quantity > 0 {
			s.lines = append(s.lines, line)
		}
	}
	return s
}

// SetQuantity sets the chosen quantity for a tier and returns the
// quantity actually applied. Requests below zero clamp to zero, requests
// above the remaining availability clamp to it. Disabled and sold out
// tiers are no-ops.
func (s *TicketSelection) SetQuantity(tier models.TicketTier, quantity int) int {
	if !tier.Enabled || tier.Available() == 0 {
		return s.Quantity(tier.ID)
	}

	if quantity < 0 {
		quantity = 0
	}
	if max := tier.Available(); quantity > max {
		quantity = max
	}

	idx := s.indexOf(tier.ID)

	if quantity == 0 {
		if idx > -1 {
			s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
		}
		return 0
	}

	line := models.SelectedLine{
		TierID:    tier.ID,
		TierName:  tier.Name,
		UnitPrice: tier.Price,
		Quantity:  quantity,
	}
	if idx > -1 {
		s.lines[idx] = line
	} else {
		s.lines = append(s.lines, line)
	}
	return quantity
}

// Quantity returns the chosen quantity for a tier, zero when unselected.
func (s *TicketSelection) Quantity(tierID string) int {
	if idx := s.indexOf(tierID); idx > -1 {
		return s.lines[idx].Quantity
	}
	return 0
}

// Lines returns a copy of the current selection in pick order.
func (s *TicketSelection) Lines() []models.SelectedLine {
	out := make([]models.SelectedLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// TicketCount is the total number of tickets across all lines.
func (s *TicketSelection) TicketCount() int {
	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// Subtotal prices the current selection.
func (s *TicketSelection) Subtotal() decimal.Decimal {
	return Subtotal(s.lines)
}

func (s *TicketSelection) indexOf(tierID string) int {
	for i, line := range s.lines {
		if line.TierID == tierID {
			return i
		}
	}
	return -1
}
