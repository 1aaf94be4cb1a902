package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicketTier_Available(t *testing.T) {
	tests := []struct {
		name string
		tier TicketTier
		want int
	}{
		{"fresh tier", TicketTier{Capacity: 100, Sold: 0}, 100},
		{"partially sold", TicketTier{Capacity: 10, Sold: 8}, 2},
		{"sold out", TicketTier{Capacity: 50, Sold: 50}, 0},
		{"oversold clamps to zero", TicketTier{Capacity: 10, Sold: 12}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tier.Available())
		})
	}
}
