package models

import (
	"time"
)

// SelectedLine is one chosen tier/quantity pair inside a checkout draft.
type SelectedLine struct {
	TierID    string  `json:"tier_id"`
	TierName  string  `json:"tier_name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type Booking struct {
	ID          string        `json:"id"`
	Reference   string        `json:"booking_reference"`
	EventID     string        `json:"event_id"`
	Name        string        `json:"customer_name"`
	Phone       string        `json:"customer_phone"`
	Email       string        `json:"customer_email"`
	Instagram   string        `json:"customer_instagram,omitempty"`
	TotalAmount float64       `json:"total_amount"`
	ProofFile   string        `json:"payment_proof,omitempty"`
	Status      string        `json:"status"` // pending, confirmed, declined
	CreatedAt   time.Time     `json:"created_at"`
	ReviewedAt  *time.Time    `json:"reviewed_at,omitempty"`
	Items       []BookingItem `json:"items,omitempty"`
}

type BookingItem struct {
	ID        string  `json:"id"`
	BookingID string  `json:"booking_id"`
	TierID    string  `json:"ticket_tier_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}
