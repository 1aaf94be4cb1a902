package models

import (
	"time"
)

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	City        string    `json:"city"`
	Category    string    `json:"category"` // upcoming, past
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	BannerURL   string    `json:"banner_image_url,omitempty"`
	Gallery     []string  `json:"gallery_images,omitempty"`
}

type TicketTier struct {
	ID      string  `json:"id"`
	EventID string  `json:"event_id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	// Capacity is the number of tickets that may ever be sold for this
	// tier; Sold counts quantities committed by confirmed bookings.
	Capacity int  `json:"capacity"`
	Sold     int  `json:"sold"`
	Enabled  bool `json:"enabled"`
}

// Available reports how many tickets of the tier can still be selected.
func (t TicketTier) Available() int {
	remaining := t.Capacity - t.Sold
	if remaining < 0 {
		return 0
	}
	return remaining
}
