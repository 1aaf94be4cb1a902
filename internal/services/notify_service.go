package services

import (
	"context"
	"log/slog"

	"booking-system/models"
	"booking-system/utils"

	pubnub "github.com/pubnub/go"
)

// NotifyService pushes realtime booking events to the admin dashboard
// channel. Notifications are best effort: a PubNub outage must never
// fail a booking submission, so publishes run behind a circuit breaker
// and errors are only logged.
type NotifyService struct {
	PubNub  *pubnub.PubNub
	channel string
	breaker *utils.CircuitBreaker
}

func NewNotifyService(pn *pubnub.PubNub, channel string) *NotifyService {
	return &NotifyService{
		PubNub:  pn,
		channel: channel,
		breaker: utils.NewCircuitBreaker("pubnub-admin"),
	}
}

func (s *NotifyService) BookingSubmitted(ctx context.Context, booking models.Booking) {
	s.publish(ctx, map[string]any{
		"type":              "booking_submitted",
		"booking_id":        booking.ID,
		"booking_reference": booking.Reference,
		"event_id":          booking.EventID,
		"customer_name":     booking.Name,
		"total_amount":      booking.TotalAmount,
	})
}

func (s *NotifyService) BookingReviewed(ctx context.Context, booking models.Booking) {
	s.publish(ctx, map[string]any{
		"type":              "booking_reviewed",
		"booking_id":        booking.ID,
		"booking_reference": booking.Reference,
		"status":            booking.Status,
	})
}

func (s *NotifyService) publish(ctx context.Context, message map[string]any) {
	if s.PubNub == nil {
		return
	}

	_, err := s.breaker.Execute(ctx, func() (any, error) {
		_, _, err := s.PubNub.Publish().
			Channel(s.channel).
			Message(message).
			Execute()
		return nil, err
	})
	if err != nil {
		slog.Error("notify: publish failed", "channel", s.channel, "type", message["type"], "error", err)
	}
}
