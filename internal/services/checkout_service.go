package services

import (
	"context"
	"time"

	"booking-system/models"
	"booking-system/utils"

	"github.com/shopspring/decimal"
)

// QuantityPick is a requested tier quantity coming from the client. The
// applied quantity may be lower after clamping.
type QuantityPick struct {
	TierID   string `json:"tier_id"`
	Quantity int    `json:"quantity"`
}

// CheckoutService drives draft transitions and keeps every intermediate
// snapshot in the DraftStore. Tier data is supplied by the caller, which
// owns database access.
type CheckoutService struct {
	Store *DraftStore
	Fee   decimal.Decimal
}

func NewCheckoutService(store *DraftStore, fee decimal.Decimal) *CheckoutService {
	return &CheckoutService{
		Store: store,
		Fee:   fee,
	}
}

// StartDraft opens a fresh draft for an event.
func (s *CheckoutService) StartDraft(ctx context.Context, eventID string) (Draft, error) {
	id, err := utils.GenerateCode(8)
	if err != nil {
		return Draft{}, err
	}

	draft := NewDraft(id, eventID, time.Now())
	if err := s.Store.Save(ctx, draft); err != nil {
		return Draft{}, err
	}
	return draft, nil
}

// SetTickets applies the requested quantities against the given tiers,
// clamping each pick, and persists the updated snapshot.
func (s *CheckoutService) SetTickets(ctx context.Context, draftID string, tiers map[string]models.TicketTier, picks []QuantityPick) (Draft, error) {
	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return Draft{}, err
	}

	sel := NewTicketSelection(draft.Lines)
	for _, pick := range picks {
		tier, ok := tiers[pick.TierID]
		if !ok {
			continue
		}
		sel.SetQuantity(tier, pick.Quantity)
	}

	next, err := draft.WithSelection(sel)
	if err != nil {
		return draft, err
	}
	if err := s.Store.Save(ctx, next); err != nil {
		return draft, err
	}
	return next, nil
}

// SubmitDetails stores the contact fields and advances to payment when
// the guards pass. The draft stays on the details step otherwise.
func (s *CheckoutService) SubmitDetails(ctx context.Context, draftID string, contact ContactDetails) (Draft, error) {
	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return Draft{}, err
	}

	// Entering details requires leaving the selection step first.
	if draft.Step == StepSelecting {
		if draft, err = draft.ContinueToDetails(); err != nil {
			return draft, err
		}
	}

	next, err := draft.WithContact(contact)
	if err != nil {
		return draft, err
	}
	next, err = next.ContinueToPayment()
	if err != nil {
		// Keep the partially filled fields so the buyer can correct
		// them without retyping.
		if saveErr := s.Store.Save(ctx, next); saveErr != nil {
			return next, saveErr
		}
		return next, err
	}

	if err := s.Store.Save(ctx, next); err != nil {
		return next, err
	}
	return next, nil
}

// Back rewinds one step, preserving entered data.
func (s *CheckoutService) Back(ctx context.Context, draftID string) (Draft, error) {
	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return Draft{}, err
	}

	next, err := draft.Back()
	if err != nil {
		return draft, err
	}
	if err := s.Store.Save(ctx, next); err != nil {
		return draft, err
	}
	return next, nil
}

// Get loads the current snapshot.
func (s *CheckoutService) Get(ctx context.Context, draftID string) (Draft, error) {
	return s.Store.Get(ctx, draftID)
}

// Finalize pins the proof file and booking reference on the draft and
// marks it confirmed. The caller persists the booking itself; the
// confirmed draft is removed from the store afterwards.
func (s *CheckoutService) Finalize(ctx context.Context, draftID, proofFile string) (Draft, error) {
	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return Draft{}, err
	}

	reference, err := utils.BookingReference(time.Now())
	if err != nil {
		return draft, err
	}

	next, err := draft.Confirm(proofFile, reference)
	if err != nil {
		return draft, err
	}
	return next, nil
}

// Discard drops a draft once its booking has been written, or when the
// buyer abandons checkout explicitly.
func (s *CheckoutService) Discard(ctx context.Context, draftID string) error {
	return s.Store.Delete(ctx, draftID)
}
