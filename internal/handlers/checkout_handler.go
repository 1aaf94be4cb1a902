package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"booking-system/config"
	"booking-system/internal/services"
	"booking-system/internal/status"
	"booking-system/models"
	"booking-system/monitoring"
	"booking-system/utils"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/filesystem"
)

type CheckoutHandler struct {
	app      *pocketbase.PocketBase
	checkout *services.CheckoutService
	notify   *services.NotifyService
	cfg      *config.Config
}

func NewCheckoutHandler(app *pocketbase.PocketBase, checkout *services.CheckoutService, notify *services.NotifyService, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		app:      app,
		checkout: checkout,
		notify:   notify,
		cfg:      cfg,
	}
}

// StartCheckout - Open a new draft for an event.
func (h *CheckoutHandler) StartCheckout(e *core.RequestEvent) error {
	var req struct {
		EventID string `json:"event_id"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	event, err := h.app.FindRecordById("events", req.EventID)
	if err != nil {
		return apis.NewNotFoundError("Event not found", err)
	}
	if event.GetString("category") != "upcoming" {
		return apis.NewBadRequestError("Bookings are closed for this event", nil)
	}

	draft, err := h.checkout.StartDraft(e.Request.Context(), req.EventID)
	if err != nil {
		return apis.NewInternalServerError("Failed to start checkout", err)
	}

	return e.JSON(http.StatusOK, h.draftData(draft))
}

// GetCheckout - Current draft snapshot with pricing.
func (h *CheckoutHandler) GetCheckout(e *core.RequestEvent) error {
	draft, err := h.checkout.Get(e.Request.Context(), e.Request.PathValue("draftId"))
	if err != nil {
		return checkoutError(err)
	}
	return e.JSON(http.StatusOK, h.draftData(draft))
}

// SetTickets - Apply requested tier quantities. Quantities outside the
// remaining availability come back clamped in the snapshot.
func (h *CheckoutHandler) SetTickets(e *core.RequestEvent) error {
	draftID := e.Request.PathValue("draftId")

	var req struct {
		Picks []services.QuantityPick `json:"picks"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	ctx := e.Request.Context()

	draft, err := h.checkout.Get(ctx, draftID)
	if err != nil {
		return checkoutError(err)
	}

	tiers, err := h.loadTiers(draft.EventID)
	if err != nil {
		return apis.NewBadRequestError("Failed to load ticket tiers", err)
	}

	next, err := h.checkout.SetTickets(ctx, draftID, tiers, req.Picks)
	if err != nil {
		monitoring.TrackTransition(string(services.StepSelecting), "blocked")
		return checkoutError(err)
	}

	monitoring.TrackTransition(string(services.StepSelecting), "ok")
	return e.JSON(http.StatusOK, h.draftData(next))
}

// SubmitDetails - Record contact fields and advance to payment.
func (h *CheckoutHandler) SubmitDetails(e *core.RequestEvent) error {
	draftID := e.Request.PathValue("draftId")

	var contact services.ContactDetails
	if err := e.BindBody(&contact); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	next, err := h.checkout.SubmitDetails(e.Request.Context(), draftID, contact)
	if err != nil {
		monitoring.TrackTransition(string(services.StepDetails), "blocked")
		return checkoutError(err)
	}

	monitoring.TrackTransition(string(services.StepDetails), "ok")
	return e.JSON(http.StatusOK, h.draftData(next))
}

// Back - Step towards selection, keeping entered data.
func (h *CheckoutHandler) Back(e *core.RequestEvent) error {
	next, err := h.checkout.Back(e.Request.Context(), e.Request.PathValue("draftId"))
	if err != nil {
		return checkoutError(err)
	}
	return e.JSON(http.StatusOK, h.draftData(next))
}

// PaymentInstructions - UPI transfer details for the draft's total. The
// buyer transfers exactly this amount out of band and uploads the proof.
func (h *CheckoutHandler) PaymentInstructions(e *core.RequestEvent) error {
	draft, err := h.checkout.Get(e.Request.Context(), e.Request.PathValue("draftId"))
	if err != nil {
		return checkoutError(err)
	}
	if draft.Step != services.StepPayment {
		return checkoutError(status.ErrBadTransition)
	}

	total := draft.Total(h.checkout.Fee)

	return e.JSON(http.StatusOK, map[string]any{
		"upi_id":          h.cfg.UPIID,
		"amount":          total.InexactFloat64(),
		"amount_display":  utils.FormatINR(total),
		"proof_max_bytes": h.cfg.MaxProofSize,
		"proof_types":     []string{"image/jpeg", "image/png", "image/webp", "application/pdf"},
	})
}

// Submit - Final step: validate and store the payment proof, write the
// booking with its line items, and discard the draft. Failures leave the
// draft on the payment step so the buyer can retry.
func (h *CheckoutHandler) Submit(e *core.RequestEvent) error {
	draftID := e.Request.PathValue("draftId")
	ctx := e.Request.Context()

	draft, err := h.checkout.Get(ctx, draftID)
	if err != nil {
		return checkoutError(err)
	}
	if draft.Step != services.StepPayment {
		return checkoutError(status.ErrBadTransition)
	}

	proof, err := h.proofFromRequest(e)
	if err != nil {
		monitoring.TrackBookingSubmitted(draft.EventID, "rejected")
		return checkoutError(err)
	}

	confirmed, err := h.checkout.Finalize(ctx, draftID, proof.Name)
	if err != nil {
		monitoring.TrackBookingSubmitted(draft.EventID, "rejected")
		return checkoutError(err)
	}

	booking, err := h.saveBooking(confirmed, proof)
	if err != nil {
		slog.Error("checkout: booking insert failed", "draft", draftID, "error", err)
		monitoring.TrackBookingSubmitted(draft.EventID, "error")
		// The draft still sits on the payment step in Redis; the buyer
		// can retry without re-entering anything.
		return apis.NewBadRequestError("Failed to save booking, please try again", err)
	}

	if err := h.checkout.Discard(ctx, draftID); err != nil {
		slog.Error("checkout: draft cleanup failed", "draft", draftID, "error", err)
	}

	monitoring.TrackBookingSubmitted(draft.EventID, "ok")
	monitoring.TrackBookingAmount(booking.TotalAmount)
	h.notify.BookingSubmitted(ctx, booking)

	return e.JSON(http.StatusOK, map[string]any{
		"booking_id":        booking.ID,
		"booking_reference": booking.Reference,
		"total_amount":      booking.TotalAmount,
		"status":            booking.Status,
	})
}

// SimulateSubmit - Development helper that walks the final transition
// without touching storage (no proof upload, no booking row).
func (h *CheckoutHandler) SimulateSubmit(e *core.RequestEvent) error {
	ctx := e.Request.Context()
	draftID := e.Request.PathValue("draftId")

	confirmed, err := h.checkout.Finalize(ctx, draftID, "simulated-proof.jpg")
	if err != nil {
		return checkoutError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"booking_reference": confirmed.Reference,
		"total_amount":      confirmed.Total(h.checkout.Fee).InexactFloat64(),
		"simulated":         true,
	})
}

func (h *CheckoutHandler) proofFromRequest(e *core.RequestEvent) (*filesystem.File, error) {
	files, err := e.FindUploadedFiles("payment_proof")
	if err != nil || len(files) == 0 {
		return nil, status.ErrMissingProof
	}
	proof := files[0]

	reader, err := proof.Reader.Open()
	if err != nil {
		return nil, fmt.Errorf("open proof: %w", err)
	}
	defer reader.Close()

	head := make([]byte, 512)
	n, err := reader.Read(head)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read proof: %w", err)
	}

	if err := utils.ValidateProof(head[:n], proof.Size, h.cfg.MaxProofSize); err != nil {
		return nil, err
	}
	return proof, nil
}

func (h *CheckoutHandler) saveBooking(draft services.Draft, proof *filesystem.File) (models.Booking, error) {
	total := draft.Total(h.checkout.Fee)
	booking := models.Booking{
		Reference:   draft.Reference,
		EventID:     draft.EventID,
		Name:        draft.Contact.Name,
		Phone:       draft.Contact.Phone,
		Email:       draft.Contact.Email,
		Instagram:   draft.Contact.Instagram,
		TotalAmount: total.InexactFloat64(),
		Status:      "pending",
	}

	err := h.app.RunInTransaction(func(txApp core.App) error {
		bookings, err := txApp.FindCollectionByNameOrId("bookings")
		if err != nil {
			return err
		}

		record := core.NewRecord(bookings)
		record.Set("event", draft.EventID)
		record.Set("customer_name", booking.Name)
		record.Set("customer_phone", booking.Phone)
		record.Set("customer_email", booking.Email)
		record.Set("customer_instagram", booking.Instagram)
		record.Set("total_amount", booking.TotalAmount)
		record.Set("booking_reference", booking.Reference)
		record.Set("status", booking.Status)
		record.Set("payment_proof", proof)

		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("save booking: %w", err)
		}
		booking.ID = record.Id

		items, err := txApp.FindCollectionByNameOrId("booking_items")
		if err != nil {
			return err
		}

		for _, line := range draft.Lines {
			item := core.NewRecord(items)
			item.Set("booking", record.Id)
			item.Set("ticket_tier", line.TierID)
			item.Set("quantity", line.Quantity)
			item.Set("unit_price", line.UnitPrice)
			item.Set("subtotal", services.Subtotal([]models.SelectedLine{line}).InexactFloat64())

			if err := txApp.Save(item); err != nil {
				return fmt.Errorf("save booking item: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}

	return booking, nil
}

func (h *CheckoutHandler) loadTiers(eventID string) (map[string]models.TicketTier, error) {
	records, err := h.app.FindRecordsByFilter(
		"ticket_types",
		"event = {:eventId} && enabled = true",
		"+price",
		-1,
		0,
		map[string]any{"eventId": eventID},
	)
	if err != nil {
		return nil, err
	}

	tiers := make(map[string]models.TicketTier, len(records))
	for _, record := range records {
		tiers[record.Id] = models.TicketTier{
			ID:       record.Id,
			EventID:  eventID,
			Name:     record.GetString("name"),
			Price:    record.GetFloat("price"),
			Capacity: record.GetInt("capacity"),
			Sold:     record.GetInt("sold"),
			Enabled:  record.GetBool("enabled"),
		}
	}
	return tiers, nil
}

func (h *CheckoutHandler) draftData(draft services.Draft) map[string]any {
	subtotal := draft.Subtotal()
	total := draft.Total(h.checkout.Fee)

	return map[string]any{
		"id":               draft.ID,
		"event_id":         draft.EventID,
		"step":             draft.Step,
		"lines":            draft.Lines,
		"contact":          draft.Contact,
		"ticket_count":     draft.TicketCount(),
		"subtotal":         subtotal.InexactFloat64(),
		"platform_fee":     h.checkout.Fee.InexactFloat64(),
		"total":            total.InexactFloat64(),
		"subtotal_display": utils.FormatINR(subtotal),
		"total_display":    utils.FormatINR(total),
	}
}

// checkoutError maps draft/guard errors onto HTTP responses. Validation
// failures are client errors; everything else is retryable.
func checkoutError(err error) error {
	switch {
	case errors.Is(err, status.ErrDraftNotFound):
		return apis.NewNotFoundError("Checkout session not found or expired", err)
	case errors.Is(err, status.ErrEmptySelection),
		errors.Is(err, status.ErrMissingContact),
		errors.Is(err, status.ErrInvalidEmail),
		errors.Is(err, status.ErrMissingProof),
		errors.Is(err, status.ErrProofTooLarge),
		errors.Is(err, status.ErrProofBadType),
		errors.Is(err, status.ErrBadTransition):
		return apis.NewBadRequestError(err.Error(), nil)
	default:
		return apis.NewInternalServerError("Checkout failed, please try again", err)
	}
}
