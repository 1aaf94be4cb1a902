package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"booking-system/internal/services"
	"booking-system/internal/status"
	"booking-system/models"
	"booking-system/monitoring"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

type AdminHandler struct {
	app    *pocketbase.PocketBase
	notify *services.NotifyService
}

func NewAdminHandler(app *pocketbase.PocketBase, notify *services.NotifyService) *AdminHandler {
	return &AdminHandler{
		app:    app,
		notify: notify,
	}
}

func requireAdmin(e *core.RequestEvent) error {
	if e.Auth == nil || !e.Auth.IsSuperuser() {
		return apis.NewUnauthorizedError("Admin access required", nil)
	}
	return nil
}

type tierInput struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Capacity int     `json:"capacity"`
	Enabled  bool    `json:"enabled"`
}

type eventInput struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Venue       string      `json:"venue"`
	City        string      `json:"city"`
	Category    string      `json:"category"`
	StartsAt    string      `json:"starts_at"`
	EndsAt      string      `json:"ends_at"`
	BannerURL   string      `json:"banner_image_url"`
	Gallery     []string    `json:"gallery_images"`
	Tiers       []tierInput `json:"ticket_tiers"`
}

// CreateEvent - New event with its ticket tiers in one call.
func (h *AdminHandler) CreateEvent(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}

	var req eventInput
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if req.Title == "" || req.Venue == "" || req.City == "" {
		return apis.NewBadRequestError("Title, venue and city are required", nil)
	}

	var eventID string
	err := h.app.RunInTransaction(func(txApp core.App) error {
		events, err := txApp.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}

		record := core.NewRecord(events)
		applyEventInput(record, req)

		if err := txApp.Save(record); err != nil {
			return err
		}
		eventID = record.Id

		return saveTiers(txApp, record.Id, req.Tiers)
	})
	if err != nil {
		return apis.NewBadRequestError("Failed to create event", err)
	}

	return e.JSON(http.StatusOK, map[string]any{"id": eventID})
}

// UpdateEvent - Edit an event and upsert its tiers. Shrinking a tier's
// capacity below what is already sold is rejected.
func (h *AdminHandler) UpdateEvent(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}

	eventID := e.Request.PathValue("eventId")

	var req eventInput
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	err := h.app.RunInTransaction(func(txApp core.App) error {
		record, err := txApp.FindRecordById("events", eventID)
		if err != nil {
			return err
		}

		applyEventInput(record, req)
		if err := txApp.Save(record); err != nil {
			return err
		}

		return saveTiers(txApp, eventID, req.Tiers)
	})
	if err != nil {
		if errors.Is(err, status.ErrCapacityExceeded) {
			return apis.NewBadRequestError(err.Error(), nil)
		}
		return apis.NewBadRequestError("Failed to update event", err)
	}

	return e.JSON(http.StatusOK, map[string]any{"id": eventID})
}

// DeleteEvent - Remove an event; tiers and bookings cascade.
func (h *AdminHandler) DeleteEvent(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}

	record, err := h.app.FindRecordById("events", e.Request.PathValue("eventId"))
	if err != nil {
		return apis.NewNotFoundError("Event not found", err)
	}
	if err := h.app.Delete(record); err != nil {
		return apis.NewBadRequestError("Failed to delete event", err)
	}

	return e.JSON(http.StatusOK, map[string]any{"deleted": true})
}

func applyEventInput(record *core.Record, req eventInput) {
	record.Set("title", req.Title)
	record.Set("description", req.Description)
	record.Set("venue", req.Venue)
	record.Set("city", req.City)
	if req.Category != "" {
		record.Set("category", req.Category)
	}
	record.Set("starts_at", req.StartsAt)
	record.Set("ends_at", req.EndsAt)
	record.Set("banner_image_url", req.BannerURL)
	record.Set("gallery_images", req.Gallery)
}

func saveTiers(txApp core.App, eventID string, tiers []tierInput) error {
	collection, err := txApp.FindCollectionByNameOrId("ticket_types")
	if err != nil {
		return err
	}

	for _, tier := range tiers {
		var record *core.Record
		if tier.ID != "" {
			record, err = txApp.FindRecordById("ticket_types", tier.ID)
			if err != nil {
				return err
			}
			if record.GetInt("sold") > tier.Capacity {
				return status.ErrCapacityExceeded
			}
		} else {
			record = core.NewRecord(collection)
			record.Set("sold", 0)
		}

		record.Set("event", eventID)
		record.Set("name", tier.Name)
		record.Set("price", tier.Price)
		record.Set("capacity", tier.Capacity)
		record.Set("enabled", tier.Enabled)

		if err := txApp.Save(record); err != nil {
			return err
		}
	}
	return nil
}

type postInput struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Body        string   `json:"body"`
	Tags        []string `json:"tags"`
	FeatureURL  string   `json:"feature_image_url"`
	PublishedOn string   `json:"published_on"`
}

// CreatePost - New marketing post. Slug must be unique.
func (h *AdminHandler) CreatePost(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}

	var req postInput
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if req.Title == "" || req.Slug == "" || req.Body == "" {
		return apis.NewBadRequestError("Title, slug and body are required", nil)
	}

	posts, err := h.app.FindCollectionByNameOrId("posts")
	if err != nil {
		return apis.NewInternalServerError("Posts collection missing", err)
	}

	record := core.NewRecord(posts)
	applyPostInput(record, req)

	if err := h.app.Save(record); err != nil {
		return apis.NewBadRequestError("Failed to create post", err)
	}

	return e.JSON(http.StatusOK, map[string]any{"id": record.Id})
}

// UpdatePost - Edit an existing post.
func (h *AdminHandler) UpdatePost(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}

	var req postInput
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	record, err := h.app.FindRecordById("posts", e.Request.PathValue("postId"))
	if err != nil {
		return apis.NewNotFoundError("Post not found", err)
	}

	applyPostInput(record, req)
	if err := h.app.Save(record); err != nil {
		return apis.NewBadRequestError("Failed to update post", err)
	}

	return e.JSON(http.StatusOK, map[string]any{"id": record.Id})
}

// DeletePost - Remove a post.
func (h *AdminHandler) DeletePost(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}

	record, err := h.app.FindRecordById("posts", e.Request.PathValue("postId"))
	if err != nil {
		return apis.NewNotFoundError("Post not found", err)
	}
	if err := h.app.Delete(record); err != nil {
		return apis.NewBadRequestError("Failed to delete post", err)
	}

	return e.JSON(http.StatusOK, map[string]any{"deleted": true})
}

func applyPostInput(record *core.Record, req postInput) {
	record.Set("title", req.Title)
	record.Set("slug", req.Slug)
	record.Set("body", req.Body)
	record.Set("tags", req.Tags)
	record.Set("feature_image_url", req.FeatureURL)
	if req.PublishedOn != "" {
		record.Set("published_on", req.PublishedOn)
	}
}

// ListBookings - Review queue, optionally filtered by status and event,
// newest first, line items expanded.
func (h *AdminHandler) ListBookings(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}

	query := e.Request.URL.Query()

	filter := ""
	params := map[string]any{}
	if s := query.Get("status"); s != "" {
		filter = "status = {:status}"
		params["status"] = s
	}
	if eventID := query.Get("event_id"); eventID != "" {
		if filter != "" {
			filter += " && "
		}
		filter += "event = {:eventId}"
		params["eventId"] = eventID
	}

	bookings, err := h.app.FindRecordsByFilter("bookings", filter, "-created", 200, 0, params)
	if err != nil {
		return apis.NewBadRequestError("Failed to get bookings", err)
	}

	// One query for all line items instead of one per booking.
	bookingIDs := make([]any, len(bookings))
	for i, booking := range bookings {
		bookingIDs[i] = booking.Id
	}

	type itemRow struct {
		Booking   string  `db:"booking"`
		Tier      string  `db:"ticket_tier"`
		Quantity  int     `db:"quantity"`
		UnitPrice float64 `db:"unit_price"`
		Subtotal  float64 `db:"subtotal"`
	}
	itemRows := []itemRow{}
	if len(bookingIDs) > 0 {
		err = h.app.DB().
			Select("booking", "ticket_tier", "quantity", "unit_price", "subtotal").
			From("booking_items").
			Where(dbx.In("booking", bookingIDs...)).
			All(&itemRows)
		if err != nil {
			return apis.NewBadRequestError("Failed to get booking items", err)
		}
	}

	itemsByBooking := map[string][]map[string]any{}
	for _, row := range itemRows {
		itemsByBooking[row.Booking] = append(itemsByBooking[row.Booking], map[string]any{
			"ticket_tier": row.Tier,
			"quantity":    row.Quantity,
			"unit_price":  row.UnitPrice,
			"subtotal":    row.Subtotal,
		})
	}

	result := make([]map[string]any, 0, len(bookings))
	for _, booking := range bookings {
		itemData := itemsByBooking[booking.Id]

		proofURL := ""
		if name := booking.GetString("payment_proof"); name != "" {
			proofURL = fmt.Sprintf("/api/files/%s/%s/%s", booking.Collection().Id, booking.Id, name)
		}

		result = append(result, map[string]any{
			"id":                 booking.Id,
			"booking_reference":  booking.GetString("booking_reference"),
			"event_id":           booking.GetString("event"),
			"customer_name":      booking.GetString("customer_name"),
			"customer_phone":     booking.GetString("customer_phone"),
			"customer_email":     booking.GetString("customer_email"),
			"customer_instagram": booking.GetString("customer_instagram"),
			"total_amount":       booking.GetFloat("total_amount"),
			"status":             booking.GetString("status"),
			"payment_proof_url":  proofURL,
			"created":            booking.GetDateTime("created"),
			"items":              itemData,
		})
	}

	return e.JSON(http.StatusOK, map[string]any{
		"bookings": result,
		"total":    len(result),
	})
}

// ReviewBooking - Confirm or decline a pending booking. Confirming
// commits the booked quantities to each tier's sold counter; a tier that
// can no longer cover its quantity fails the whole review.
func (h *AdminHandler) ReviewBooking(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}

	bookingID := e.Request.PathValue("bookingId")

	var req struct {
		Decision string `json:"decision"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if req.Decision != "confirmed" && req.Decision != "declined" {
		return apis.NewBadRequestError("Decision must be confirmed or declined", nil)
	}

	var reviewed models.Booking
	err := h.app.RunInTransaction(func(txApp core.App) error {
		booking, err := txApp.FindRecordById("bookings", bookingID)
		if err != nil {
			return err
		}
		if booking.GetString("status") != "pending" {
			return fmt.Errorf("booking is already %s", booking.GetString("status"))
		}

		if req.Decision == "confirmed" {
			if err := commitTierQuantities(txApp, bookingID); err != nil {
				return err
			}
		}

		booking.Set("status", req.Decision)
		booking.Set("reviewed_at", types.NowDateTime())
		if err := txApp.Save(booking); err != nil {
			return err
		}

		reviewed = models.Booking{
			ID:        booking.Id,
			Reference: booking.GetString("booking_reference"),
			EventID:   booking.GetString("event"),
			Status:    req.Decision,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, status.ErrCapacityExceeded) {
			return apis.NewBadRequestError(err.Error(), nil)
		}
		return apis.NewBadRequestError("Failed to review booking", err)
	}

	monitoring.TrackBookingReviewed(req.Decision)
	h.notify.BookingReviewed(e.Request.Context(), reviewed)

	return e.JSON(http.StatusOK, map[string]any{
		"id":     reviewed.ID,
		"status": reviewed.Status,
	})
}

// commitTierQuantities moves a pending booking's quantities into the
// tiers' sold counters, enforcing sold <= capacity at confirm time.
func commitTierQuantities(txApp core.App, bookingID string) error {
	items, err := txApp.FindRecordsByFilter(
		"booking_items",
		"booking = {:bookingId}",
		"",
		-1,
		0,
		map[string]any{"bookingId": bookingID},
	)
	if err != nil {
		return err
	}

	for _, item := range items {
		tier, err := txApp.FindRecordById("ticket_types", item.GetString("ticket_tier"))
		if err != nil {
			return err
		}

		sold := tier.GetInt("sold") + item.GetInt("quantity")
		if sold > tier.GetInt("capacity") {
			return status.ErrCapacityExceeded
		}

		tier.Set("sold", sold)
		if err := txApp.Save(tier); err != nil {
			return err
		}
	}
	return nil
}

type statusRow struct {
	Status string  `db:"status"`
	Count  int     `db:"cnt"`
	Amount float64 `db:"amount"`
}

// GetDashboard - Aggregate booking counts and revenue for the admin
// landing page.
func (h *AdminHandler) GetDashboard(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}

	rows := []statusRow{}
	err := h.app.DB().NewQuery(`
		SELECT status, COUNT(*) as cnt, COALESCE(SUM(total_amount), 0) as amount
		FROM bookings
		GROUP BY status
	`).All(&rows)
	if err != nil {
		return apis.NewBadRequestError("Failed to load dashboard", err)
	}

	byStatus := map[string]any{}
	revenue := 0.0
	totalBookings := 0
	for _, row := range rows {
		byStatus[row.Status] = map[string]any{
			"count":  row.Count,
			"amount": row.Amount,
		}
		totalBookings += row.Count
		if row.Status == "confirmed" {
			revenue = row.Amount
		}
	}

	soldRows := []struct {
		EventID string `db:"event"`
		Sold    int    `db:"sold"`
	}{}
	err = h.app.DB().NewQuery(`
		SELECT event, COALESCE(SUM(sold), 0) as sold
		FROM ticket_types
		GROUP BY event
	`).All(&soldRows)
	if err != nil {
		return apis.NewBadRequestError("Failed to load dashboard", err)
	}

	ticketsByEvent := map[string]int{}
	for _, row := range soldRows {
		ticketsByEvent[row.EventID] = row.Sold
	}

	return e.JSON(http.StatusOK, map[string]any{
		"bookings_by_status": byStatus,
		"total_bookings":     totalBookings,
		"confirmed_revenue":  revenue,
		"tickets_by_event":   ticketsByEvent,
	})
}
