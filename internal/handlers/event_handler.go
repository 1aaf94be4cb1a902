package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type EventHandler struct {
	app *pocketbase.PocketBase
}

func NewEventHandler(app *pocketbase.PocketBase) *EventHandler {
	return &EventHandler{app: app}
}

// ListEvents - Public events listing, optionally filtered by category
// (upcoming/past). Upcoming events sort soonest first, past ones most
// recent first.
func (h *EventHandler) ListEvents(e *core.RequestEvent) error {
	category := e.Request.URL.Query().Get("category")

	filter := ""
	params := map[string]any{}
	sort := "-starts_at"

	if category != "" {
		if category != "upcoming" && category != "past" {
			return apis.NewBadRequestError("Unknown category", nil)
		}
		filter = "category = {:category}"
		params["category"] = category
		if category == "upcoming" {
			sort = "+starts_at"
		}
	}

	events, err := h.app.FindRecordsByFilter("events", filter, sort, 100, 0, params)
	if err != nil {
		return apis.NewBadRequestError("Failed to get events", err)
	}

	result := make([]map[string]any, 0, len(events))
	for _, event := range events {
		result = append(result, eventData(event))
	}

	return e.JSON(http.StatusOK, map[string]any{
		"events": result,
		"total":  len(result),
	})
}

// GetEvent - Event detail with its enabled ticket tiers ordered by
// price. Sold out tiers are included so the client can render them
// disabled.
func (h *EventHandler) GetEvent(e *core.RequestEvent) error {
	eventID := e.Request.PathValue("eventId")

	event, err := h.app.FindRecordById("events", eventID)
	if err != nil {
		return apis.NewNotFoundError("Event not found", err)
	}

	tiers, err := h.app.FindRecordsByFilter(
		"ticket_types",
		"event = {:eventId} && enabled = true",
		"+price",
		-1,
		0,
		map[string]any{"eventId": eventID},
	)
	if err != nil {
		return apis.NewBadRequestError("Failed to get ticket tiers", err)
	}

	tierData := make([]map[string]any, 0, len(tiers))
	for _, tier := range tiers {
		available := tier.GetInt("capacity") - tier.GetInt("sold")
		if available < 0 {
			available = 0
		}
		tierData = append(tierData, map[string]any{
			"id":        tier.Id,
			"name":      tier.GetString("name"),
			"price":     tier.GetFloat("price"),
			"capacity":  tier.GetInt("capacity"),
			"available": available,
			"sold_out":  available == 0,
		})
	}

	data := eventData(event)
	data["ticket_tiers"] = tierData

	return e.JSON(http.StatusOK, data)
}

func eventData(event *core.Record) map[string]any {
	return map[string]any{
		"id":               event.Id,
		"title":            event.GetString("title"),
		"description":      event.GetString("description"),
		"venue":            event.GetString("venue"),
		"city":             event.GetString("city"),
		"category":         event.GetString("category"),
		"starts_at":        event.GetDateTime("starts_at"),
		"ends_at":          event.GetDateTime("ends_at"),
		"banner_image_url": event.GetString("banner_image_url"),
		"gallery_images":   event.GetStringSlice("gallery_images"),
	}
}
