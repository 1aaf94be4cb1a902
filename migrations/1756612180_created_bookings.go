package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		events, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("bookings")

		collection.Fields.Add(
			&core.RelationField{
				Name:          "event",
				CollectionId:  events.Id,
				MaxSelect:     1,
				Required:      true,
				CascadeDelete: true,
			},
			&core.TextField{Name: "booking_reference", Required: true},
			&core.TextField{Name: "customer_name", Required: true},
			&core.TextField{Name: "customer_phone", Required: true},
			&core.EmailField{Name: "customer_email", Required: true},
			&core.TextField{Name: "customer_instagram"},
			&core.NumberField{Name: "total_amount", Required: true, Min: types.Pointer(0.0)},
			&core.SelectField{
				Name:      "status",
				Values:    []string{"pending", "confirmed", "declined"},
				MaxSelect: 1,
				Required:  true,
			},
			&core.FileField{
				Name:      "payment_proof",
				MaxSelect: 1,
				MaxSize:   12 * 1024 * 1024,
				MimeTypes: []string{"image/jpeg", "image/png", "image/webp", "application/pdf"},
			},
			&core.DateField{Name: "reviewed_at"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		// Review happens through the admin API only; no public access.
		collection.AddIndex("idx_bookings_reference", true, "booking_reference", "")
		collection.AddIndex("idx_bookings_status", false, "status", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("bookings")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
