package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		bookings, err := app.FindCollectionByNameOrId("bookings")
		if err != nil {
			return err
		}
		tiers, err := app.FindCollectionByNameOrId("ticket_types")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("booking_items")

		collection.Fields.Add(
			&core.RelationField{
				Name:          "booking",
				CollectionId:  bookings.Id,
				MaxSelect:     1,
				Required:      true,
				CascadeDelete: true,
			},
			&core.RelationField{
				Name:         "ticket_tier",
				CollectionId: tiers.Id,
				MaxSelect:    1,
				Required:     true,
			},
			&core.NumberField{Name: "quantity", Required: true, OnlyInt: true, Min: types.Pointer(1.0)},
			&core.NumberField{Name: "unit_price", Required: true, Min: types.Pointer(0.0)},
			&core.NumberField{Name: "subtotal", Min: types.Pointer(0.0)},
			&core.AutodateField{Name: "created", OnCreate: true},
		)

		collection.AddIndex("idx_booking_items_booking", false, "booking", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("booking_items")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
