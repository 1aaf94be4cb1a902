package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("posts")

		collection.Fields.Add(
			&core.TextField{Name: "title", Required: true},
			&core.TextField{Name: "slug", Required: true, Pattern: `^[a-z0-9]+(?:-[a-z0-9]+)*$`},
			&core.TextField{Name: "body", Required: true, Max: 100000},
			&core.JSONField{Name: "tags", MaxSize: 2048},
			&core.URLField{Name: "feature_image_url"},
			&core.DateField{Name: "published_on"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.ListRule = types.Pointer("")
		collection.ViewRule = types.Pointer("")

		collection.AddIndex("idx_posts_slug", true, "slug", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("posts")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
