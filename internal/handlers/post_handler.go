package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type PostHandler struct {
	app *pocketbase.PocketBase
}

func NewPostHandler(app *pocketbase.PocketBase) *PostHandler {
	return &PostHandler{app: app}
}

// ListPosts - Public blog listing, newest first.
func (h *PostHandler) ListPosts(e *core.RequestEvent) error {
	posts, err := h.app.FindRecordsByFilter("posts", "", "-published_on", 50, 0, nil)
	if err != nil {
		return apis.NewBadRequestError("Failed to get posts", err)
	}

	result := make([]map[string]any, 0, len(posts))
	for _, post := range posts {
		result = append(result, postData(post, false))
	}

	return e.JSON(http.StatusOK, map[string]any{"posts": result})
}

// GetPost - Single post looked up by slug.
func (h *PostHandler) GetPost(e *core.RequestEvent) error {
	slug := e.Request.PathValue("slug")

	post, err := h.app.FindFirstRecordByData("posts", "slug", slug)
	if err != nil {
		return apis.NewNotFoundError("Post not found", err)
	}

	return e.JSON(http.StatusOK, postData(post, true))
}

func postData(post *core.Record, includeBody bool) map[string]any {
	data := map[string]any{
		"id":                post.Id,
		"title":             post.GetString("title"),
		"slug":              post.GetString("slug"),
		"tags":              post.GetStringSlice("tags"),
		"feature_image_url": post.GetString("feature_image_url"),
		"published_on":      post.GetDateTime("published_on"),
	}
	if includeBody {
		data["body"] = post.GetString("body")
	}
	return data
}
