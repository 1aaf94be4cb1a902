package models

import (
	"time"
)

type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Body        string    `json:"body"`
	Tags        []string  `json:"tags,omitempty"`
	FeatureURL  string    `json:"feature_image_url,omitempty"`
	PublishedOn time.Time `json:"published_on"`
}
