package models

import "time"

// GalleryImage is a photo shown on the public gallery page.
type GalleryImage struct {
	ID        string    `db:"id" json:"id"`
	URL       string    `db:"url" json:"url"`
	Caption   *string   `db:"caption" json:"caption,omitempty"`
	Category  *string   `db:"category" json:"category,omitempty"`
	SortOrder int       `db:"sort_order" json:"order"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
