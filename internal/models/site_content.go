package models

import "time"

// SiteContent is an editable key/value text block of the public site.
type SiteContent struct {
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
