package models

import "time"

// Enquiry is an admission enquiry submitted from the public site.
type Enquiry struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	Course    *string   `db:"course" json:"course,omitempty"`
	Message   *string   `db:"message" json:"message,omitempty"`
	IsRead    bool      `db:"is_read" json:"isRead"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
