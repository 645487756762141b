package models

import "time"

// Testimonial is a student quote shown on the public site.
type Testimonial struct {
	ID          string    `db:"id" json:"id"`
	StudentName string    `db:"student_name" json:"studentName"`
	Course      *string   `db:"course" json:"course,omitempty"`
	Message     string    `db:"message" json:"message"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
