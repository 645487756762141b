package models

import "time"

// Course is an offering in the public catalog.
type Course struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Category    string    `db:"category" json:"category"`
	Duration    string    `db:"duration" json:"duration"`
	Fees        float64   `db:"fees" json:"fees"`
	Description *string   `db:"description" json:"description,omitempty"`
	Eligibility *string   `db:"eligibility" json:"eligibility,omitempty"`
	Syllabus    *string   `db:"syllabus" json:"syllabus,omitempty"`
	ImageURL    *string   `db:"image_url" json:"imageUrl,omitempty"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// CourseOrder selects the ordering of course listings.
type CourseOrder string

const (
	CourseOrderName    CourseOrder = "name"
	CourseOrderCreated CourseOrder = "created"
)

// CourseFilter narrows course listings.
type CourseFilter struct {
	ActiveOnly bool
	Order      CourseOrder
	Limit      int
}
