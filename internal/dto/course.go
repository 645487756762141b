package dto

import "github.com/noah-isme/institute-api/internal/models"

// CourseDetail is a course with its syllabus split into modules.
type CourseDetail struct {
	models.Course
	Modules []string `json:"modules"`
}

// CatalogGroup lists the active courses of one category.
type CatalogGroup struct {
	Category string          `json:"category"`
	Courses  []models.Course `json:"courses"`
}

// CreateCourseRequest is the payload for adding a course.
type CreateCourseRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Slug        string  `json:"slug" validate:"required,slug,max=120"`
	Category    string  `json:"category" validate:"required,max=100"`
	Duration    string  `json:"duration" validate:"required,max=50"`
	Fees        float64 `json:"fees" validate:"gte=0"`
	Description *string `json:"description"`
	Eligibility *string `json:"eligibility"`
	Syllabus    *string `json:"syllabus"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"isActive"`
}

// UpdateCourseRequest is a partial course update.
type UpdateCourseRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Slug        *string  `json:"slug" validate:"omitempty,slug,max=120"`
	Category    *string  `json:"category" validate:"omitempty,min=1,max=100"`
	Duration    *string  `json:"duration" validate:"omitempty,min=1,max=50"`
	Fees        *float64 `json:"fees" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Eligibility *string  `json:"eligibility"`
	Syllabus    *string  `json:"syllabus"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,max=500"`
	IsActive    *bool    `json:"isActive"`
}
