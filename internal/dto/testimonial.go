package dto

// CreateTestimonialRequest adds a testimonial.
type CreateTestimonialRequest struct {
	StudentName string  `json:"studentName" validate:"required,max=200"`
	Course      *string `json:"course" validate:"omitempty,max=200"`
	Message     string  `json:"message" validate:"required,max=2000"`
	IsActive    *bool   `json:"isActive"`
}

// SetActiveRequest toggles visibility of a record.
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}
