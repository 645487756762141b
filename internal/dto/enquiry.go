package dto

// CreateEnquiryRequest is submitted by the public enquiry form.
type CreateEnquiryRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Phone   string `json:"phone" validate:"required,max=20"`
	Course  string `json:"course" validate:"max=200"`
	Message string `json:"message" validate:"max=2000"`
}
