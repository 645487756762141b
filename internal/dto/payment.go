package dto

import "time"

// RecordPaymentRequest is the payload for recording a fee installment.
type RecordPaymentRequest struct {
	StudentID      string     `json:"studentId" validate:"required"`
	Amount         float64    `json:"amount" validate:"gt=0"`
	Date           *time.Time `json:"date"`
	Mode           string     `json:"mode" validate:"omitempty,payment_mode"`
	TransactionRef *string    `json:"transactionRef" validate:"omitempty,max=100"`
	Note           *string    `json:"note" validate:"omitempty,max=500"`
}
