package models

import "time"

// PaymentMode is how a fee installment was paid.
type PaymentMode string

const (
	PaymentCash   PaymentMode = "CASH"
	PaymentOnline PaymentMode = "ONLINE"
	PaymentCheque PaymentMode = "CHEQUE"
)

// Payment is an immutable fee installment.
type Payment struct {
	ID             string      `db:"id" json:"id"`
	StudentID      string      `db:"student_id" json:"studentId"`
	Amount         float64     `db:"amount" json:"amount"`
	Date           time.Time   `db:"date" json:"date"`
	Mode           PaymentMode `db:"mode" json:"mode"`
	TransactionRef *string     `db:"transaction_ref" json:"transactionRef,omitempty"`
	Note           *string     `db:"note" json:"note,omitempty"`
	CreatedAt      time.Time   `db:"created_at" json:"createdAt"`
}

// PaymentWithStudent adds student identity for fee listings.
type PaymentWithStudent struct {
	Payment
	StudentName string `db:"student_name" json:"studentName"`
	RollNumber  string `db:"roll_number" json:"rollNumber"`
}
