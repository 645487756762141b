package dto

import "time"

// UpsertCertificateRequest creates or replaces the certificate of a student.
type UpsertCertificateRequest struct {
	StudentID         string     `json:"studentId" validate:"required"`
	CertificateNumber *string    `json:"certificateNumber" validate:"omitempty,max=100"`
	IssueDate         *time.Time `json:"issueDate"`
	IsIssued          *bool      `json:"isIssued"`
}

// UpdateCertificateRequest is a partial certificate update.
type UpdateCertificateRequest struct {
	CertificateNumber *string    `json:"certificateNumber" validate:"omitempty,max=100"`
	IssueDate         *time.Time `json:"issueDate"`
	IsIssued          *bool      `json:"isIssued"`
}
