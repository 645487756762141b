package dto

import "time"

// VerificationResult is the public view of a verifiable student record.
type VerificationResult struct {
	Student     VerifiedStudent     `json:"student"`
	Course      VerifiedCourse      `json:"course"`
	Batch       *VerifiedBatch      `json:"batch,omitempty"`
	Certificate VerifiedCertificate `json:"certificate"`
	Fees        FeeSummary          `json:"fees"`
	Attendance  AttendanceSummary   `json:"attendance"`
}

// VerifiedStudent carries identity fields safe to disclose.
type VerifiedStudent struct {
	Name           string    `json:"name"`
	FatherName     *string   `json:"fatherName,omitempty"`
	RollNumber     string    `json:"rollNumber"`
	PhotoURL       *string   `json:"photoUrl,omitempty"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
	Status         string    `json:"status"`
}

// VerifiedCourse names the enrolled course.
type VerifiedCourse struct {
	Name     string `json:"name"`
	Duration string `json:"duration"`
}

// VerifiedBatch names the enrolled batch.
type VerifiedBatch struct {
	Name   string  `json:"name"`
	Timing *string `json:"timing,omitempty"`
}

// VerifiedCertificate reports issuance state.
type VerifiedCertificate struct {
	IsIssued          bool       `json:"isIssued"`
	CertificateNumber *string    `json:"certificateNumber,omitempty"`
	IssueDate         *time.Time `json:"issueDate,omitempty"`
}
