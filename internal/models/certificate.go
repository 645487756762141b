package models

import "time"

// Certificate records issuance state; at most one per student.
type Certificate struct {
	ID                string     `db:"id" json:"id"`
	StudentID         string     `db:"student_id" json:"studentId"`
	CertificateNumber *string    `db:"certificate_number" json:"certificateNumber,omitempty"`
	IssueDate         *time.Time `db:"issue_date" json:"issueDate,omitempty"`
	IsIssued          bool       `db:"is_issued" json:"isIssued"`
	CreatedAt         time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updatedAt"`
}

// CertificateWithStudent adds student and course identity for admin listings.
type CertificateWithStudent struct {
	Certificate
	StudentName string `db:"student_name" json:"studentName"`
	RollNumber  string `db:"roll_number" json:"rollNumber"`
	CourseName  string `db:"course_name" json:"courseName"`
}
