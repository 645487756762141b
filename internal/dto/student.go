package dto

import (
	"time"

	"github.com/noah-isme/institute-api/internal/models"
)

// StudentDetail is the admin view of one student with derived summaries.
type StudentDetail struct {
	models.StudentWithCourse
	Payments    []models.Payment    `json:"payments"`
	Attendance  []models.Attendance `json:"attendance"`
	Certificate *models.Certificate `json:"certificate,omitempty"`
	Fees        FeeSummary          `json:"fees"`
	Summary     AttendanceSummary   `json:"attendanceSummary"`
}

// CreateStudentRequest is the payload for enrolling a student.
type CreateStudentRequest struct {
	Name           string     `json:"name" validate:"required,max=200"`
	FatherName     *string    `json:"fatherName" validate:"omitempty,max=200"`
	MotherName     *string    `json:"motherName" validate:"omitempty,max=200"`
	Phone          *string    `json:"phone" validate:"omitempty,max=20"`
	Email          *string    `json:"email" validate:"omitempty,email"`
	Address        *string    `json:"address"`
	DOB            *time.Time `json:"dob"`
	PhotoURL       *string    `json:"photoUrl" validate:"omitempty,max=500"`
	EnrollmentDate *time.Time `json:"enrollmentDate"`
	CourseID       string     `json:"courseId" validate:"required"`
	BatchID        *string    `json:"batchId"`
	TotalFees      float64    `json:"totalFees" validate:"gte=0"`
}

// UpdateStudentRequest is a partial student update.
type UpdateStudentRequest struct {
	Name                *string    `json:"name" validate:"omitempty,min=1,max=200"`
	FatherName          *string    `json:"fatherName" validate:"omitempty,max=200"`
	MotherName          *string    `json:"motherName" validate:"omitempty,max=200"`
	Phone               *string    `json:"phone" validate:"omitempty,max=20"`
	Email               *string    `json:"email" validate:"omitempty,email"`
	Address             *string    `json:"address"`
	DOB                 *time.Time `json:"dob"`
	PhotoURL            *string    `json:"photoUrl" validate:"omitempty,max=500"`
	EnrollmentDate      *time.Time `json:"enrollmentDate"`
	CourseID            *string    `json:"courseId" validate:"omitempty,min=1"`
	BatchID             *string    `json:"batchId"`
	TotalFees           *float64   `json:"totalFees" validate:"omitempty,gte=0"`
	Status              *string    `json:"status" validate:"omitempty,student_status"`
	IsBlocked           *bool      `json:"isBlocked"`
	VerificationEnabled *bool      `json:"verificationEnabled"`
}
