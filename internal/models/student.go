package models

import "time"

// StudentStatus tracks where a student is in their course.
type StudentStatus string

const (
	StudentActive    StudentStatus = "ACTIVE"
	StudentCompleted StudentStatus = "COMPLETED"
	StudentDropped   StudentStatus = "DROPPED"
)

// Student represents an enrolled learner.
type Student struct {
	ID                  string        `db:"id" json:"id"`
	RollNumber          string        `db:"roll_number" json:"rollNumber"`
	Name                string        `db:"name" json:"name"`
	FatherName          *string       `db:"father_name" json:"fatherName,omitempty"`
	MotherName          *string       `db:"mother_name" json:"motherName,omitempty"`
	Phone               *string       `db:"phone" json:"phone,omitempty"`
	Email               *string       `db:"email" json:"email,omitempty"`
	Address             *string       `db:"address" json:"address,omitempty"`
	DOB                 *time.Time    `db:"dob" json:"dob,omitempty"`
	PhotoURL            *string       `db:"photo_url" json:"photoUrl,omitempty"`
	EnrollmentDate      time.Time     `db:"enrollment_date" json:"enrollmentDate"`
	CourseID            string        `db:"course_id" json:"courseId"`
	BatchID             *string       `db:"batch_id" json:"batchId,omitempty"`
	TotalFees           float64       `db:"total_fees" json:"totalFees"`
	Status              StudentStatus `db:"status" json:"status"`
	IsBlocked           bool          `db:"is_blocked" json:"isBlocked"`
	VerificationEnabled bool          `db:"verification_enabled" json:"verificationEnabled"`
	CreatedAt           time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time     `db:"updated_at" json:"updatedAt"`
}

// StudentWithCourse joins the course and batch names onto a student row.
type StudentWithCourse struct {
	Student
	CourseName     string  `db:"course_name" json:"courseName"`
	CourseDuration string  `db:"course_duration" json:"courseDuration"`
	BatchName      *string `db:"batch_name" json:"batchName,omitempty"`
	BatchTiming    *string `db:"batch_timing" json:"batchTiming,omitempty"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search   string
	CourseID string
	Status   StudentStatus
	Page     int
	PageSize int
}
