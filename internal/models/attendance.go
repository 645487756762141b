package models

import "time"

// AttendanceStatus is the mark recorded for one student on one day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLeave   AttendanceStatus = "LEAVE"
)

// Attendance is a daily mark, unique per student and date.
type Attendance struct {
	ID        string           `db:"id" json:"id"`
	StudentID string           `db:"student_id" json:"studentId"`
	Date      time.Time        `db:"date" json:"date"`
	Status    AttendanceStatus `db:"status" json:"status"`
	CreatedAt time.Time        `db:"created_at" json:"createdAt"`
}

// AttendanceWithStudent adds student identity for attendance listings.
type AttendanceWithStudent struct {
	Attendance
	StudentName string `db:"student_name" json:"studentName"`
	RollNumber  string `db:"roll_number" json:"rollNumber"`
}
