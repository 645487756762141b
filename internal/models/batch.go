package models

import "time"

// Batch is a scheduled cohort of a course.
type Batch struct {
	ID         string     `db:"id" json:"id"`
	CourseID   string     `db:"course_id" json:"courseId"`
	CourseName string     `db:"course_name" json:"courseName,omitempty"`
	Name       string     `db:"name" json:"name"`
	Timing     *string    `db:"timing" json:"timing,omitempty"`
	Capacity   int        `db:"capacity" json:"capacity"`
	StartDate  *time.Time `db:"start_date" json:"startDate,omitempty"`
	EndDate    *time.Time `db:"end_date" json:"endDate,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
}
