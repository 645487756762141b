package models

// DashboardCounts holds the aggregate figures shown on the admin dashboard.
type DashboardCounts struct {
	TotalStudents      int     `db:"total_students" json:"totalStudents"`
	ActiveStudents     int     `db:"active_students" json:"activeStudents"`
	CompletedStudents  int     `db:"completed_students" json:"completedStudents"`
	ActiveCourses      int     `db:"active_courses" json:"activeCourses"`
	MonthFees          float64 `db:"month_fees" json:"monthFees"`
	IssuedCertificates int     `db:"issued_certificates" json:"issuedCertificates"`
	UnreadEnquiries    int     `db:"unread_enquiries" json:"unreadEnquiries"`
}
