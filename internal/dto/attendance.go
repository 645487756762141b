package dto

// AttendanceMark is one entry of a bulk attendance submission. Date accepts
// YYYY-MM-DD or RFC3339.
type AttendanceMark struct {
	StudentID string `json:"studentId"`
	Date      string `json:"date"`
	Status    string `json:"status"`
}

// BulkAttendanceRequest wraps a batch of marks.
type BulkAttendanceRequest struct {
	Records []AttendanceMark `json:"records"`
}

// BulkAttendanceResult reports how many marks were written.
type BulkAttendanceResult struct {
	Saved int `json:"saved"`
}
