package dto

// FeeSummary is the derived fee position of a student.
type FeeSummary struct {
	TotalFees  float64 `json:"totalFees"`
	TotalPaid  float64 `json:"totalPaid"`
	BalanceDue float64 `json:"balanceDue"`
	Overpaid   float64 `json:"-"`
	Available  bool    `json:"available"`
}

// AttendanceSummary is the derived attendance position of a student.
type AttendanceSummary struct {
	TotalDays   int `json:"totalDays"`
	PresentDays int `json:"presentDays"`
	Percent     int `json:"percent"`
}
