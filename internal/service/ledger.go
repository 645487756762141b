package service

import (
	"math"

	"github.com/noah-isme/institute-api/internal/dto"
	"github.com/noah-isme/institute-api/internal/models"
)

// SummarizeFees derives what a student has paid and still owes. The balance
// never goes negative; any excess is reported as Overpaid.
func SummarizeFees(totalFees float64, payments []models.Payment) dto.FeeSummary {
	var paid float64
	for _, p := range payments {
		paid += p.Amount
	}
	return dto.FeeSummary{
		TotalFees:  totalFees,
		TotalPaid:  paid,
		BalanceDue: math.Max(0, totalFees-paid),
		Overpaid:   math.Max(0, paid-totalFees),
		Available:  true,
	}
}

// UnavailableFeeSummary is shown when payments could not be loaded.
func UnavailableFeeSummary(totalFees float64) dto.FeeSummary {
	return dto.FeeSummary{TotalFees: totalFees}
}

// SummarizeAttendance returns the rounded share of PRESENT marks.
func SummarizeAttendance(records []models.Attendance) dto.AttendanceSummary {
	summary := dto.AttendanceSummary{TotalDays: len(records)}
	for _, r := range records {
		if r.Status == models.AttendancePresent {
			summary.PresentDays++
		}
	}
	if summary.TotalDays > 0 {
		summary.Percent = int(math.Round(float64(summary.PresentDays) / float64(summary.TotalDays) * 100))
	}
	return summary
}
