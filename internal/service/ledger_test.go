package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/institute-api/internal/models"
)

func TestSummarizeFees(t *testing.T) {
	summary := SummarizeFees(8000, []models.Payment{{Amount: 3000}, {Amount: 2000}})
	assert.Equal(t, 5000.0, summary.TotalPaid)
	assert.Equal(t, 3000.0, summary.BalanceDue)
	assert.Zero(t, summary.Overpaid)
	assert.True(t, summary.Available)
}

func TestSummarizeFeesClampsOverpayment(t *testing.T) {
	summary := SummarizeFees(1000, []models.Payment{{Amount: 1500}})
	assert.Zero(t, summary.BalanceDue)
	assert.Equal(t, 500.0, summary.Overpaid)
}

func TestUnavailableFeeSummary(t *testing.T) {
	summary := UnavailableFeeSummary(8000)
	assert.False(t, summary.Available)
	assert.Equal(t, 8000.0, summary.TotalFees)
	assert.Zero(t, summary.TotalPaid)
}

func TestSummarizeAttendance(t *testing.T) {
	var records []models.Attendance
	for i := 0; i < 18; i++ {
		records = append(records, models.Attendance{Status: models.AttendancePresent})
	}
	records = append(records, models.Attendance{Status: models.AttendanceAbsent}, models.Attendance{Status: models.AttendanceLeave})

	summary := SummarizeAttendance(records)
	assert.Equal(t, 20, summary.TotalDays)
	assert.Equal(t, 18, summary.PresentDays)
	assert.Equal(t, 90, summary.Percent)
}

func TestSummarizeAttendanceRounds(t *testing.T) {
	records := []models.Attendance{
		{Status: models.AttendancePresent},
		{Status: models.AttendancePresent},
		{Status: models.AttendanceAbsent},
	}
	assert.Equal(t, 67, SummarizeAttendance(records).Percent)
	assert.Zero(t, SummarizeAttendance(nil).Percent)
}

func TestSummarizeAttendanceIsMonotonic(t *testing.T) {
	starts := map[string][]models.Attendance{
		"empty":      nil,
		"all absent": {{Status: models.AttendanceAbsent}, {Status: models.AttendanceAbsent}},
		"mixed": {
			{Status: models.AttendancePresent},
			{Status: models.AttendanceLeave},
			{Status: models.AttendanceAbsent},
		},
		"all present": {{Status: models.AttendancePresent}, {Status: models.AttendancePresent}},
	}

	for name, start := range starts {
		t.Run(name, func(t *testing.T) {
			records := append([]models.Attendance(nil), start...)
			for i := 0; i < 10; i++ {
				before := SummarizeAttendance(records).Percent
				records = append(records, models.Attendance{Status: models.AttendancePresent})
				assert.GreaterOrEqual(t, SummarizeAttendance(records).Percent, before, "present mark %d lowered percent", i)
			}

			for _, status := range []models.AttendanceStatus{models.AttendanceAbsent, models.AttendanceLeave} {
				records := append([]models.Attendance(nil), start...)
				for i := 0; i < 10; i++ {
					before := SummarizeAttendance(records).Percent
					records = append(records, models.Attendance{Status: status})
					assert.LessOrEqual(t, SummarizeAttendance(records).Percent, before, "%s mark %d raised percent", status, i)
				}
			}
		})
	}
}
