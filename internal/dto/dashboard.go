package dto

import (
	"time"

	"github.com/noah-isme/institute-api/internal/models"
)

// AdminDashboardResponse is the aggregated admin dashboard payload.
type AdminDashboardResponse struct {
	models.DashboardCounts
	MonthStart  time.Time `json:"monthStart"`
	GeneratedAt time.Time `json:"generatedAt"`
}
