package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/institute-api/internal/dto"
	"github.com/noah-isme/institute-api/internal/models"
	"github.com/noah-isme/institute-api/pkg/response"
)

type attendanceService interface {
	List(ctx context.Context, studentID string, page, size int) ([]models.AttendanceWithStudent, *models.Pagination, error)
	BulkMark(ctx context.Context, req dto.BulkAttendanceRequest) (*dto.BulkAttendanceResult, error)
}

// AttendanceHandler exposes attendance endpoints.
type AttendanceHandler struct {
	service attendanceService
}

func NewAttendanceHandler(service attendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// List godoc
// @Summary List attendance marks
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param studentId query string false "Only this student"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	rows, pagination, err := h.service.List(c.Request.Context(), c.Query("studentId"), queryInt(c, "page", 1), queryInt(c, "limit", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, pagination)
}

// BulkMark godoc
// @Summary Mark attendance for many students
// @Description All records are validated first; one invalid record rejects the batch.
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.BulkAttendanceRequest true "Records"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) BulkMark(c *gin.Context) {
	var req dto.BulkAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.service.BulkMark(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
