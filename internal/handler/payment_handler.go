package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/institute-api/internal/dto"
	"github.com/noah-isme/institute-api/internal/models"
	appErrors "github.com/noah-isme/institute-api/pkg/errors"
	"github.com/noah-isme/institute-api/pkg/response"
)

type paymentService interface {
	List(ctx context.Context, studentID string, page, size int) ([]models.PaymentWithStudent, *models.Pagination, error)
	Record(ctx context.Context, req dto.RecordPaymentRequest) (*models.Payment, error)
	Ledger(ctx context.Context, studentID string) (*dto.FeeSummary, error)
	ExportCSV(ctx context.Context, studentID string) ([]byte, error)
	ExportPDF(ctx context.Context, studentID string) ([]byte, error)
}

// PaymentHandler exposes fee endpoints.
type PaymentHandler struct {
	service paymentService
}

func NewPaymentHandler(service paymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// List godoc
// @Summary List fee payments
// @Tags Fees
// @Produce json
// @Security BearerAuth
// @Param studentId query string false "Only this student"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /fees [get]
func (h *PaymentHandler) List(c *gin.Context) {
	payments, pagination, err := h.service.List(c.Request.Context(), c.Query("studentId"), queryInt(c, "page", 1), queryInt(c, "limit", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payments, pagination)
}

// Record godoc
// @Summary Record a fee payment
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.RecordPaymentRequest true "Payment"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /fees [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.service.Record(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, payment)
}

// Ledger godoc
// @Summary Fee ledger of a student
// @Tags Fees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/ledger [get]
func (h *PaymentHandler) Ledger(c *gin.Context) {
	summary, err := h.service.Ledger(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// Export godoc
// @Summary Export fee payments
// @Tags Fees
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv (default) or pdf"
// @Param studentId query string false "Only this student"
// @Success 200 {file} binary
// @Router /fees/export [get]
func (h *PaymentHandler) Export(c *gin.Context) {
	studentID := c.Query("studentId")
	stamp := time.Now().UTC().Format("20060102")
	switch strings.ToLower(c.DefaultQuery("format", "csv")) {
	case "csv":
		out, err := h.service.ExportCSV(c.Request.Context(), studentID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Attachment(c, "text/csv; charset=utf-8", "fees-"+stamp+".csv", out)
	case "pdf":
		out, err := h.service.ExportPDF(c.Request.Context(), studentID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Attachment(c, "application/pdf", "fees-"+stamp+".pdf", out)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
	}
}
