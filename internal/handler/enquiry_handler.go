package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/institute-api/internal/dto"
	"github.com/noah-isme/institute-api/internal/models"
	"github.com/noah-isme/institute-api/pkg/response"
)

type enquiryService interface {
	Submit(ctx context.Context, req dto.CreateEnquiryRequest) (*models.Enquiry, error)
	List(ctx context.Context, unreadOnly bool, page, size int) ([]models.Enquiry, *models.Pagination, error)
	MarkRead(ctx context.Context, id string) error
}

// EnquiryHandler accepts and lists admission enquiries.
type EnquiryHandler struct {
	service enquiryService
}

func NewEnquiryHandler(service enquiryService) *EnquiryHandler {
	return &EnquiryHandler{service: service}
}

// Submit godoc
// @Summary Submit an admission enquiry
// @Tags Public
// @Accept json
// @Produce json
// @Param payload body dto.CreateEnquiryRequest true "Enquiry"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /enquiry [post]
func (h *EnquiryHandler) Submit(c *gin.Context) {
	var req dto.CreateEnquiryRequest
	if !bindJSON(c, &req) {
		return
	}
	enquiry, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enquiry)
}

// List godoc
// @Summary List enquiries
// @Tags Enquiries
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Only unread"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /enquiry [get]
func (h *EnquiryHandler) List(c *gin.Context) {
	rows, pagination, err := h.service.List(c.Request.Context(), queryBool(c, "unread"), queryInt(c, "page", 1), queryInt(c, "limit", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, pagination)
}

// MarkRead godoc
// @Summary Mark enquiry as read
// @Tags Enquiries
// @Security BearerAuth
// @Param id path string true "Enquiry ID"
// @Success 204
// @Router /enquiry/{id}/read [put]
func (h *EnquiryHandler) MarkRead(c *gin.Context) {
	if err := h.service.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
