package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/institute-api/internal/dto"
	"github.com/noah-isme/institute-api/internal/middleware"
	"github.com/noah-isme/institute-api/internal/models"
	"github.com/noah-isme/institute-api/pkg/response"
)

type contentService interface {
	All(ctx context.Context) (map[string]string, error)
	Update(ctx context.Context, entries map[string]string) (map[string]string, error)
}

type testimonialService interface {
	List(ctx context.Context, activeOnly bool) ([]models.Testimonial, error)
	Create(ctx context.Context, req dto.CreateTestimonialRequest) (*models.Testimonial, error)
	SetActive(ctx context.Context, id string, req dto.SetActiveRequest) error
}

type batchService interface {
	List(ctx context.Context, courseID string) ([]models.Batch, error)
}

// SiteHandler serves editable site content, testimonials and batches.
type SiteHandler struct {
	content      contentService
	testimonials testimonialService
	batches      batchService
}

func NewSiteHandler(content contentService, testimonials testimonialService, batches batchService) *SiteHandler {
	return &SiteHandler{content: content, testimonials: testimonials, batches: batches}
}

// Content godoc
// @Summary Site content as a key/value map
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /content [get]
func (h *SiteHandler) Content(c *gin.Context) {
	entries, err := h.content.All(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// UpdateContent godoc
// @Summary Upsert site content keys
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body map[string]string true "Key/value pairs"
// @Success 200 {object} response.Envelope
// @Router /content [put]
func (h *SiteHandler) UpdateContent(c *gin.Context) {
	var entries map[string]string
	if !bindJSON(c, &entries) {
		return
	}
	out, err := h.content.Update(c.Request.Context(), entries)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out, nil)
}

// PublicTestimonials godoc
// @Summary Active testimonials
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /public/testimonials [get]
func (h *SiteHandler) PublicTestimonials(c *gin.Context) {
	rows, err := h.testimonials.List(c.Request.Context(), true)
	if err != nil {
		middleware.SetDegraded(c)
		response.JSON(c, http.StatusOK, []models.Testimonial{}, nil, middleware.ExtractMeta(c))
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Testimonials godoc
// @Summary All testimonials
// @Tags Testimonials
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /testimonials [get]
func (h *SiteHandler) Testimonials(c *gin.Context) {
	rows, err := h.testimonials.List(c.Request.Context(), false)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// CreateTestimonial godoc
// @Summary Add testimonial
// @Tags Testimonials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateTestimonialRequest true "Testimonial"
// @Success 201 {object} response.Envelope
// @Router /testimonials [post]
func (h *SiteHandler) CreateTestimonial(c *gin.Context) {
	var req dto.CreateTestimonialRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.testimonials.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, t)
}

// SetTestimonialActive godoc
// @Summary Show or hide a testimonial
// @Tags Testimonials
// @Accept json
// @Security BearerAuth
// @Param id path string true "Testimonial ID"
// @Param payload body dto.SetActiveRequest true "Visibility"
// @Success 204
// @Router /testimonials/{id}/active [put]
func (h *SiteHandler) SetTestimonialActive(c *gin.Context) {
	var req dto.SetActiveRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.testimonials.SetActive(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Batches godoc
// @Summary List batches
// @Tags Batches
// @Produce json
// @Security BearerAuth
// @Param courseId query string false "Only this course"
// @Success 200 {object} response.Envelope
// @Router /batches [get]
func (h *SiteHandler) Batches(c *gin.Context) {
	rows, err := h.batches.List(c.Request.Context(), c.Query("courseId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}
