package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/institute-api/internal/dto"
	"github.com/noah-isme/institute-api/internal/middleware"
	"github.com/noah-isme/institute-api/internal/models"
	"github.com/noah-isme/institute-api/pkg/response"
)

type galleryService interface {
	List(ctx context.Context) (*dto.GalleryView, error)
	Create(ctx context.Context, req dto.CreateGalleryImageRequest) (*models.GalleryImage, error)
	Delete(ctx context.Context, id string) error
}

// GalleryHandler serves the photo gallery.
type GalleryHandler struct {
	service galleryService
	logger  *zap.Logger
}

func NewGalleryHandler(service galleryService, logger *zap.Logger) *GalleryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GalleryHandler{service: service, logger: logger}
}

// Public godoc
// @Summary Gallery images and categories
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /public/gallery [get]
func (h *GalleryHandler) Public(c *gin.Context) {
	view, err := h.service.List(c.Request.Context())
	if err != nil {
		h.logger.Warn("public gallery degraded", zap.Error(err))
		middleware.SetDegraded(c)
		empty := dto.GalleryView{Categories: []string{}, Images: []models.GalleryImage{}}
		response.JSON(c, http.StatusOK, empty, nil, middleware.ExtractMeta(c))
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Create godoc
// @Summary Add an image to the gallery
// @Tags Gallery
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateGalleryImageRequest true "Image"
// @Success 201 {object} response.Envelope
// @Router /gallery [post]
func (h *GalleryHandler) Create(c *gin.Context) {
	var req dto.CreateGalleryImageRequest
	if !bindJSON(c, &req) {
		return
	}
	image, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, image)
}

// Delete godoc
// @Summary Remove a gallery image
// @Tags Gallery
// @Security BearerAuth
// @Param id path string true "Image ID"
// @Success 204
// @Router /gallery/{id} [delete]
func (h *GalleryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
