package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/institute-api/internal/service"
	appErrors "github.com/noah-isme/institute-api/pkg/errors"
	"github.com/noah-isme/institute-api/pkg/response"
)

type uploadService interface {
	Upload(ctx context.Context, filename string, body io.Reader) (*service.UploadResult, error)
	MaxBytes() int64
}

// UploadHandler accepts multipart image uploads.
type UploadHandler struct {
	service uploadService
}

func NewUploadHandler(service uploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Upload godoc
// @Summary Upload an image
// @Description Accepts JPEG, PNG, WebP or GIF in the multipart field "file".
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 501 {object} response.Envelope
// @Router /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	// Multipart framing adds overhead beyond the file itself.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.service.MaxBytes()+1<<20)
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Validation(err, "multipart field \"file\" is required"))
		return
	}
	defer file.Close()

	result, err := h.service.Upload(c.Request.Context(), header.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
