package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/institute-api/internal/dto"
	"github.com/noah-isme/institute-api/pkg/response"
)

type verificationService interface {
	Verify(ctx context.Context, rollNumber string) (*dto.VerificationResult, error)
}

type certificatePDFRenderer interface {
	RenderPDF(ctx context.Context, rollNumber string) ([]byte, string, error)
}

// VerificationHandler serves the public roll number lookup.
type VerificationHandler struct {
	verifier     verificationService
	certificates certificatePDFRenderer
}

// NewVerificationHandler constructs the handler.
func NewVerificationHandler(verifier verificationService, certificates certificatePDFRenderer) *VerificationHandler {
	return &VerificationHandler{verifier: verifier, certificates: certificates}
}

// Verify godoc
// @Summary Verify a student by roll number
// @Description Blocked students and students with verification disabled return 403 without data.
// @Tags Public
// @Produce json
// @Param rollNumber path string true "Roll number"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /verify/{rollNumber} [get]
func (h *VerificationHandler) Verify(c *gin.Context) {
	result, err := h.verifier.Verify(c.Request.Context(), c.Param("rollNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Certificate godoc
// @Summary Download the issued certificate of a verifiable student
// @Tags Public
// @Produce application/pdf
// @Param rollNumber path string true "Roll number"
// @Success 200 {file} binary
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /verify/{rollNumber}/certificate.pdf [get]
func (h *VerificationHandler) Certificate(c *gin.Context) {
	pdf, filename, err := h.certificates.RenderPDF(c.Request.Context(), c.Param("rollNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, "application/pdf", filename, pdf)
}
