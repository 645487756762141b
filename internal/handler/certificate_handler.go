package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/institute-api/internal/dto"
	"github.com/noah-isme/institute-api/internal/models"
	"github.com/noah-isme/institute-api/pkg/response"
)

type certificateService interface {
	List(ctx context.Context) ([]models.CertificateWithStudent, error)
	Upsert(ctx context.Context, req dto.UpsertCertificateRequest) (*models.Certificate, error)
	Update(ctx context.Context, id string, req dto.UpdateCertificateRequest) (*models.Certificate, error)
}

// CertificateHandler exposes certificate administration.
type CertificateHandler struct {
	service certificateService
}

func NewCertificateHandler(service certificateService) *CertificateHandler {
	return &CertificateHandler{service: service}
}

// List godoc
// @Summary List certificates
// @Tags Certificates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /certificates [get]
func (h *CertificateHandler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Upsert godoc
// @Summary Create or replace the certificate of a student
// @Tags Certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.UpsertCertificateRequest true "Certificate"
// @Success 201 {object} response.Envelope
// @Router /certificates [post]
func (h *CertificateHandler) Upsert(c *gin.Context) {
	var req dto.UpsertCertificateRequest
	if !bindJSON(c, &req) {
		return
	}
	cert, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cert)
}

// Update godoc
// @Summary Update certificate
// @Tags Certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Certificate ID"
// @Param payload body dto.UpdateCertificateRequest true "Certificate"
// @Success 200 {object} response.Envelope
// @Router /certificates/{id} [put]
func (h *CertificateHandler) Update(c *gin.Context) {
	var req dto.UpdateCertificateRequest
	if !bindJSON(c, &req) {
		return
	}
	cert, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cert, nil)
}
