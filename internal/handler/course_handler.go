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

type courseService interface {
	ListActive(ctx context.Context) ([]models.Course, error)
	Popular(ctx context.Context, limit int) ([]models.Course, error)
	Catalog(ctx context.Context) ([]dto.CatalogGroup, error)
	GetBySlug(ctx context.Context, slug string) (*dto.CourseDetail, error)
	ListAll(ctx context.Context) ([]models.Course, error)
	Get(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error)
	Update(ctx context.Context, id string, req dto.UpdateCourseRequest) (*models.Course, error)
	Delete(ctx context.Context, id string) error
}

// CourseHandler serves the public catalog and course administration.
// Public listings degrade to an empty list when the store is unavailable.
type CourseHandler struct {
	service courseService
	logger  *zap.Logger
}

func NewCourseHandler(service courseService, logger *zap.Logger) *CourseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseHandler{service: service, logger: logger}
}

// PublicList godoc
// @Summary Active courses ordered by name
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /public/courses [get]
func (h *CourseHandler) PublicList(c *gin.Context) {
	courses, err := h.service.ListActive(c.Request.Context())
	h.degradable(c, courses, err, []models.Course{})
}

// Popular godoc
// @Summary Homepage course highlights
// @Tags Public
// @Produce json
// @Param limit query int false "Maximum courses (default 6)"
// @Success 200 {object} response.Envelope
// @Router /public/courses/popular [get]
func (h *CourseHandler) Popular(c *gin.Context) {
	courses, err := h.service.Popular(c.Request.Context(), queryInt(c, "limit", 0))
	h.degradable(c, courses, err, []models.Course{})
}

// Catalog godoc
// @Summary Active courses grouped by category
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /public/courses/catalog [get]
func (h *CourseHandler) Catalog(c *gin.Context) {
	groups, err := h.service.Catalog(c.Request.Context())
	h.degradable(c, groups, err, []dto.CatalogGroup{})
}

// BySlug godoc
// @Summary Course detail with syllabus modules
// @Tags Public
// @Produce json
// @Param slug path string true "Course slug"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /public/courses/{slug} [get]
func (h *CourseHandler) BySlug(c *gin.Context) {
	detail, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// List godoc
// @Summary All courses
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// Get godoc
// @Summary Course by id
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateCourseRequest true "Course"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CreateCourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Update godoc
// @Summary Update course
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param payload body dto.UpdateCourseRequest true "Course"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	var req dto.UpdateCourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Delete godoc
// @Summary Delete course without enrolled students
// @Tags Courses
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *CourseHandler) degradable(c *gin.Context, data interface{}, err error, empty interface{}) {
	if err != nil {
		h.logger.Warn("public course listing degraded", zap.String("route", c.FullPath()), zap.Error(err))
		middleware.SetDegraded(c)
		response.JSON(c, http.StatusOK, empty, nil, middleware.ExtractMeta(c))
		return
	}
	response.JSON(c, http.StatusOK, data, nil)
}
