package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/institute-api/internal/middleware"
	"github.com/noah-isme/institute-api/internal/models"
)

// Handlers bundles every HTTP handler served under the API prefix.
type Handlers struct {
	Auth         *AuthHandler
	Students     *StudentHandler
	Courses      *CourseHandler
	Payments     *PaymentHandler
	Attendance   *AttendanceHandler
	Certificates *CertificateHandler
	Verification *VerificationHandler
	Enquiries    *EnquiryHandler
	Dashboard    *DashboardHandler
	Site         *SiteHandler
	Uploads      *UploadHandler
	Gallery      *GalleryHandler
}

// RouteOptions configures authentication for admin routes.
type RouteOptions struct {
	Tokens    middleware.TokenValidator
	LoginPath string
}

// RegisterRoutes mounts the public and admin API on group.
func RegisterRoutes(group *gin.RouterGroup, h Handlers, opts RouteOptions) {
	group.Use(middleware.WithResponseMeta())

	group.POST("/auth/login", h.Auth.Login)
	group.POST("/enquiry", h.Enquiries.Submit)
	group.GET("/verify/:rollNumber", h.Verification.Verify)
	group.GET("/verify/:rollNumber/certificate.pdf", h.Verification.Certificate)
	group.GET("/content", h.Site.Content)

	public := group.Group("/public")
	public.GET("/courses", h.Courses.PublicList)
	public.GET("/courses/popular", h.Courses.Popular)
	public.GET("/courses/catalog", h.Courses.Catalog)
	public.GET("/courses/:slug", h.Courses.BySlug)
	public.GET("/testimonials", h.Site.PublicTestimonials)
	public.GET("/gallery", h.Gallery.Public)

	admin := group.Group("")
	admin.Use(middleware.JWT(opts.Tokens, opts.LoginPath))
	superAdmin := middleware.RequireRoles(models.RoleSuperAdmin)

	admin.GET("/auth/me", h.Auth.Me)

	admin.GET("/students", h.Students.List)
	admin.POST("/students", h.Students.Create)
	admin.GET("/students/:id", h.Students.Get)
	admin.PUT("/students/:id", h.Students.Update)
	admin.DELETE("/students/:id", superAdmin, h.Students.Delete)
	admin.GET("/students/:id/ledger", h.Payments.Ledger)

	admin.GET("/courses", h.Courses.List)
	admin.POST("/courses", h.Courses.Create)
	admin.GET("/courses/:id", h.Courses.Get)
	admin.PUT("/courses/:id", h.Courses.Update)
	admin.DELETE("/courses/:id", superAdmin, h.Courses.Delete)

	admin.GET("/batches", h.Site.Batches)

	admin.GET("/fees", h.Payments.List)
	admin.POST("/fees", h.Payments.Record)
	admin.GET("/fees/export", h.Payments.Export)

	admin.GET("/attendance", h.Attendance.List)
	admin.POST("/attendance", h.Attendance.BulkMark)

	admin.GET("/certificates", h.Certificates.List)
	admin.POST("/certificates", h.Certificates.Upsert)
	admin.PUT("/certificates/:id", h.Certificates.Update)

	admin.GET("/enquiry", h.Enquiries.List)
	admin.PUT("/enquiry/:id/read", h.Enquiries.MarkRead)

	admin.GET("/testimonials", h.Site.Testimonials)
	admin.POST("/testimonials", h.Site.CreateTestimonial)
	admin.PUT("/testimonials/:id/active", h.Site.SetTestimonialActive)

	admin.POST("/gallery", h.Gallery.Create)
	admin.DELETE("/gallery/:id", h.Gallery.Delete)

	admin.GET("/dashboard", h.Dashboard.Summary)
	admin.PUT("/content", h.Site.UpdateContent)
	admin.POST("/upload", h.Uploads.Upload)
}
