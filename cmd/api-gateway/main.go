package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/institute-api/api/swagger"
	"github.com/noah-isme/institute-api/internal/handler"
	internalmiddleware "github.com/noah-isme/institute-api/internal/middleware"
	"github.com/noah-isme/institute-api/internal/repository"
	"github.com/noah-isme/institute-api/internal/service"
	"github.com/noah-isme/institute-api/pkg/cache"
	"github.com/noah-isme/institute-api/pkg/config"
	"github.com/noah-isme/institute-api/pkg/database"
	"github.com/noah-isme/institute-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/institute-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/institute-api/pkg/middleware/requestid"
	"github.com/noah-isme/institute-api/pkg/storage"
)

// @title Institute API
// @version 1.0.0
// @description Administration and public verification API for a computer training institute.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Dashboard.CacheEnabled {
		redisClient, err = cache.NewRedis(context.Background(), cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	metricsSvc := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled && cacheRepo.Available())

	adminRepo := repository.NewAdminUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	certificateRepo := repository.NewCertificateRepository(db)
	enquiryRepo := repository.NewEnquiryRepository(db)
	testimonialRepo := repository.NewTestimonialRepository(db)
	contentRepo := repository.NewContentRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	validate := service.NewValidator()

	authSvc := service.NewAuthService(adminRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	rolls := service.NewRollNumberAllocator(studentRepo, cfg.Institute.RollPrefix, cfg.Institute.MaxRollAttempts)
	studentSvc := service.NewStudentService(service.StudentDeps{
		Students:     studentRepo,
		Courses:      courseRepo,
		Payments:     paymentRepo,
		Attendance:   attendanceRepo,
		Certificates: certificateRepo,
		Rolls:        rolls,
		Cache:        cacheSvc,
	}, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, cacheSvc, validate, logr)
	paymentSvc := service.NewPaymentService(paymentRepo, studentRepo, cacheSvc, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, studentRepo, cacheSvc, logr)
	verificationSvc := service.NewVerificationService(service.VerificationDeps{
		Students:     studentRepo,
		Payments:     paymentRepo,
		Attendance:   attendanceRepo,
		Certificates: certificateRepo,
		Metrics:      metricsSvc,
	}, logr)
	certificateSvc := service.NewCertificateService(certificateRepo, studentRepo, verificationSvc, cacheSvc, service.CertificateConfig{
		InstituteName: cfg.Institute.Name,
		PublicBaseURL: cfg.Institute.PublicBaseURL,
	}, validate, logr)
	enquirySvc := service.NewEnquiryService(enquiryRepo, cacheSvc, metricsSvc, validate, logr)
	dashboardSvc := service.NewDashboardService(dashboardRepo, cacheSvc, cfg.Dashboard.CacheTTL, logr)
	contentSvc := service.NewContentService(contentRepo, logr)
	testimonialSvc := service.NewTestimonialService(testimonialRepo, validate, logr)
	batchSvc := service.NewBatchService(batchRepo)
	gallerySvc := service.NewGalleryService(galleryRepo, validate, logr)

	uploader, localDir := newUploader(cfg, logr)
	uploadSvc := service.NewUploadService(uploader, cfg.Uploads.MaxFileSizeBytes, metricsSvc, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	metricsHandler := handler.NewMetricsHandler(metricsSvc, dashboardRepo)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if localDir != "" {
		r.Static(cfg.Uploads.PublicPath, localDir)
	}

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handler.Handlers{
		Auth:         handler.NewAuthHandler(authSvc),
		Students:     handler.NewStudentHandler(studentSvc),
		Courses:      handler.NewCourseHandler(courseSvc, logr),
		Payments:     handler.NewPaymentHandler(paymentSvc),
		Attendance:   handler.NewAttendanceHandler(attendanceSvc),
		Certificates: handler.NewCertificateHandler(certificateSvc),
		Verification: handler.NewVerificationHandler(verificationSvc, certificateSvc),
		Enquiries:    handler.NewEnquiryHandler(enquirySvc),
		Dashboard:    handler.NewDashboardHandler(dashboardSvc),
		Site:         handler.NewSiteHandler(contentSvc, testimonialSvc, batchSvc),
		Uploads:      handler.NewUploadHandler(uploadSvc),
		Gallery:      handler.NewGalleryHandler(gallerySvc, logr),
	}, handler.RouteOptions{Tokens: authSvc, LoginPath: cfg.Institute.LoginPath})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "cache", cacheSvc.Enabled(), "uploads", backendName(uploader))
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// newUploader picks Cloudinary when configured and falls back to the local
// filesystem outside production. The returned directory is non-empty only for
// local storage so the caller can serve it statically.
func newUploader(cfg *config.Config, logr *zap.Logger) (storage.Uploader, string) {
	if cfg.Uploads.CloudinaryEnabled() {
		return storage.NewCloudinaryUploader(
			cfg.Uploads.CloudinaryCloudName,
			cfg.Uploads.CloudinaryUploadPreset,
			cfg.Uploads.Folder,
			cfg.Uploads.Timeout,
		), ""
	}
	if cfg.Env == config.EnvProduction {
		logr.Warn("no upload backend configured, uploads disabled")
		return nil, ""
	}
	local, err := storage.NewLocalStorage(cfg.Uploads.LocalDir, cfg.Uploads.PublicPath)
	if err != nil {
		logr.Warn("local upload storage unavailable", zap.Error(err))
		return nil, ""
	}
	cfg.Uploads.PublicPath = local.PublicPath()
	return local, local.Dir()
}

func backendName(u storage.Uploader) string {
	if u == nil {
		return "none"
	}
	return u.Backend()
}
