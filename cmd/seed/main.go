package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/institute-api/internal/models"
	"github.com/noah-isme/institute-api/internal/repository"
	"github.com/noah-isme/institute-api/pkg/config"
	"github.com/noah-isme/institute-api/pkg/database"
	"github.com/noah-isme/institute-api/pkg/logger"
)

const (
	defaultAdminEmail    = "admin@kpci.edu.in"
	defaultAdminPassword = "admin123"
)

type seedCourse struct {
	Name, Slug, Category, Duration string
	Fees                           float64
	Description, Eligibility       string
	Syllabus                       string
}

var courses = []seedCourse{
	{"DCA (Diploma in Computer Applications)", "dca", "Computer Diploma", "6 Months", 4500,
		"Comprehensive computer diploma covering MS Office, Internet, and basic programming.", "10th Pass",
		"Computer Fundamentals\nMS Word\nMS Excel\nMS PowerPoint\nInternet & Email\nTally Basics"},
	{"ADCA (Advanced Diploma in Computer Applications)", "adca", "Computer Diploma", "12 Months", 8000,
		"Advanced diploma covering programming, web design, and accounting software.", "12th Pass",
		"Computer Fundamentals\nAdvanced MS Office\nTally with GST\nHTML & CSS\nBasic Programming\nProject Work"},
	{"Tally with GST", "tally-with-gst", "Accounting", "3 Months", 3000,
		"Complete Tally ERP with GST filing and accounting management.", "10th Pass",
		"Tally ERP 9 Basics\nGST Fundamentals\nInventory Management\nPayroll Management\nReports & Filing"},
	{"MS Office Expert", "ms-office-expert", "Computer Basics", "2 Months", 2000,
		"Master Microsoft Office suite including Word, Excel, and PowerPoint.", "Any",
		"MS Word Advanced\nMS Excel with Formulas\nMS PowerPoint\nMS Access Basics"},
	{"Web Design & Development", "web-design", "Programming", "6 Months", 7000,
		"Learn HTML, CSS, JavaScript and build modern websites.", "12th Pass",
		"HTML5\nCSS3\nJavaScript\nResponsive Design\nBootstrap\nProject Work"},
	{"Graphic Design", "graphic-design", "Design", "4 Months", 5000,
		"Learn Photoshop, Corel Draw and graphic design principles.", "10th Pass",
		"Corel Draw\nAdobe Photoshop\nIllustrator Basics\nPrint & Digital Design\nPortfolio Project"},
	{"Computer Hardware & Networking", "hardware-networking", "Technical", "6 Months", 6000,
		"Learn computer hardware assembly, troubleshooting and networking.", "10th Pass",
		"Computer Hardware\nAssembly & Disassembly\nOS Installation\nNetworking Basics\nTroubleshooting"},
	{"Basic Computer Course", "basic-computer", "Computer Basics", "1 Month", 1000,
		"Introduction to computers for absolute beginners.", "Any",
		"Computer Basics\nMS Paint\nWordpad\nInternet Basics\nEmail"},
}

type seedBatch struct {
	CourseSlug, Name, Timing string
	Capacity                 int
	Start, End               string
}

var batches = []seedBatch{
	{"dca", "DCA Morning Batch (Jan 2024)", "8:00 AM - 10:00 AM", 20, "2024-01-15", "2024-07-15"},
	{"adca", "ADCA Evening Batch (Jan 2024)", "5:00 PM - 7:00 PM", 15, "2024-01-15", "2025-01-15"},
}

var testimonials = []models.Testimonial{
	{StudentName: "Rajesh Kumar", Course: ptr("DCA"), Message: "KPCI changed my life! I got a job as a data entry operator within a month of completing the DCA course. The teachers are very supportive and the practical training is excellent."},
	{StudentName: "Priya Sharma", Course: ptr("Tally with GST"), Message: "The Tally with GST course was very practical and job-oriented. I can now handle all accounting work confidently. Thank you KPCI!"},
	{StudentName: "Amit Verma", Course: ptr("ADCA"), Message: "Best computer institute in the area. The faculty is experienced and always available for doubt clearing. The certificate is recognized everywhere."},
}

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := seedAdmin(ctx, repository.NewAdminUserRepository(db), logr); err != nil {
		logr.Fatal("seed admin", zap.Error(err))
	}
	courseRepo := repository.NewCourseRepository(db)
	ids, err := seedCourses(ctx, courseRepo, logr)
	if err != nil {
		logr.Fatal("seed courses", zap.Error(err))
	}
	if err := seedBatches(ctx, repository.NewBatchRepository(db), ids, logr); err != nil {
		logr.Fatal("seed batches", zap.Error(err))
	}
	if err := seedTestimonials(ctx, repository.NewTestimonialRepository(db), logr); err != nil {
		logr.Fatal("seed testimonials", zap.Error(err))
	}
	logr.Info("database seeded")
}

func seedAdmin(ctx context.Context, repo *repository.AdminUserRepository, logr *zap.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	created, err := repo.EnsureExists(ctx, &models.AdminUser{
		Email:        defaultAdminEmail,
		PasswordHash: string(hash),
		Name:         "Admin User",
		Role:         models.RoleSuperAdmin,
		Active:       true,
	})
	if err != nil {
		return err
	}
	logr.Info("admin user", zap.String("email", defaultAdminEmail), zap.Bool("created", created))
	return nil
}

// seedCourses inserts missing catalog entries and returns course ids by slug.
func seedCourses(ctx context.Context, repo *repository.CourseRepository, logr *zap.Logger) (map[string]string, error) {
	ids := make(map[string]string, len(courses))
	created := 0
	for _, c := range courses {
		existing, err := repo.FindBySlug(ctx, c.Slug)
		if err == nil {
			ids[c.Slug] = existing.ID
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		course := &models.Course{
			Name:        c.Name,
			Slug:        c.Slug,
			Category:    c.Category,
			Duration:    c.Duration,
			Fees:        c.Fees,
			Description: ptr(c.Description),
			Eligibility: ptr(c.Eligibility),
			Syllabus:    ptr(c.Syllabus),
			IsActive:    true,
		}
		if err := repo.Create(ctx, course); err != nil {
			return nil, err
		}
		ids[c.Slug] = course.ID
		created++
	}
	logr.Info("courses", zap.Int("created", created), zap.Int("total", len(courses)))
	return ids, nil
}

func seedBatches(ctx context.Context, repo *repository.BatchRepository, courseIDs map[string]string, logr *zap.Logger) error {
	for _, b := range batches {
		courseID, ok := courseIDs[b.CourseSlug]
		if !ok {
			continue
		}
		start, _ := time.Parse("2006-01-02", b.Start)
		end, _ := time.Parse("2006-01-02", b.End)
		created, err := repo.Create(ctx, &models.Batch{
			CourseID:  courseID,
			Name:      b.Name,
			Timing:    ptr(b.Timing),
			Capacity:  b.Capacity,
			StartDate: &start,
			EndDate:   &end,
		})
		if err != nil {
			return err
		}
		logr.Info("batch", zap.String("name", b.Name), zap.Bool("created", created))
	}
	return nil
}

// seedTestimonials only writes when the table is empty so reruns do not duplicate.
func seedTestimonials(ctx context.Context, repo *repository.TestimonialRepository, logr *zap.Logger) error {
	existing, err := repo.List(ctx, false)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logr.Info("testimonials already present", zap.Int("count", len(existing)))
		return nil
	}
	for i := range testimonials {
		t := testimonials[i]
		t.IsActive = true
		if err := repo.Create(ctx, &t); err != nil {
			return err
		}
	}
	logr.Info("testimonials", zap.Int("created", len(testimonials)))
	return nil
}

func ptr(v string) *string { return &v }
