package service

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/institute-api/internal/models"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// NewValidator returns a validator with the domain tags registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("payment_mode", func(fl validator.FieldLevel) bool {
		return validPaymentMode(models.PaymentMode(fl.Field().String()))
	})
	_ = v.RegisterValidation("student_status", func(fl validator.FieldLevel) bool {
		return validStudentStatus(models.StudentStatus(fl.Field().String()))
	})
	_ = v.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		return validAttendanceStatus(models.AttendanceStatus(fl.Field().String()))
	})
	return v
}

func validPaymentMode(m models.PaymentMode) bool {
	switch m {
	case models.PaymentCash, models.PaymentOnline, models.PaymentCheque:
		return true
	}
	return false
}

func validStudentStatus(s models.StudentStatus) bool {
	switch s {
	case models.StudentActive, models.StudentCompleted, models.StudentDropped:
		return true
	}
	return false
}

func validAttendanceStatus(s models.AttendanceStatus) bool {
	switch s {
	case models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLeave:
		return true
	}
	return false
}

// optional trims s and returns nil when nothing is left.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// optionalPtr applies optional to a possibly nil pointer.
func optionalPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return optional(*s)
}

// clampPage defaults a missing page to 1 and an unset size to def, capping it at limit.
func clampPage(page, size, def, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = def
	}
	if size > limit {
		size = limit
	}
	return page, size
}
