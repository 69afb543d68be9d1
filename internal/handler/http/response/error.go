package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/absentee"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/auth"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/notification"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrUsernameTaken):
		Conflict(w, "Username is already taken")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrTemplateNotFound):
		NotFound(w, "Monthly template not found, upload it first")
	case errors.Is(err, attendance.ErrMissingColumn):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrEmptySheet):
		BadRequest(w, "Worksheet is empty", nil)
	case errors.Is(err, attendance.ErrUnsupportedFile):
		BadRequest(w, "Only xlsx and xls files are supported", nil)
	case errors.Is(err, attendance.ErrInvalidDate):
		BadRequest(w, "Date must be in dd.mm.yyyy format", nil)

	// Absentee domain errors
	case errors.Is(err, absentee.ErrReportNotFound):
		NotFound(w, "Report not found")
	case errors.Is(err, absentee.ErrInvalidBucket):
		BadRequest(w, "Bucket must be one of 3, 6, 10, new", nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrSenderUnavailable):
		ServiceUnavailable(w, "Notification sender is not configured")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
