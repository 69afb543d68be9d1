package attendance

import (
	"context"
	"fmt"
	"io"
	"time"
)

// TemplateName is the stored filename of a department's monthly template.
func TemplateName(month time.Month, year int) string {
	return fmt.Sprintf("Custom_Attendance_Template_%s_%d.xlsx", month.String(), year)
}

// EmptyTemplateName is the download filename of a blank monthly template.
func EmptyTemplateName(month time.Month, year int) string {
	return fmt.Sprintf("Empty_Attendance_Template_%s_%d.xlsx", month.String(), year)
}

// UploadName is the stored filename of a raw daily upload.
func UploadName(date string) string {
	return fmt.Sprintf("Attendance_%s.xlsx", date)
}

// TemplateRepository persists department monthly templates.
// Every method is scoped by department.
type TemplateRepository interface {
	// Load reads the template for the month; ErrTemplateNotFound when absent.
	Load(ctx context.Context, department string, month time.Month, year int) (*Table, error)

	// Save overwrites the template for the month.
	Save(ctx context.Context, department string, month time.Month, year int, table *Table) error

	// Import stores an uploaded workbook as the month's template and returns its path.
	Import(ctx context.Context, department string, month time.Month, year int, file io.Reader, filename string) (string, error)
}

// UploadRepository keeps the raw daily uploads.
type UploadRepository interface {
	// Store saves the raw upload and returns the parsed table.
	Store(ctx context.Context, department, date string, file io.Reader, filename string) (*Table, error)

	// Discard removes an upload stored for date; a missing file is not an error.
	Discard(ctx context.Context, department, date, filename string) error
}
