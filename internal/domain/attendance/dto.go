package attendance

import (
	"io"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/validator"
)

// ========================================
// UPLOAD DTOs
// ========================================

type UploadDailyRequest struct {
	Department string    `json:"-"`
	Date       string    `json:"date"`
	Filename   string    `json:"-"`
	File       io.Reader `json:"-"`
}

func (r *UploadDailyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if !IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in dd.mm.yyyy format",
		})
	}

	errs = append(errs, validateSpreadsheet(r.File, r.Filename)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UploadTemplateRequest struct {
	Department string    `json:"-"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	Filename   string    `json:"-"`
	File       io.Reader `json:"-"`
}

func (r *UploadTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}
	errs = append(errs, validator.ValidatePeriod(r.Month, r.Year)...)
	errs = append(errs, validateSpreadsheet(r.File, r.Filename)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmptyTemplateRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *EmptyTemplateRequest) Validate() error {
	if errs := validator.ValidatePeriod(r.Month, r.Year); len(errs) > 0 {
		return errs
	}
	return nil
}

func validateSpreadsheet(file io.Reader, filename string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if file == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "attendance file is required",
		})
		return errs
	}
	if !spreadsheet.IsSupported(filename) {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "invalid file type: only xlsx, xls allowed",
		})
	}
	return errs
}

// ========================================
// RESPONSE DTOs
// ========================================

type TemplateResponse struct {
	Department string `json:"department"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	Path       string `json:"path"`
}

type EmptyTemplate struct {
	Filename string
	Content  []byte
}

// RunResult summarizes one merge-then-classify-then-emit run.
type RunResult struct {
	RunID      string            `json:"run_id"`
	Department string            `json:"department"`
	Date       string            `json:"date"`
	Buckets    map[string]int    `json:"buckets"`
	Reports    []GeneratedReport `json:"reports"`
}

type GeneratedReport struct {
	Bucket string `json:"bucket"`
	Path   string `json:"path"`
	Rows   int    `json:"rows"`
}
