package absentee

import (
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/validator"
)

// ========================================
// GENERATION
// ========================================

type GenerateResult struct {
	RunID   string
	Date    string
	Buckets map[Bucket]int
	Files   []ReportFile
}

// ========================================
// LISTING & PREVIEW
// ========================================

type ListReportsRequest struct {
	Department string `json:"-"`
	Date       string `json:"date"`
}

func (r *ListReportsRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = append(errs, validateDepartmentAndDate(r.Department, r.Date)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReportEntry struct {
	Bucket   string `json:"bucket"`
	Label    string `json:"label"`
	FileName string `json:"file_name"`
	Found    bool   `json:"found"`
}

type PreviewRequest struct {
	Department string `json:"-"`
	Date       string `json:"date"`
	Bucket     string `json:"bucket"`
}

func (r *PreviewRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = append(errs, validateDepartmentAndDate(r.Department, r.Date)...)
	if _, err := ParseBucket(r.Bucket); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "bucket",
			Message: "bucket must be one of 3, 6, 10, new",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PreviewResponse struct {
	Bucket string     `json:"bucket"`
	Label  string     `json:"label"`
	Date   string     `json:"date"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

func validateDepartmentAndDate(department, date string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}
	if !attendance.IsValidDate(date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in dd.mm.yyyy format",
		})
	}
	return errs
}
