package dashboard

import (
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// DeptColumn groups template rows into sub-departments.
const DeptColumn = "Dept"

// UnassignedDept labels rows with a blank Dept cell.
const UnassignedDept = "Unassigned"

type SummaryRequest struct {
	Department string `json:"-"`
	Date       string `json:"date"`
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}
	if !attendance.IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in dd.mm.yyyy format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== ABSENTEE TRENDS ==========

// DeptAbsence is one Dept group's absence series over the month
type DeptAbsence struct {
	Dept        string          `json:"dept"`
	Employees   int             `json:"employees"`
	Daily       []int           `json:"daily"`      // absences per entry of SummaryResponse.Dates
	Cumulative  []int           `json:"cumulative"` // running total of Daily
	Total       int             `json:"total"`
	AbsenceRate decimal.Decimal `json:"absence_rate"` // percent of employee-days marked A
}

// ========== REPORT BUCKETS ==========

type BucketCount struct {
	Bucket string `json:"bucket"`
	Label  string `json:"label"`
	Found  bool   `json:"found"`
	Rows   int    `json:"rows"`
}

// ========== COMBINED DASHBOARD ==========

type SummaryResponse struct {
	Department   string        `json:"department"`
	Date         string        `json:"date"`
	Dates        []string      `json:"dates"`
	Depts        []DeptAbsence `json:"depts"`
	TotalAbsence int           `json:"total_absence"`
	Buckets      []BucketCount `json:"buckets"`
}
