package notification

import (
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/validator"
)

type DispatchRequest struct {
	Department string `json:"-"`
	Date       string `json:"date"`
}

func (r *DispatchRequest) Validate() error {
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

type DispatchResult struct {
	Department string          `json:"department"`
	Date       string          `json:"date"`
	Outcomes   []BucketOutcome `json:"outcomes"`
	QuotaUsed  int             `json:"quota_used"`
}

// Lines returns the summary of every bucket in order.
func (r DispatchResult) Lines() []string {
	lines := make([]string, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		lines = append(lines, o.Summary())
	}
	return lines
}
