package attendance

import (
	"context"
)

// AttendanceService defines the upload workflows of a department
type AttendanceService interface {
	// UploadTemplate stores the monthly template a department fills in
	UploadTemplate(ctx context.Context, req UploadTemplateRequest) (TemplateResponse, error)

	// EmptyTemplate generates a blank template for the month
	EmptyTemplate(ctx context.Context, req EmptyTemplateRequest) (EmptyTemplate, error)

	// UploadDaily merges a daily upload into the monthly template and generates absentee reports
	UploadDaily(ctx context.Context, req UploadDailyRequest) (RunResult, error)
}
