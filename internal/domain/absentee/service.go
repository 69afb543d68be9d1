package absentee

import (
	"context"
	"io"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
)

// Service classifies absentees and manages the generated reports
type Service interface {
	// Generate classifies the merged monthly table for date and writes one report per non-empty bucket
	Generate(ctx context.Context, department string, table *attendance.Table, date string) (GenerateResult, error)

	// ListReports tells which bucket reports exist for a date
	ListReports(ctx context.Context, req ListReportsRequest) ([]ReportEntry, error)

	// Preview returns a report as a table for display
	Preview(ctx context.Context, req PreviewRequest) (PreviewResponse, error)

	// Download streams a report file and returns its filename
	Download(ctx context.Context, req PreviewRequest) (io.ReadCloser, string, error)
}
