package absentee

import (
	"context"
	"io"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
)

// ReportRepository persists bucket reports, one directory per department.
type ReportRepository interface {
	// Save writes the report, overwriting any file with the same name, and returns its path
	Save(ctx context.Context, department string, report Report) (string, error)

	// Load reads a report back as a table; ErrReportNotFound when absent
	Load(ctx context.Context, department, date string, bucket Bucket) (*attendance.Table, error)

	// Open streams the raw report file; ErrReportNotFound when absent
	Open(ctx context.Context, department, date string, bucket Bucket) (io.ReadCloser, error)

	// Exists reports whether the bucket report was generated for the date
	Exists(ctx context.Context, department, date string, bucket Bucket) (bool, error)
}
