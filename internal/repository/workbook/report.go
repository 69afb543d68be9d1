package workbook

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/absentee"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/storage"
)

type reportRepositoryImpl struct {
	files    storage.FileStorage
	idColumn string
}

func NewReportRepository(files storage.FileStorage, idColumn string) absentee.ReportRepository {
	return &reportRepositoryImpl{files: files, idColumn: idColumn}
}

// Save implements absentee.ReportRepository.
func (r *reportRepositoryImpl) Save(ctx context.Context, department string, report absentee.Report) (string, error) {
	rows := make([][]string, 0, len(report.Rows)+1)
	rows = append(rows, report.Header)
	rows = append(rows, report.Rows...)

	// report highlights exclude the header row
	highlights := make([]spreadsheet.Cell, 0, len(report.Highlights))
	for _, h := range report.Highlights {
		highlights = append(highlights, spreadsheet.Cell{Row: h.Row + 1, Col: h.Col})
	}

	return writeRows(ctx, r.files, key(reportsDir, department, report.Bucket.FileName(report.Date)), rows, highlights)
}

// Load implements absentee.ReportRepository.
func (r *reportRepositoryImpl) Load(ctx context.Context, department, date string, bucket absentee.Bucket) (*attendance.Table, error) {
	table, err := readTable(ctx, r.files, key(reportsDir, department, bucket.FileName(date)), r.idColumn)
	if err != nil {
		return nil, r.notFound(err, bucket, date)
	}
	return table, nil
}

// Open implements absentee.ReportRepository.
func (r *reportRepositoryImpl) Open(ctx context.Context, department, date string, bucket absentee.Bucket) (io.ReadCloser, error) {
	rc, err := r.files.Download(ctx, key(reportsDir, department, bucket.FileName(date)))
	if err != nil {
		return nil, r.notFound(err, bucket, date)
	}
	return rc, nil
}

// Exists implements absentee.ReportRepository.
func (r *reportRepositoryImpl) Exists(ctx context.Context, department, date string, bucket absentee.Bucket) (bool, error) {
	return r.files.Exists(ctx, key(reportsDir, department, bucket.FileName(date)))
}

func (r *reportRepositoryImpl) notFound(err error, bucket absentee.Bucket, date string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", absentee.ErrReportNotFound, bucket.FileName(date))
	}
	return err
}
