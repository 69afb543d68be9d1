package absentee

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/absentee"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
	"github.com/google/uuid"
)

type AbsenteeServiceImpl struct {
	absentee.ReportRepository
	maxBacktrack int
}

func NewAbsenteeService(reportRepository absentee.ReportRepository, maxBacktrack int) absentee.Service {
	if maxBacktrack <= 0 {
		maxBacktrack = absentee.DefaultMaxBacktrack
	}
	return &AbsenteeServiceImpl{
		ReportRepository: reportRepository,
		maxBacktrack:     maxBacktrack,
	}
}

// Generate implements absentee.Service.
func (s *AbsenteeServiceImpl) Generate(ctx context.Context, department string, table *attendance.Table, date string) (absentee.GenerateResult, error) {
	if !attendance.IsValidDate(date) {
		return absentee.GenerateResult{}, fmt.Errorf("%w: %q", attendance.ErrInvalidDate, date)
	}
	if !table.HasColumn(table.IDColumn) {
		return absentee.GenerateResult{}, fmt.Errorf("%w: %s", attendance.ErrMissingColumn, table.IDColumn)
	}

	result := absentee.GenerateResult{
		RunID:   uuid.New().String(),
		Date:    date,
		Buckets: make(map[absentee.Bucket]int),
	}

	classification := Classify(table, date, s.maxBacktrack)
	for _, b := range absentee.AllBuckets() {
		result.Buckets[b] = classification.Count(b)
	}

	if classification.Empty() {
		slog.Info("No absentees matched any bucket", "run_id", result.RunID, "department", department, "date", date)
		return result, nil
	}

	for _, report := range BuildReports(table, classification) {
		path, err := s.ReportRepository.Save(ctx, department, report)
		if err != nil {
			return absentee.GenerateResult{}, fmt.Errorf("failed to save %s report: %w", report.Bucket.Label(), err)
		}
		result.Files = append(result.Files, absentee.ReportFile{
			Bucket: report.Bucket,
			Path:   path,
			Rows:   len(report.Rows),
		})
		slog.Info("Generated absentee report", "run_id", result.RunID, "department", department, "bucket", report.Bucket.String(), "rows", len(report.Rows), "path", path)
	}

	return result, nil
}

// ListReports implements absentee.Service.
func (s *AbsenteeServiceImpl) ListReports(ctx context.Context, req absentee.ListReportsRequest) ([]absentee.ReportEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entries := make([]absentee.ReportEntry, 0, len(absentee.AllBuckets()))
	for _, b := range absentee.AllBuckets() {
		found, err := s.ReportRepository.Exists(ctx, req.Department, req.Date, b)
		if err != nil {
			return nil, fmt.Errorf("failed to check %s report: %w", b.Label(), err)
		}
		entries = append(entries, absentee.ReportEntry{
			Bucket:   b.String(),
			Label:    b.Label(),
			FileName: b.FileName(req.Date),
			Found:    found,
		})
	}
	return entries, nil
}

// Preview implements absentee.Service.
func (s *AbsenteeServiceImpl) Preview(ctx context.Context, req absentee.PreviewRequest) (absentee.PreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return absentee.PreviewResponse{}, err
	}
	bucket, _ := absentee.ParseBucket(req.Bucket)

	table, err := s.ReportRepository.Load(ctx, req.Department, req.Date, bucket)
	if err != nil {
		return absentee.PreviewResponse{}, err
	}

	rows := make([][]string, 0, len(table.Rows))
	for _, r := range table.Rows {
		rows = append(rows, r.Cells)
	}

	return absentee.PreviewResponse{
		Bucket: bucket.String(),
		Label:  bucket.Label(),
		Date:   req.Date,
		Header: table.Header,
		Rows:   rows,
	}, nil
}

// Download implements absentee.Service.
func (s *AbsenteeServiceImpl) Download(ctx context.Context, req absentee.PreviewRequest) (io.ReadCloser, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}
	bucket, _ := absentee.ParseBucket(req.Bucket)

	rc, err := s.ReportRepository.Open(ctx, req.Department, req.Date, bucket)
	if err != nil {
		return nil, "", err
	}
	return rc, bucket.FileName(req.Date), nil
}
