package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/absentee"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/spreadsheet"
)

// templateColumns lead every generated monthly template.
var templateColumns = []string{"Name", "Dept", "Phone", "Email"}

type AttendanceServiceImpl struct {
	attendance.TemplateRepository
	attendance.UploadRepository
	absenteeService absentee.Service
	idColumn        string
	locks           *keyedMutex
}

func NewAttendanceService(templateRepository attendance.TemplateRepository, uploadRepository attendance.UploadRepository, absenteeService absentee.Service, idColumn string) attendance.AttendanceService {
	if idColumn == "" {
		idColumn = attendance.DefaultIDColumn
	}
	return &AttendanceServiceImpl{
		TemplateRepository: templateRepository,
		UploadRepository:   uploadRepository,
		absenteeService:    absenteeService,
		idColumn:           idColumn,
		locks:              newKeyedMutex(),
	}
}

// UploadTemplate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UploadTemplate(ctx context.Context, req attendance.UploadTemplateRequest) (attendance.TemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.TemplateResponse{}, err
	}

	unlock := s.locks.Lock(periodKey(req.Department, time.Month(req.Month), req.Year))
	defer unlock()

	path, err := s.TemplateRepository.Import(ctx, req.Department, time.Month(req.Month), req.Year, req.File, req.Filename)
	if err != nil {
		return attendance.TemplateResponse{}, fmt.Errorf("failed to import template: %w", err)
	}

	slog.Info("Monthly template uploaded", "department", req.Department, "month", req.Month, "year", req.Year, "path", path)

	return attendance.TemplateResponse{
		Department: req.Department,
		Month:      req.Month,
		Year:       req.Year,
		Path:       path,
	}, nil
}

// EmptyTemplate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EmptyTemplate(ctx context.Context, req attendance.EmptyTemplateRequest) (attendance.EmptyTemplate, error) {
	if err := req.Validate(); err != nil {
		return attendance.EmptyTemplate{}, err
	}

	month := time.Month(req.Month)
	header := append([]string{s.idColumn}, templateColumns...)
	first := time.Date(req.Year, month, 1, 0, 0, 0, 0, time.UTC)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		header = append(header, d.Format(attendance.DateLayout))
	}

	content, err := spreadsheet.Encode([][]string{header}, nil)
	if err != nil {
		return attendance.EmptyTemplate{}, fmt.Errorf("failed to build empty template: %w", err)
	}

	return attendance.EmptyTemplate{
		Filename: attendance.EmptyTemplateName(month, req.Year),
		Content:  content,
	}, nil
}

// UploadDaily implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UploadDaily(ctx context.Context, req attendance.UploadDailyRequest) (attendance.RunResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.RunResult{}, err
	}

	day, _ := attendance.ParseDate(req.Date)
	unlock := s.locks.Lock(periodKey(req.Department, day.Month(), day.Year()))
	defer unlock()

	// Without a template the upload is rejected before anything is stored.
	monthly, err := s.TemplateRepository.Load(ctx, req.Department, day.Month(), day.Year())
	if err != nil {
		return attendance.RunResult{}, err
	}

	daily, err := s.UploadRepository.Store(ctx, req.Department, req.Date, req.File, req.Filename)
	if err != nil {
		return attendance.RunResult{}, fmt.Errorf("failed to store daily upload: %w", err)
	}

	merged, err := MergeDaily(monthly, daily, req.Date)
	if err != nil {
		if discardErr := s.UploadRepository.Discard(ctx, req.Department, req.Date, req.Filename); discardErr != nil {
			slog.Warn("Failed to remove rejected upload", "department", req.Department, "date", req.Date, "error", discardErr)
		}
		return attendance.RunResult{}, err
	}

	if err := s.TemplateRepository.Save(ctx, req.Department, day.Month(), day.Year(), merged); err != nil {
		return attendance.RunResult{}, fmt.Errorf("failed to save merged template: %w", err)
	}

	generated, err := s.absenteeService.Generate(ctx, req.Department, merged, req.Date)
	if err != nil {
		return attendance.RunResult{}, fmt.Errorf("failed to generate absentee reports: %w", err)
	}

	result := attendance.RunResult{
		RunID:      generated.RunID,
		Department: req.Department,
		Date:       req.Date,
		Buckets:    make(map[string]int, len(generated.Buckets)),
		Reports:    make([]attendance.GeneratedReport, 0, len(generated.Files)),
	}
	for b, n := range generated.Buckets {
		result.Buckets[b.String()] = n
	}
	for _, f := range generated.Files {
		result.Reports = append(result.Reports, attendance.GeneratedReport{
			Bucket: f.Bucket.String(),
			Path:   f.Path,
			Rows:   f.Rows,
		})
	}

	slog.Info("Daily attendance merged", "run_id", result.RunID, "department", req.Department, "date", req.Date, "reports", len(result.Reports))
	return result, nil
}

func periodKey(department string, month time.Month, year int) string {
	return fmt.Sprintf("%s/%d-%02d", department, year, int(month))
}

// keyedMutex serializes work per key. Entries are dropped once unused.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedEntry)}
}

// Lock blocks until key is free and returns the matching unlock func.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &keyedEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
