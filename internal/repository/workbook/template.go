package workbook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/storage"
)

type templateRepositoryImpl struct {
	files    storage.FileStorage
	idColumn string
}

func NewTemplateRepository(files storage.FileStorage, idColumn string) attendance.TemplateRepository {
	return &templateRepositoryImpl{files: files, idColumn: idColumn}
}

// Load implements attendance.TemplateRepository.
func (r *templateRepositoryImpl) Load(ctx context.Context, department string, month time.Month, year int) (*attendance.Table, error) {
	k := key(templatesDir, department, attendance.TemplateName(month, year))
	table, err := readTable(ctx, r.files, k, r.idColumn)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s %s %d", attendance.ErrTemplateNotFound, department, month, year)
		}
		return nil, err
	}
	return table, nil
}

// Save implements attendance.TemplateRepository.
func (r *templateRepositoryImpl) Save(ctx context.Context, department string, month time.Month, year int, table *attendance.Table) error {
	k := key(templatesDir, department, attendance.TemplateName(month, year))
	_, err := writeRows(ctx, r.files, k, table.Matrix(), nil)
	return err
}

// Import implements attendance.TemplateRepository.
// The upload is parsed first so legacy xls templates are stored as xlsx.
func (r *templateRepositoryImpl) Import(ctx context.Context, department string, month time.Month, year int, file io.Reader, filename string) (string, error) {
	table, err := parseTable(file, filename, r.idColumn)
	if err != nil {
		return "", err
	}
	if !table.HasColumn(r.idColumn) {
		return "", fmt.Errorf("%w: %q in template", attendance.ErrMissingColumn, r.idColumn)
	}

	k := key(templatesDir, department, attendance.TemplateName(month, year))
	return writeRows(ctx, r.files, k, table.Matrix(), nil)
}
