package workbook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/storage"
)

type uploadRepositoryImpl struct {
	files    storage.FileStorage
	idColumn string
}

func NewUploadRepository(files storage.FileStorage, idColumn string) attendance.UploadRepository {
	return &uploadRepositoryImpl{files: files, idColumn: idColumn}
}

// Store implements attendance.UploadRepository.
// The raw file is kept with its original extension and removed again if it cannot be parsed.
func (r *uploadRepositoryImpl) Store(ctx context.Context, department, date string, file io.Reader, filename string) (*attendance.Table, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	k := uploadKey(department, date, filename)
	if _, err := r.files.Upload(ctx, bytes.NewReader(data), k, ""); err != nil {
		return nil, err
	}

	table, err := parseTable(bytes.NewReader(data), filename, r.idColumn)
	if err != nil {
		if delErr := r.files.Delete(ctx, k); delErr != nil {
			slog.Warn("Failed to remove unreadable upload", "path", k, "error", delErr)
		}
		return nil, err
	}
	return table, nil
}

// Discard implements attendance.UploadRepository.
func (r *uploadRepositoryImpl) Discard(ctx context.Context, department, date, filename string) error {
	err := r.files.Delete(ctx, uploadKey(department, date, filename))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}

func uploadKey(department, date, filename string) string {
	name := strings.TrimSuffix(attendance.UploadName(date), ".xlsx") + strings.ToLower(filepath.Ext(filename))
	return key(uploadsDir, department, name)
}
