package workbook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/storage"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Storage roots, each followed by one directory per department.
const (
	templatesDir = "templates"
	uploadsDir   = "uploads"
	reportsDir   = "reports"
)

func key(root, department, name string) string {
	return path.Join(root, department, name)
}

// readTable downloads an xlsx workbook and parses it into a table.
func readTable(ctx context.Context, files storage.FileStorage, key, idColumn string) (*attendance.Table, error) {
	rc, err := files.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return parseTable(rc, key, idColumn)
}

func parseTable(r io.Reader, filename, idColumn string) (*attendance.Table, error) {
	rows, err := spreadsheet.Read(r, filename)
	if err != nil {
		switch {
		case errors.Is(err, spreadsheet.ErrEmptyWorksheet), errors.Is(err, spreadsheet.ErrNoWorksheet):
			return nil, fmt.Errorf("%w: %s", attendance.ErrEmptySheet, filename)
		case errors.Is(err, spreadsheet.ErrUnsupportedFormat):
			return nil, fmt.Errorf("%w: %s", attendance.ErrUnsupportedFile, filename)
		}
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return attendance.NewTable(rows, idColumn), nil
}

// writeRows encodes rows as xlsx and stores them under key.
func writeRows(ctx context.Context, files storage.FileStorage, key string, rows [][]string, highlights []spreadsheet.Cell) (string, error) {
	data, err := spreadsheet.Encode(rows, highlights)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return files.Upload(ctx, bytes.NewReader(data), key, xlsxContentType)
}
