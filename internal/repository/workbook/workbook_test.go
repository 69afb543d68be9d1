package workbook

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/absentee"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFiles(t *testing.T) *storage.LocalStorage {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return files
}

func encode(t *testing.T, rows [][]string) []byte {
	t.Helper()
	data, err := spreadsheet.Encode(rows, nil)
	require.NoError(t, err)
	return data
}

func TestTemplateRepository(t *testing.T) {
	ctx := context.Background()
	files := newFiles(t)
	repo := NewTemplateRepository(files, attendance.DefaultIDColumn)

	_, err := repo.Load(ctx, "BIW", time.January, 2024)
	assert.True(t, errors.Is(err, attendance.ErrTemplateNotFound))

	upload := encode(t, [][]string{
		{"Ticket. No.", "Name", "01.01.2024"},
		{"E1", "Alice", "P"},
	})
	path, err := repo.Import(ctx, "BIW", time.January, 2024, bytes.NewReader(upload), "template.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "templates/BIW/Custom_Attendance_Template_January_2024.xlsx", path)

	table, err := repo.Load(ctx, "BIW", time.January, 2024)
	require.NoError(t, err)
	assert.Equal(t, "P", table.Value(0, "01.01.2024"))

	table.SetValue(0, "01.01.2024", "A")
	require.NoError(t, repo.Save(ctx, "BIW", time.January, 2024, table))

	reloaded, err := repo.Load(ctx, "BIW", time.January, 2024)
	require.NoError(t, err)
	assert.Equal(t, "A", reloaded.Value(0, "01.01.2024"))

	_, err = repo.Load(ctx, "Paint", time.January, 2024)
	assert.True(t, errors.Is(err, attendance.ErrTemplateNotFound), "departments are isolated")
}

func TestTemplateRepositoryImportRequiresIDColumn(t *testing.T) {
	repo := NewTemplateRepository(newFiles(t), attendance.DefaultIDColumn)
	upload := encode(t, [][]string{{"Employee", "01.01.2024"}, {"E1", "P"}})

	_, err := repo.Import(context.Background(), "BIW", time.January, 2024, bytes.NewReader(upload), "template.xlsx")
	assert.True(t, errors.Is(err, attendance.ErrMissingColumn))
}

func TestUploadRepository(t *testing.T) {
	ctx := context.Background()
	files := newFiles(t)
	repo := NewUploadRepository(files, attendance.DefaultIDColumn)

	upload := encode(t, [][]string{
		{"Ticket. No.", "05.01.2024"},
		{"E2", "A"},
	})
	table, err := repo.Store(ctx, "BIW", "05.01.2024", bytes.NewReader(upload), "daily.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "A", table.Value(0, "05.01.2024"))

	ok, err := files.Exists(ctx, "uploads/BIW/Attendance_05.01.2024.xlsx")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.Store(ctx, "BIW", "06.01.2024", strings.NewReader("garbage"), "daily.xlsx")
	assert.Error(t, err)

	ok, err = files.Exists(ctx, "uploads/BIW/Attendance_06.01.2024.xlsx")
	require.NoError(t, err)
	assert.False(t, ok, "unreadable uploads are removed")

	require.NoError(t, repo.Discard(ctx, "BIW", "05.01.2024", "daily.xlsx"))
	ok, err = files.Exists(ctx, "uploads/BIW/Attendance_05.01.2024.xlsx")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, repo.Discard(ctx, "BIW", "05.01.2024", "daily.xlsx"), "discarding twice is fine")
}

func TestReportRepository(t *testing.T) {
	ctx := context.Background()
	files := newFiles(t)
	repo := NewReportRepository(files, attendance.DefaultIDColumn)

	_, err := repo.Load(ctx, "BIW", "07.01.2024", absentee.SixDay)
	assert.True(t, errors.Is(err, absentee.ErrReportNotFound))
	_, err = repo.Open(ctx, "BIW", "07.01.2024", absentee.SixDay)
	assert.True(t, errors.Is(err, absentee.ErrReportNotFound))

	report := absentee.Report{
		Bucket:     absentee.ThreeDay,
		Date:       "03.01.2024",
		Header:     []string{"Ticket. No.", "01.01.2024", "02.01.2024", "03.01.2024", "Action"},
		Rows:       [][]string{{"E1", "A", "A", "A", "Sent SMS for 3 days leave"}},
		Highlights: []absentee.CellRef{{Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3}},
	}

	path, err := repo.Save(ctx, "BIW", report)
	require.NoError(t, err)
	assert.Equal(t, "reports/BIW/3_Consecutive_Absentees_03.01.2024.xlsx", path)

	found, err := repo.Exists(ctx, "BIW", "03.01.2024", absentee.ThreeDay)
	require.NoError(t, err)
	assert.True(t, found)

	table, err := repo.Load(ctx, "BIW", "03.01.2024", absentee.ThreeDay)
	require.NoError(t, err)
	assert.Equal(t, report.Header, table.Header)
	assert.Equal(t, "Sent SMS for 3 days leave", table.Value(0, "Action"))

	rc, err := repo.Open(ctx, "BIW", "03.01.2024", absentee.ThreeDay)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	rows, err := spreadsheet.Read(bytes.NewReader(data), "report.xlsx")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
