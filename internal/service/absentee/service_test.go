package absentee

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/absentee"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/storage"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/validator"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/repository/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) absentee.Service {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewAbsenteeService(workbook.NewReportRepository(files, attendance.DefaultIDColumn), 0)
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	table := newTestTable(janDates(1, 10),
		row("E1", "Alice", "A", "A", "A", "SL", "A", "A", "A", "", "", ""),
		row("E2", "Bob", "P", "P", "P", "P", "P", "P", "A", "", "", ""),
	)

	result, err := svc.Generate(ctx, "BIW", table, "07.01.2024")
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 1, result.Buckets[absentee.SixDay])
	assert.Equal(t, 1, result.Buckets[absentee.NewAbsentee])
	assert.Equal(t, 0, result.Buckets[absentee.ThreeDay])
	require.Len(t, result.Files, 2)

	entries, err := svc.ListReports(ctx, absentee.ListReportsRequest{Department: "BIW", Date: "07.01.2024"})
	require.NoError(t, err)
	require.Len(t, entries, 4)
	found := map[string]bool{}
	for _, e := range entries {
		found[e.Bucket] = e.Found
	}
	assert.Equal(t, map[string]bool{"3": false, "6": true, "10": false, "new": true}, found)

	preview, err := svc.Preview(ctx, absentee.PreviewRequest{Department: "BIW", Date: "07.01.2024", Bucket: "6"})
	require.NoError(t, err)
	assert.Equal(t, "6-Day Absentees", preview.Label)
	require.Len(t, preview.Rows, 1)
	assert.Equal(t, "E1", preview.Rows[0][0])
	assert.Equal(t, absentee.ActionColumn, preview.Header[len(preview.Header)-1])

	rc, name, err := svc.Download(ctx, absentee.PreviewRequest{Department: "BIW", Date: "07.01.2024", Bucket: "new"})
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, "New_Absentees_07.01.2024.xlsx", name)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestGenerateWithNoAbsentees(t *testing.T) {
	svc := newTestService(t)
	table := newTestTable(janDates(1, 2), row("E1", "Alice", "P", "P"))

	result, err := svc.Generate(context.Background(), "BIW", table, "02.01.2024")
	require.NoError(t, err)
	assert.Empty(t, result.Files)

	entries, err := svc.ListReports(context.Background(), absentee.ListReportsRequest{Department: "BIW", Date: "02.01.2024"})
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, e.Found)
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	svc := newTestService(t)
	table := newTestTable(janDates(1, 2), row("E1", "Alice", "P", "A"))

	_, err := svc.Generate(context.Background(), "BIW", table, "2024-01-02")
	assert.True(t, errors.Is(err, attendance.ErrInvalidDate))

	noID := attendance.NewTable([][]string{{"Employee", "01.01.2024"}, {"E1", "A"}}, attendance.DefaultIDColumn)
	_, err = svc.Generate(context.Background(), "BIW", noID, "01.01.2024")
	assert.True(t, errors.Is(err, attendance.ErrMissingColumn))
}

func TestPreviewMissingReport(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Preview(context.Background(), absentee.PreviewRequest{Department: "BIW", Date: "07.01.2024", Bucket: "10"})
	assert.True(t, errors.Is(err, absentee.ErrReportNotFound))

	_, err = svc.Preview(context.Background(), absentee.PreviewRequest{Department: "BIW", Date: "07.01.2024", Bucket: "7"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "bucket")
}
