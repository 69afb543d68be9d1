package attendance

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
)

// NormalizeSundays fills blank Sunday cells with SL for every row that has an
// identifier. It returns the number of cells filled.
func NormalizeSundays(t *attendance.Table) int {
	filled := 0
	for _, col := range t.DateColumns() {
		if !col.IsSunday() {
			continue
		}
		for i := range t.Rows {
			if t.ID(i) == "" {
				continue
			}
			if strings.TrimSpace(t.Rows[i].Cells[col.Index]) == "" {
				t.Rows[i].Cells[col.Index] = string(attendance.StatusSanctionedLeave)
				filled++
			}
		}
	}
	return filled
}

// MergeDaily copies the date column of the daily upload into a copy of the
// monthly table, matching rows by identifier. Employees missing from the
// upload keep their existing value. The monthly table is not modified.
func MergeDaily(monthly, daily *attendance.Table, date string) (*attendance.Table, error) {
	date = strings.TrimSpace(date)
	if !monthly.HasColumn(monthly.IDColumn) {
		return nil, fmt.Errorf("%w: %q in monthly template", attendance.ErrMissingColumn, monthly.IDColumn)
	}
	if !daily.HasColumn(daily.IDColumn) {
		return nil, fmt.Errorf("%w: %q in daily upload", attendance.ErrMissingColumn, daily.IDColumn)
	}
	if !daily.HasColumn(date) {
		return nil, fmt.Errorf("%w: %q in daily upload", attendance.ErrMissingColumn, date)
	}

	statuses := make(map[string]string, len(daily.Rows))
	for i := range daily.Rows {
		id := daily.ID(i)
		if id == "" {
			continue
		}
		statuses[id] = daily.Value(i, date)
	}

	merged := monthly.Clone()
	NormalizeSundays(merged)

	col := merged.AddColumn(date)
	for i := range merged.Rows {
		if status, ok := statuses[merged.ID(i)]; ok {
			merged.Rows[i].Cells[col] = status
		}
	}

	return merged, nil
}
