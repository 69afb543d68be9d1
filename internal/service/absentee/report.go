package absentee

import (
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/absentee"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
)

// BuildReports turns a classification into one report per non-empty bucket.
// Each report carries the members' full rows plus the Action column. Numbered
// buckets flag the member's own absence dates; the new-absentee report flags
// only the current date. Only cells still holding A are flagged.
func BuildReports(table *attendance.Table, c absentee.Classification) []absentee.Report {
	var reports []absentee.Report

	for _, bucket := range absentee.AllBuckets() {
		members := c.Members[bucket]
		if len(members) == 0 {
			continue
		}

		header := append([]string(nil), table.Header...)
		actionIdx := table.ColumnIndex(absentee.ActionColumn)
		if actionIdx < 0 {
			header = append(header, absentee.ActionColumn)
			actionIdx = len(header) - 1
		}

		report := absentee.Report{
			Bucket: bucket,
			Date:   c.Date,
			Header: header,
		}

		for i, m := range members {
			cells := make([]string, len(header))
			copy(cells, table.Rows[m.Row].Cells)
			cells[actionIdx] = bucket.Action()
			report.Rows = append(report.Rows, cells)

			flagged := m.Dates
			if bucket == absentee.NewAbsentee {
				flagged = []string{c.Date}
			}
			for _, date := range flagged {
				col := table.ColumnIndex(date)
				if col < 0 {
					continue
				}
				if attendance.NormalizeStatus(cells[col]) == attendance.StatusAbsent {
					report.Highlights = append(report.Highlights, absentee.CellRef{Row: i, Col: col})
				}
			}
		}

		reports = append(reports, report)
	}

	return reports
}
