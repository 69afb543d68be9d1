package absentee

import (
	"strings"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/absentee"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
)

// effectiveStatus treats a blank Sunday as sanctioned leave, matching what
// Sunday normalization writes into the template.
func effectiveStatus(d attendance.Day) attendance.Status {
	if d.Status == attendance.StatusBlank && d.Column.IsSunday() {
		return attendance.StatusSanctionedLeave
	}
	return d.Status
}

// ConsecutiveAbsences walks backward from current and collects the unbroken
// run of absences. SL days are skipped without counting; any status other
// than A or SL ends the run. At most maxBacktrack absences are collected.
func ConsecutiveAbsences(record attendance.Record, current string, maxBacktrack int) absentee.ConsecutiveRun {
	start := record.DayIndex(current)
	if start < 0 {
		return absentee.ConsecutiveRun{}
	}
	if maxBacktrack <= 0 {
		maxBacktrack = absentee.DefaultMaxBacktrack
	}

	var dates []string
scan:
	for i := start; i >= 0 && len(dates) < maxBacktrack; i-- {
		day := record.Days[i]
		switch effectiveStatus(day) {
		case attendance.StatusSanctionedLeave:
			continue
		case attendance.StatusAbsent:
			dates = append(dates, day.Column.Name)
		default:
			break scan
		}
	}

	for i, j := 0, len(dates)-1; i < j; i, j = i+1, j-1 {
		dates[i], dates[j] = dates[j], dates[i]
	}
	return absentee.ConsecutiveRun{Length: len(dates), Dates: dates}
}

// isNewAbsentee reports whether the first non-SL status before current is P or PL.
func isNewAbsentee(record attendance.Record, current string) bool {
	idx := record.DayIndex(current)
	for i := idx - 1; i >= 0; i-- {
		status := effectiveStatus(record.Days[i])
		if status == attendance.StatusSanctionedLeave {
			continue
		}
		return status.IsPresent()
	}
	return false
}

// Classify buckets every employee absent on date. An employee is placed in at
// most one bucket per run. Runs of exactly 3, 6 or 10 days go to the numbered
// buckets; otherwise an employee whose previous working status was P or PL is
// a new absentee. Anyone else, including a 2-day run, is not reported.
func Classify(table *attendance.Table, date string, maxBacktrack int) absentee.Classification {
	date = strings.TrimSpace(date)
	result := absentee.NewClassification(date)
	recorded := make(map[string]struct{})

	for _, record := range table.Records() {
		id := strings.TrimSpace(record.ID)
		if id == "" || record.StatusOn(date) != attendance.StatusAbsent {
			continue
		}
		if _, seen := recorded[id]; seen {
			continue
		}

		run := ConsecutiveAbsences(record, date, maxBacktrack)
		if bucket, ok := absentee.BucketForRun(run.Length); ok {
			result.Add(bucket, absentee.Member{ID: id, Row: record.Row, Dates: run.Dates})
			recorded[id] = struct{}{}
			continue
		}

		if isNewAbsentee(record, date) {
			result.Add(absentee.NewAbsentee, absentee.Member{ID: id, Row: record.Row, Dates: []string{date}})
			recorded[id] = struct{}{}
		}
	}

	return result
}
