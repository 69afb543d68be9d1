package absentee

import (
	"fmt"
	"testing"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/absentee"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// janDates returns the January 2024 column names from day to day, inclusive.
// 07.01.2024 is the first Sunday.
func janDates(from, to int) []string {
	var dates []string
	for d := from; d <= to; d++ {
		dates = append(dates, fmt.Sprintf("%02d.01.2024", d))
	}
	return dates
}

func newTestTable(dates []string, rows ...[]string) *attendance.Table {
	header := append([]string{attendance.DefaultIDColumn, "Name"}, dates...)
	raw := [][]string{header}
	raw = append(raw, rows...)
	return attendance.NewTable(raw, attendance.DefaultIDColumn)
}

func row(id, name string, statuses ...string) []string {
	return append([]string{id, name}, statuses...)
}

func repeat(status string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = status
	}
	return out
}

func TestConsecutiveAbsences(t *testing.T) {
	t.Run("sanctioned leave is skipped without counting", func(t *testing.T) {
		table := newTestTable(janDates(1, 10),
			row("E1", "Alice", "A", "A", "A", "SL", "A", "A", "A", "", "", ""),
		)
		rec := table.Records()[0]

		run := ConsecutiveAbsences(rec, "07.01.2024", absentee.DefaultMaxBacktrack)
		assert.Equal(t, 6, run.Length)
		assert.Equal(t, []string{"01.01.2024", "02.01.2024", "03.01.2024", "05.01.2024", "06.01.2024", "07.01.2024"}, run.Dates)
	})

	t.Run("blank sunday does not break the run", func(t *testing.T) {
		table := newTestTable(janDates(5, 8),
			row("E1", "Alice", "P", "A", "", "A"),
		)
		rec := table.Records()[0]

		run := ConsecutiveAbsences(rec, "08.01.2024", absentee.DefaultMaxBacktrack)
		assert.Equal(t, 2, run.Length)
		assert.Equal(t, []string{"06.01.2024", "08.01.2024"}, run.Dates)
	})

	t.Run("blank weekday ends the run", func(t *testing.T) {
		table := newTestTable(janDates(1, 4),
			row("E1", "Alice", "A", "", "A", "A"),
		)
		run := ConsecutiveAbsences(table.Records()[0], "04.01.2024", absentee.DefaultMaxBacktrack)
		assert.Equal(t, 2, run.Length)
	})

	t.Run("present leave ends the run", func(t *testing.T) {
		table := newTestTable(janDates(1, 4),
			row("E1", "Alice", "A", "PL", "A", "A"),
		)
		run := ConsecutiveAbsences(table.Records()[0], "04.01.2024", absentee.DefaultMaxBacktrack)
		assert.Equal(t, 2, run.Length)
	})

	t.Run("status is trimmed and case folded", func(t *testing.T) {
		table := newTestTable(janDates(1, 3),
			row("E1", "Alice", " a", "a ", "A"),
		)
		run := ConsecutiveAbsences(table.Records()[0], "03.01.2024", absentee.DefaultMaxBacktrack)
		assert.Equal(t, 3, run.Length)
	})

	t.Run("run is capped at max backtrack", func(t *testing.T) {
		table := newTestTable(janDates(1, 25),
			row("E1", "Alice", repeat("A", 25)...),
		)
		rec := table.Records()[0]

		assert.Equal(t, 20, ConsecutiveAbsences(rec, "25.01.2024", 20).Length)
		assert.Equal(t, 10, ConsecutiveAbsences(rec, "25.01.2024", 10).Length)
		assert.Equal(t, 20, ConsecutiveAbsences(rec, "25.01.2024", 0).Length)
	})

	t.Run("unknown current date yields an empty run", func(t *testing.T) {
		table := newTestTable(janDates(1, 3),
			row("E1", "Alice", "A", "A", "A"),
		)
		run := ConsecutiveAbsences(table.Records()[0], "15.01.2024", absentee.DefaultMaxBacktrack)
		assert.Equal(t, 0, run.Length)
		assert.Empty(t, run.Dates)
	})

	t.Run("columns are scanned in calendar order", func(t *testing.T) {
		dates := []string{"03.01.2024", "01.01.2024", "02.01.2024"}
		table := newTestTable(dates,
			row("E1", "Alice", "A", "A", "A"),
		)
		run := ConsecutiveAbsences(table.Records()[0], "03.01.2024", absentee.DefaultMaxBacktrack)
		assert.Equal(t, []string{"01.01.2024", "02.01.2024", "03.01.2024"}, run.Dates)
	})
}

func TestClassify(t *testing.T) {
	t.Run("numbered buckets match exact run lengths", func(t *testing.T) {
		table := newTestTable(janDates(1, 12),
			row("E3", "Three", "P", "P", "P", "P", "P", "P", "P", "P", "P", "A", "A", "A"),
			row("E6", "Six", "P", "P", "P", "P", "P", "P", "A", "A", "A", "A", "A", "A"),
			row("E10", "Ten", "P", "P", "A", "A", "A", "A", "A", "A", "A", "A", "A", "A"),
			row("E4", "Four", "P", "P", "P", "P", "P", "P", "P", "P", "A", "A", "A", "A"),
		)

		c := Classify(table, "12.01.2024", absentee.DefaultMaxBacktrack)

		require.Equal(t, 1, c.Count(absentee.ThreeDay))
		require.Equal(t, 1, c.Count(absentee.SixDay))
		require.Equal(t, 1, c.Count(absentee.TenDay))
		assert.Equal(t, "E3", c.Members[absentee.ThreeDay][0].ID)
		assert.Equal(t, "E6", c.Members[absentee.SixDay][0].ID)
		assert.Equal(t, "E10", c.Members[absentee.TenDay][0].ID)

		_, found := c.BucketOf("E4")
		assert.False(t, found, "a 4-day run is neither numbered nor new")
	})

	t.Run("six day run across sanctioned leave", func(t *testing.T) {
		table := newTestTable(janDates(1, 10),
			row("E1", "Alice", "A", "A", "A", "SL", "A", "A", "A", "", "", ""),
		)

		c := Classify(table, "07.01.2024", absentee.DefaultMaxBacktrack)

		require.Equal(t, 1, c.Count(absentee.SixDay))
		m := c.Members[absentee.SixDay][0]
		assert.Equal(t, "E1", m.ID)
		assert.Equal(t, 0, m.Row)
		assert.Len(t, m.Dates, 6)
		assert.NotContains(t, m.Dates, "04.01.2024")
	})

	t.Run("single absence after presence is new", func(t *testing.T) {
		table := newTestTable(janDates(8, 10),
			row("E3", "Carol", "P", "P", "A"),
		)

		c := Classify(table, "10.01.2024", absentee.DefaultMaxBacktrack)

		require.Equal(t, 1, c.Count(absentee.NewAbsentee))
		assert.Equal(t, []string{"10.01.2024"}, c.Members[absentee.NewAbsentee][0].Dates)
	})

	t.Run("new looks past sanctioned leave", func(t *testing.T) {
		table := newTestTable(janDates(8, 10),
			row("E3", "Carol", "PL", "SL", "A"),
		)

		c := Classify(table, "10.01.2024", absentee.DefaultMaxBacktrack)
		assert.Equal(t, 1, c.Count(absentee.NewAbsentee))
	})

	t.Run("two day run is declined", func(t *testing.T) {
		table := newTestTable(janDates(8, 10),
			row("E5", "Eve", "P", "A", "A"),
		)

		c := Classify(table, "10.01.2024", absentee.DefaultMaxBacktrack)
		assert.True(t, c.Empty())
	})

	t.Run("no earlier working day is declined", func(t *testing.T) {
		table := newTestTable(janDates(1, 1),
			row("E5", "Eve", "A"),
		)

		c := Classify(table, "01.01.2024", absentee.DefaultMaxBacktrack)
		assert.True(t, c.Empty())
	})

	t.Run("only absentees on the current date are classified", func(t *testing.T) {
		table := newTestTable(janDates(1, 4),
			row("E1", "Alice", "A", "A", "A", "P"),
			row("E2", "Bob", "P", "P", "P", ""),
			row("E3", "Carol", "P", "P", "P", "SL"),
		)

		c := Classify(table, "04.01.2024", absentee.DefaultMaxBacktrack)
		assert.True(t, c.Empty())
	})

	t.Run("duplicate ids are bucketed once", func(t *testing.T) {
		table := newTestTable(janDates(1, 4),
			row("E1", "Alice", "P", "A", "A", "A"),
			row("E1", "Alice again", "P", "A", "A", "A"),
			row("E2", "Bob", "P", "P", "P", "A"),
			row(" E2 ", "Bob again", "P", "P", "P", "A"),
		)

		c := Classify(table, "04.01.2024", absentee.DefaultMaxBacktrack)

		assert.Equal(t, 1, c.Count(absentee.ThreeDay))
		assert.Equal(t, 1, c.Count(absentee.NewAbsentee))
		assert.Equal(t, 0, c.Members[absentee.ThreeDay][0].Row)
	})

	t.Run("rows without id are ignored", func(t *testing.T) {
		table := newTestTable(janDates(1, 2),
			row("", "Nobody", "P", "A"),
		)

		c := Classify(table, "02.01.2024", absentee.DefaultMaxBacktrack)
		assert.True(t, c.Empty())
	})

	t.Run("runs beyond the cap are not reported", func(t *testing.T) {
		table := newTestTable(janDates(1, 25),
			row("E1", "Alice", repeat("A", 25)...),
		)

		c := Classify(table, "25.01.2024", absentee.DefaultMaxBacktrack)
		assert.True(t, c.Empty())
	})

	t.Run("classification is deterministic", func(t *testing.T) {
		table := newTestTable(janDates(1, 10),
			row("E1", "Alice", "A", "A", "A", "SL", "A", "A", "A", "", "", ""),
			row("E2", "Bob", "P", "P", "P", "P", "P", "P", "A", "", "", ""),
		)

		first := Classify(table, "07.01.2024", absentee.DefaultMaxBacktrack)
		second := Classify(table, "07.01.2024", absentee.DefaultMaxBacktrack)
		assert.Equal(t, first, second)
	})
}

func TestBuildReports(t *testing.T) {
	table := newTestTable(janDates(1, 10),
		row("E1", "Alice", "A", "A", "A", "SL", "A", "A", "A", "", "", ""),
		row("E2", "Bob", "P", "P", "P", "P", "P", "P", "A", "", "", ""),
		row("E3", "Carol", "P", "P", "P", "P", "P", "P", "P", "", "", ""),
	)

	c := Classify(table, "07.01.2024", absentee.DefaultMaxBacktrack)
	reports := BuildReports(table, c)
	require.Len(t, reports, 2)

	six := reports[0]
	assert.Equal(t, absentee.SixDay, six.Bucket)
	assert.Equal(t, absentee.ActionColumn, six.Header[len(six.Header)-1])
	require.Len(t, six.Rows, 1)
	assert.Equal(t, "E1", six.Rows[0][0])
	assert.Equal(t, "Sent SMS for 6 days leave", six.Rows[0][len(six.Header)-1])
	assert.Len(t, six.Highlights, 6)
	for _, h := range six.Highlights {
		assert.Equal(t, "A", six.Rows[h.Row][h.Col])
		assert.NotEqual(t, "04.01.2024", six.Header[h.Col])
	}

	fresh := reports[1]
	assert.Equal(t, absentee.NewAbsentee, fresh.Bucket)
	require.Len(t, fresh.Rows, 1)
	assert.Equal(t, "E2", fresh.Rows[0][0])
	assert.Equal(t, "Call and remark", fresh.Rows[0][len(fresh.Header)-1])
	require.Len(t, fresh.Highlights, 1)
	assert.Equal(t, "07.01.2024", fresh.Header[fresh.Highlights[0].Col])

	// source table is untouched
	assert.Equal(t, len(six.Header)-1, len(table.Header))
}

func TestBuildReportsEmpty(t *testing.T) {
	table := newTestTable(janDates(1, 2), row("E1", "Alice", "P", "P"))
	assert.Empty(t, BuildReports(table, Classify(table, "02.01.2024", absentee.DefaultMaxBacktrack)))
}
