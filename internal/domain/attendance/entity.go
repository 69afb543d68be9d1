package attendance

import (
	"sort"
	"strings"
	"time"
)

const (
	// DateLayout is the header format of every date column (dd.mm.yyyy).
	DateLayout = "02.01.2006"

	// DefaultIDColumn is the employee identifier header used by department templates.
	DefaultIDColumn = "Ticket. No."
)

// Status is a per-day attendance code.
type Status string

const (
	StatusAbsent          Status = "A"
	StatusPresent         Status = "P"
	StatusPresentLeave    Status = "PL"
	StatusSanctionedLeave Status = "SL"
	StatusBlank           Status = ""
)

// NormalizeStatus trims and upper-cases a raw cell value.
func NormalizeStatus(raw string) Status {
	return Status(strings.ToUpper(strings.TrimSpace(raw)))
}

// IsPresent reports whether the status marks the employee as at work.
func (s Status) IsPresent() bool {
	return s == StatusPresent || s == StatusPresentLeave
}

// ParseDate parses a date column header. Malformed headers return false.
func ParseDate(name string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(name))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsValidDate reports whether name is a dd.mm.yyyy calendar date.
func IsValidDate(name string) bool {
	_, ok := ParseDate(name)
	return ok
}

// DateColumn is a header that parsed as a calendar date.
type DateColumn struct {
	Name  string
	Index int
	Date  time.Time
}

// IsSunday reports whether the column falls on a Sunday.
func (c DateColumn) IsSunday() bool {
	return c.Date.Weekday() == time.Sunday
}

// Row holds the cells of one employee, aligned with Table.Header.
type Row struct {
	Cells []string
}

// Table is a wide attendance sheet: one identifier column plus one column per date.
type Table struct {
	Header   []string
	IDColumn string
	Rows     []Row
}

// NewTable builds a table from raw sheet rows where rows[0] is the header.
// Short rows are padded so every row has one cell per header column.
func NewTable(rows [][]string, idColumn string) *Table {
	t := &Table{IDColumn: idColumn}
	if len(rows) == 0 {
		return t
	}

	t.Header = make([]string, len(rows[0]))
	for i, h := range rows[0] {
		t.Header[i] = strings.TrimSpace(h)
	}

	for _, raw := range rows[1:] {
		if isBlankRow(raw) {
			continue
		}
		cells := make([]string, len(t.Header))
		for i := range cells {
			if i < len(raw) {
				cells[i] = strings.TrimSpace(raw[i])
			}
		}
		t.Rows = append(t.Rows, Row{Cells: cells})
	}
	return t
}

func isBlankRow(raw []string) bool {
	for _, c := range raw {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ColumnIndex returns the position of a header, or -1.
func (t *Table) ColumnIndex(name string) int {
	name = strings.TrimSpace(name)
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// AddColumn appends a column with blank cells and returns its index.
// An existing column is reused.
func (t *Table) AddColumn(name string) int {
	if idx := t.ColumnIndex(name); idx >= 0 {
		return idx
	}
	t.Header = append(t.Header, name)
	for i := range t.Rows {
		t.Rows[i].Cells = append(t.Rows[i].Cells, "")
	}
	return len(t.Header) - 1
}

// Value returns the trimmed cell of row i in column, or "" when either is missing.
func (t *Table) Value(i int, column string) string {
	idx := t.ColumnIndex(column)
	if idx < 0 || i < 0 || i >= len(t.Rows) {
		return ""
	}
	return t.Rows[i].cell(idx)
}

// SetValue writes a cell. It is a no-op when the column does not exist.
func (t *Table) SetValue(i int, column, value string) {
	idx := t.ColumnIndex(column)
	if idx < 0 || i < 0 || i >= len(t.Rows) {
		return
	}
	t.Rows[i].Cells[idx] = value
}

// ID returns the identifier of row i.
func (t *Table) ID(i int) string {
	return t.Value(i, t.IDColumn)
}

func (r Row) cell(idx int) string {
	if idx < 0 || idx >= len(r.Cells) {
		return ""
	}
	return strings.TrimSpace(r.Cells[idx])
}

// DateColumns lists the valid date columns in chronological order.
// Headers that do not parse as dd.mm.yyyy are skipped.
func (t *Table) DateColumns() []DateColumn {
	var cols []DateColumn
	for i, h := range t.Header {
		if d, ok := ParseDate(h); ok {
			cols = append(cols, DateColumn{Name: h, Index: i, Date: d})
		}
	}
	sort.SliceStable(cols, func(a, b int) bool {
		return cols[a].Date.Before(cols[b].Date)
	})
	return cols
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := &Table{
		Header:   append([]string(nil), t.Header...),
		IDColumn: t.IDColumn,
		Rows:     make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		c.Rows[i] = Row{Cells: append([]string(nil), r.Cells...)}
	}
	return c
}

// Matrix returns the header followed by all rows, ready for a sheet writer.
func (t *Table) Matrix() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, append([]string(nil), t.Header...))
	for _, r := range t.Rows {
		out = append(out, append([]string(nil), r.Cells...))
	}
	return out
}

// Day is one (date, status) pair of an employee timeline.
type Day struct {
	Column DateColumn
	Status Status
}

// Record is the typed view of a row: identifier plus chronological days.
type Record struct {
	ID   string
	Row  int
	Days []Day
}

// Records builds the typed view of every row.
func (t *Table) Records() []Record {
	cols := t.DateColumns()
	records := make([]Record, len(t.Rows))
	for i, r := range t.Rows {
		days := make([]Day, len(cols))
		for j, c := range cols {
			days[j] = Day{Column: c, Status: NormalizeStatus(r.cell(c.Index))}
		}
		records[i] = Record{ID: t.ID(i), Row: i, Days: days}
	}
	return records
}

// DayIndex returns the position of the named date in the record timeline, or -1.
func (r Record) DayIndex(date string) int {
	date = strings.TrimSpace(date)
	for i, d := range r.Days {
		if d.Column.Name == date {
			return i
		}
	}
	return -1
}

// StatusOn returns the status on the named date, blank when the date is unknown.
func (r Record) StatusOn(date string) Status {
	if i := r.DayIndex(date); i >= 0 {
		return r.Days[i].Status
	}
	return StatusBlank
}
