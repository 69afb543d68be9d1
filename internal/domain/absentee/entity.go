package absentee

import (
	"fmt"
	"strconv"
	"strings"
)

// Bucket is the classification outcome selecting which report an employee lands in.
type Bucket int

const (
	ThreeDay Bucket = iota + 1
	SixDay
	TenDay
	NewAbsentee
)

// DefaultMaxBacktrack caps how many absence days a run may collect.
const DefaultMaxBacktrack = 20

// ActionColumn is appended to every report.
const ActionColumn = "Action"

// NumberedBuckets are the exact-length thresholds, in report order.
func NumberedBuckets() []Bucket {
	return []Bucket{ThreeDay, SixDay, TenDay}
}

// AllBuckets returns every bucket in report order.
func AllBuckets() []Bucket {
	return []Bucket{ThreeDay, SixDay, TenDay, NewAbsentee}
}

// BucketForRun maps a consecutive run length onto a numbered bucket.
func BucketForRun(length int) (Bucket, bool) {
	switch length {
	case 3:
		return ThreeDay, true
	case 6:
		return SixDay, true
	case 10:
		return TenDay, true
	}
	return 0, false
}

// ParseBucket accepts "3", "6", "10" or "new".
func ParseBucket(s string) (Bucket, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "3":
		return ThreeDay, nil
	case "6":
		return SixDay, nil
	case "10":
		return TenDay, nil
	case "new":
		return NewAbsentee, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidBucket, s)
}

// Days is the run length of a numbered bucket, 0 for NewAbsentee.
func (b Bucket) Days() int {
	switch b {
	case ThreeDay:
		return 3
	case SixDay:
		return 6
	case TenDay:
		return 10
	}
	return 0
}

func (b Bucket) String() string {
	if b == NewAbsentee {
		return "new"
	}
	return strconv.Itoa(b.Days())
}

// MarshalText renders the bucket as "3", "6", "10" or "new".
func (b Bucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// Action is the annotation written in the Action column.
func (b Bucket) Action() string {
	if b == NewAbsentee {
		return "Call and remark"
	}
	return fmt.Sprintf("Sent SMS for %d days leave", b.Days())
}

// FileName is the deterministic report name for a run date.
func (b Bucket) FileName(date string) string {
	if b == NewAbsentee {
		return fmt.Sprintf("New_Absentees_%s.xlsx", date)
	}
	return fmt.Sprintf("%d_Consecutive_Absentees_%s.xlsx", b.Days(), date)
}

// Label is a human readable bucket name.
func (b Bucket) Label() string {
	if b == NewAbsentee {
		return "New Absentees"
	}
	return fmt.Sprintf("%d-Day Absentees", b.Days())
}

// ConsecutiveRun is the unbroken absence run ending at the current date.
type ConsecutiveRun struct {
	Length int
	Dates  []string // oldest first
}

// Member is one bucketed employee.
type Member struct {
	ID    string
	Row   int
	Dates []string
}

// Classification is the bucket membership of one run.
type Classification struct {
	Date    string
	Members map[Bucket][]Member
}

func NewClassification(date string) Classification {
	return Classification{Date: date, Members: make(map[Bucket][]Member)}
}

func (c Classification) Add(b Bucket, m Member) {
	c.Members[b] = append(c.Members[b], m)
}

func (c Classification) Count(b Bucket) int {
	return len(c.Members[b])
}

func (c Classification) Total() int {
	n := 0
	for _, m := range c.Members {
		n += len(m)
	}
	return n
}

func (c Classification) Empty() bool {
	return c.Total() == 0
}

// BucketOf returns the bucket an employee was placed in.
func (c Classification) BucketOf(id string) (Bucket, bool) {
	for _, b := range AllBuckets() {
		for _, m := range c.Members[b] {
			if m.ID == id {
				return b, true
			}
		}
	}
	return 0, false
}

// CellRef addresses a data cell of a report, zero-based, header excluded.
type CellRef struct {
	Row int
	Col int
}

// Report is a bucket sheet ready to be written.
type Report struct {
	Bucket     Bucket
	Date       string
	Header     []string
	Rows       [][]string
	Highlights []CellRef
}

// ReportFile is a report persisted by a run.
type ReportFile struct {
	Bucket Bucket
	Path   string
	Rows   int
}
