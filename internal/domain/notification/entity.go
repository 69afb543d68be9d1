package notification

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/absentee"
)

// DefaultEmailQuota is the number of emails one dispatch may send.
const DefaultEmailQuota = 300

// Channel is how a bucket's employees are contacted.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

// ChannelFor maps a numbered bucket onto its channel: SMS for 3 days, email otherwise.
func ChannelFor(b absentee.Bucket) Channel {
	if b == absentee.ThreeDay {
		return ChannelSMS
	}
	return ChannelEmail
}

// ContactColumn is the header fragment holding the channel's contact.
func (c Channel) ContactColumn() string {
	if c == ChannelSMS {
		return "phone"
	}
	return "email"
}

func (c Channel) Label() string {
	if c == ChannelSMS {
		return "SMS"
	}
	return "email"
}

// Recipient is one employee to notify.
type Recipient struct {
	Name    string
	Contact string
}

// SMSSender delivers absence notices by text message.
type SMSSender interface {
	SendAbsenceNotice(ctx context.Context, phone, name string, days int) error
}

// EmailSender delivers the 6-day warning and the 10-day separation notice.
type EmailSender interface {
	SendAbsenceNotice(to, name string, days int) error
}

// Quota counts emails sent by a single dispatch.
type Quota struct {
	limit int
	used  int
}

func NewQuota(limit int) *Quota {
	if limit < 0 {
		limit = 0
	}
	return &Quota{limit: limit}
}

func (q *Quota) Remaining() int {
	return q.limit - q.used
}

func (q *Quota) Used() int {
	return q.used
}

// Consume records one sent email.
func (q *Quota) Consume() error {
	if q.used >= q.limit {
		return ErrQuotaExceeded
	}
	q.used++
	return nil
}

// BucketOutcome is the dispatch result of one numbered bucket.
type BucketOutcome struct {
	Bucket  absentee.Bucket `json:"bucket"`
	Found   bool            `json:"found"`
	Channel Channel         `json:"channel"`
	Sent    int             `json:"sent"`
	Failed  int             `json:"failed"`
	Skipped int             `json:"skipped"`
	Error   string          `json:"error,omitempty"`
}

// Summary is a one-line status of the bucket.
func (o BucketOutcome) Summary() string {
	days := o.Bucket.Days()
	switch {
	case !o.Found:
		return fmt.Sprintf("%d-day report not found", days)
	case o.Error != "":
		return fmt.Sprintf("%d-day %s report failed: %s", days, o.Channel.Label(), o.Error)
	}
	return fmt.Sprintf("%d-day %s report sent", days, o.Channel.Label())
}
