package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/absentee"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/notification"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/validator"
)

const defaultRecipientName = "Employee"

type NotificationServiceImpl struct {
	absentee.ReportRepository
	sms        notification.SMSSender
	email      notification.EmailSender
	emailQuota int
}

// NewNotificationService wires the senders. A nil sender marks its channel unavailable.
func NewNotificationService(reportRepository absentee.ReportRepository, sms notification.SMSSender, email notification.EmailSender, emailQuota int) notification.Service {
	if emailQuota <= 0 {
		emailQuota = notification.DefaultEmailQuota
	}
	return &NotificationServiceImpl{
		ReportRepository: reportRepository,
		sms:              sms,
		email:            email,
		emailQuota:       emailQuota,
	}
}

// Dispatch implements notification.Service.
func (s *NotificationServiceImpl) Dispatch(ctx context.Context, req notification.DispatchRequest) (notification.DispatchResult, error) {
	if err := req.Validate(); err != nil {
		return notification.DispatchResult{}, err
	}

	quota := notification.NewQuota(s.emailQuota)
	result := notification.DispatchResult{
		Department: req.Department,
		Date:       req.Date,
	}

	for _, bucket := range absentee.NumberedBuckets() {
		if err := ctx.Err(); err != nil {
			return notification.DispatchResult{}, err
		}
		outcome := s.dispatchBucket(ctx, req, bucket, quota)
		slog.Info("Notification bucket processed",
			"department", req.Department,
			"date", req.Date,
			"bucket", bucket.String(),
			"sent", outcome.Sent,
			"failed", outcome.Failed,
			"skipped", outcome.Skipped,
			"summary", outcome.Summary(),
		)
		result.Outcomes = append(result.Outcomes, outcome)
	}

	result.QuotaUsed = quota.Used()
	return result, nil
}

func (s *NotificationServiceImpl) dispatchBucket(ctx context.Context, req notification.DispatchRequest, bucket absentee.Bucket, quota *notification.Quota) notification.BucketOutcome {
	channel := notification.ChannelFor(bucket)
	outcome := notification.BucketOutcome{Bucket: bucket, Channel: channel}

	table, err := s.ReportRepository.Load(ctx, req.Department, req.Date, bucket)
	if err != nil {
		if !errors.Is(err, absentee.ErrReportNotFound) {
			outcome.Found = true
			outcome.Error = err.Error()
		}
		return outcome
	}
	outcome.Found = true

	nameCol := findColumn(table, "name")
	contactCol := findColumn(table, channel.ContactColumn())
	if nameCol < 0 || contactCol < 0 {
		outcome.Error = fmt.Sprintf("%s: name or %s column not found", attendance.ErrMissingColumn, channel.ContactColumn())
		return outcome
	}

	if (channel == notification.ChannelSMS && s.sms == nil) || (channel == notification.ChannelEmail && s.email == nil) {
		outcome.Error = notification.ErrSenderUnavailable.Error()
		return outcome
	}

	quotaHit := false
	for _, row := range table.Rows {
		to := recipient(row, nameCol, contactCol)
		if to.Contact == "" {
			outcome.Skipped++
			continue
		}
		if channel == notification.ChannelEmail && !validator.IsValidEmail(to.Contact) {
			slog.Warn("Skipping malformed email address", "bucket", bucket.String(), "name", to.Name, "email", to.Contact)
			outcome.Skipped++
			continue
		}

		switch channel {
		case notification.ChannelSMS:
			err = s.sms.SendAbsenceNotice(ctx, to.Contact, to.Name, bucket.Days())
		case notification.ChannelEmail:
			if quota.Remaining() <= 0 {
				quotaHit = true
				outcome.Skipped++
				continue
			}
			err = s.email.SendAbsenceNotice(to.Contact, to.Name, bucket.Days())
			if err == nil {
				err = quota.Consume()
			}
		}

		if err != nil {
			outcome.Failed++
			slog.Error("Failed to notify absentee", "bucket", bucket.String(), "channel", string(channel), "name", to.Name, "error", err)
			continue
		}
		outcome.Sent++
	}

	if quotaHit {
		outcome.Error = notification.ErrQuotaExceeded.Error()
	}
	return outcome
}

// findColumn returns the first header containing fragment, case-insensitively.
func findColumn(table *attendance.Table, fragment string) int {
	for i, h := range table.Header {
		if strings.Contains(strings.ToLower(h), fragment) {
			return i
		}
	}
	return -1
}

func recipient(row attendance.Row, nameCol, contactCol int) notification.Recipient {
	to := notification.Recipient{Name: defaultRecipientName}
	if nameCol < len(row.Cells) {
		if name := strings.TrimSpace(row.Cells[nameCol]); name != "" {
			to.Name = name
		}
	}
	if contactCol < len(row.Cells) {
		to.Contact = strings.TrimSpace(row.Cells[contactCol])
	}
	return to
}
