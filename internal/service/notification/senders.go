package notification

import (
	"log/slog"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/config"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/notification"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/email"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/sms"
)

// NewSenders builds the configured notification channels. An unconfigured
// channel stays nil so dispatch reports it as unavailable.
func NewSenders(cfg *config.Config) (notification.SMSSender, notification.EmailSender, error) {
	var (
		smsSender   notification.SMSSender
		emailSender notification.EmailSender
	)

	if cfg.SMS.URL != "" {
		smsSender = sms.NewClient(cfg.SMS)
	} else {
		slog.Warn("SMS gateway not configured, 3-day notices are disabled")
	}

	if cfg.SMTP.Host != "" {
		svc, err := email.NewEmailService(cfg.SMTP)
		if err != nil {
			return nil, nil, err
		}
		emailSender = svc
	} else {
		slog.Warn("SMTP not configured, 6 and 10-day notices are disabled")
	}

	return smsSender, emailSender, nil
}
