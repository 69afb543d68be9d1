package sms

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/config"
)

const requestTimeout = 15 * time.Second

// Client sends text messages through an HTTP GET gateway
type Client struct {
	cfg        config.SMSConfig
	httpClient *http.Client
}

func NewClient(cfg config.SMSConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// GatewayError is a non-2xx gateway reply
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("sms gateway error [%d]: %s", e.StatusCode, e.Body)
}

// AbsenceText is the message body sent to an absentee
func (c *Client) AbsenceText(name string, days int) string {
	text := fmt.Sprintf("Dear %s, you have been absent for %d consecutive days. Please report or contact your supervisor.", name, days)
	if c.cfg.Signature != "" {
		text += " " + c.cfg.Signature
	}
	return text
}

// SendAbsenceNotice texts an absentee about their run length
func (c *Client) SendAbsenceNotice(ctx context.Context, phone, name string, days int) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return fmt.Errorf("missing phone number for %s", name)
	}

	// Skip sending if the gateway is not configured
	if c.cfg.URL == "" {
		slog.Warn("SMS gateway not configured, skipping SMS send", "name", name)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(phone, c.AbsenceText(name, days)), nil)
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach sms gateway: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &GatewayError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	slog.Info("SMS sent", "name", name, "days", days, "response", strings.TrimSpace(string(body)))
	return nil
}

func (c *Client) requestURL(phone, text string) string {
	params := url.Values{}
	params.Set("user", c.cfg.User)
	params.Set("password", c.cfg.Password)
	params.Set("senderid", c.cfg.SenderID)
	params.Set("channel", c.cfg.Channel)
	params.Set("DCS", "0")
	params.Set("flashsms", "0")
	params.Set("number", phone)
	params.Set("text", text)
	params.Set("route", c.cfg.Route)
	params.Set("peid", c.cfg.PEID)
	params.Set("DLTTemplateId", c.cfg.TemplateID)

	sep := "?"
	if strings.Contains(c.cfg.URL, "?") {
		sep = "&"
	}
	return c.cfg.URL + sep + params.Encode()
}
