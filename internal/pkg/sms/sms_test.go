package sms

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendAbsenceNotice(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{
			"number":   q.Get("number"),
			"text":     q.Get("text"),
			"senderid": q.Get("senderid"),
			"route":    q.Get("route"),
		}
		_, _ = w.Write([]byte("queued"))
	}))
	defer server.Close()

	client := NewClient(config.SMSConfig{URL: server.URL, SenderID: "ACME", Route: "02", Signature: "ACME HR"})
	require.NoError(t, client.SendAbsenceNotice(context.Background(), " 0811 ", "Alice", 3))

	assert.Equal(t, "0811", got["number"])
	assert.Equal(t, "ACME", got["senderid"])
	assert.Equal(t, "02", got["route"])
	assert.Equal(t, "Dear Alice, you have been absent for 3 consecutive days. Please report or contact your supervisor. ACME HR", got["text"])
}

func TestSendAbsenceNoticeGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(config.SMSConfig{URL: server.URL})
	err := client.SendAbsenceNotice(context.Background(), "0811", "Alice", 3)

	var gwErr *GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, http.StatusUnauthorized, gwErr.StatusCode)
	assert.Equal(t, "invalid credentials", gwErr.Body)
}

func TestSendAbsenceNoticeWithoutGateway(t *testing.T) {
	client := NewClient(config.SMSConfig{})
	assert.NoError(t, client.SendAbsenceNotice(context.Background(), "0811", "Alice", 3))
	assert.Error(t, client.SendAbsenceNotice(context.Background(), "", "Alice", 3))
}
