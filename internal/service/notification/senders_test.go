package notification

import (
	"testing"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSenders(t *testing.T) {
	smsSender, emailSender, err := NewSenders(&config.Config{})
	require.NoError(t, err)
	assert.Nil(t, smsSender)
	assert.Nil(t, emailSender)

	smsSender, emailSender, err = NewSenders(&config.Config{
		SMS:  config.SMSConfig{URL: "http://gateway.local/send"},
		SMTP: config.SMTPConfig{Host: "smtp.local", Port: 587},
	})
	require.NoError(t, err)
	assert.NotNil(t, smsSender)
	assert.NotNil(t, emailSender)
}
