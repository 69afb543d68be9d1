package email

import (
	"testing"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbsenceTemplates(t *testing.T) {
	svc, err := NewEmailService(config.SMTPConfig{Signature: "Plant HR"})
	require.NoError(t, err)
	impl := svc.(*emailServiceImpl)

	warning, err := impl.render("absence_warning.html", absenceEmailData{Name: "Alice", Days: 6, Signature: "Plant HR"})
	require.NoError(t, err)
	assert.Contains(t, warning, "Dear Alice")
	assert.Contains(t, warning, "absent for 6 consecutive days")
	assert.Contains(t, warning, "Plant HR")

	notice, err := impl.render("separation_notice.html", absenceEmailData{Name: "Bob", Days: 10})
	require.NoError(t, err)
	assert.Contains(t, notice, "job abandonment")
}

func TestSendAbsenceNotice(t *testing.T) {
	svc, err := NewEmailService(config.SMTPConfig{})
	require.NoError(t, err)

	// unconfigured SMTP skips the send
	assert.NoError(t, svc.SendAbsenceNotice("alice@example.com", "Alice", 6))
	assert.Error(t, svc.SendAbsenceNotice("alice@example.com", "Alice", 3))
}
