package mailer

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildHTMLMessagePlain(t *testing.T) {
	m := &mailer{mail: "alerts@intelliguard.local"}

	msg := string(m.buildHTMLMessage(
		[]string{"a@example.com", "b@example.com"},
		"Test Subject",
		"<html><body>hello</body></html>",
		nil, "",
	))

	assert.Contains(t, msg, "From: alerts@intelliguard.local\r\n")
	assert.Contains(t, msg, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, msg, "Subject: Test Subject\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=utf-8\r\n\r\n")
	assert.Contains(t, msg, "<body>hello</body>")
	assert.NotContains(t, msg, "multipart/mixed")
}

func TestBuildHTMLMessageWithAttachment(t *testing.T) {
	m := &mailer{mail: "alerts@intelliguard.local"}
	csv := []byte("id,type\n1,no_helmet\n")

	msg := string(m.buildHTMLMessage(
		[]string{"safety@example.com"},
		"Daily Report",
		"<html></html>",
		csv, "violations.csv",
	))

	assert.Contains(t, msg, "Content-Type: multipart/mixed; boundary=")
	assert.Contains(t, msg, "Content-Disposition: attachment; filename=violations.csv")
	assert.Contains(t, msg, base64.StdEncoding.EncodeToString(csv))

	// Multipart messages terminate with a closing boundary marker.
	assert.True(t, strings.Contains(msg, "--\r\n"))
}

func TestViolationAlertBody(t *testing.T) {
	body := violationAlertBody(ViolationAlert{
		ViolationType: "no_helmet",
		Severity:      "CRITICAL",
		EmployeeName:  "Jordan Price",
		Department:    "Welding",
		Confidence:    0.91,
		Timestamp:     time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC),
	})

	assert.Contains(t, body, "No Helmet Detected")
	assert.Contains(t, body, "CRITICAL")
	assert.Contains(t, body, "Jordan Price")
	assert.Contains(t, body, "Welding")
	assert.Contains(t, body, "2025-06-15 08:30:00")
	assert.Contains(t, body, severityColor("CRITICAL"))
}

func TestSeverityColor(t *testing.T) {
	assert.Equal(t, "#dc3545", severityColor("CRITICAL"))
	assert.Equal(t, "#fd7e14", severityColor("HIGH"))
	assert.Equal(t, "#28a745", severityColor("LOW"))
	assert.Equal(t, "#ffc107", severityColor("MEDIUM"))
}
