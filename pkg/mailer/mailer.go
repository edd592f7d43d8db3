package mailer

import (
	"encoding/base64"
	"fmt"
	"mime"
	smtpPkg "net/smtp"
	"os"
	"strings"
	"time"
)

type ViolationAlert struct {
	ViolationType string
	Severity      string
	EmployeeName  string
	Department    string
	Confidence    float64
	Timestamp     time.Time
}

type DepartmentSummary struct {
	Department     string
	Detections     int
	Violations     int
	ComplianceRate float64
}

type ViolationTypeCount struct {
	Type  string
	Count int
}

type DailyReport struct {
	ComplianceRate    float64
	TotalDetections   int
	TotalViolations   int
	DepartmentSummary []DepartmentSummary
	TopViolations     []ViolationTypeCount
	CSV               []byte
}

type RegistrationNotice struct {
	Username   string
	FirstName  string
	LastName   string
	Email      string
	Department string
	Role       string
}

type ItfMailer interface {
	SendViolationAlert(alert ViolationAlert, recipients []string) error
	SendDailyReport(report DailyReport, recipients []string) error
	SendRegistrationNotice(notice RegistrationNotice, recipients []string) error
}

type mailer struct {
	auth     smtpPkg.Auth
	mail     string
	hostPort string
}

func New() ItfMailer {
	host := os.Getenv("SMTP_SERVER")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")
	auth := smtpPkg.PlainAuth("", mail, password, host)

	return &mailer{
		auth:     auth,
		mail:     mail,
		hostPort: fmt.Sprintf("%s:%s", host, port),
	}
}

func (m *mailer) SendViolationAlert(alert ViolationAlert, recipients []string) error {
	subject := fmt.Sprintf("PPE Violation Alert - %s", alert.ViolationType)
	body := violationAlertBody(alert)
	msg := m.buildHTMLMessage(recipients, subject, body, nil, "")
	return smtpPkg.SendMail(m.hostPort, m.auth, m.mail, recipients, msg)
}

func (m *mailer) SendDailyReport(report DailyReport, recipients []string) error {
	subject := fmt.Sprintf("Daily PPE Compliance Report - %s", time.Now().Format("2006-01-02"))
	body := dailyReportBody(report)
	msg := m.buildHTMLMessage(recipients, subject, body, report.CSV, "daily_violations_report.csv")
	return smtpPkg.SendMail(m.hostPort, m.auth, m.mail, recipients, msg)
}

func (m *mailer) SendRegistrationNotice(notice RegistrationNotice, recipients []string) error {
	subject := fmt.Sprintf("New Employee Registration - %s %s", notice.FirstName, notice.LastName)
	body := registrationNoticeBody(notice)
	msg := m.buildHTMLMessage(recipients, subject, body, nil, "")
	return smtpPkg.SendMail(m.hostPort, m.auth, m.mail, recipients, msg)
}

// buildHTMLMessage assembles a MIME message with an HTML part and an
// optional CSV attachment.
func (m *mailer) buildHTMLMessage(recipients []string, subject, htmlBody string, attachment []byte, attachmentName string) []byte {
	var sb strings.Builder

	boundary := "intelliguard-mime-boundary"

	sb.WriteString(fmt.Sprintf("From: %s\r\n", m.mail))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(recipients, ", ")))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject)))
	sb.WriteString("MIME-Version: 1.0\r\n")

	if attachment == nil {
		sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		sb.WriteString(htmlBody)
		return []byte(sb.String())
	}

	sb.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=%s\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody)
	sb.WriteString("\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: application/octet-stream\r\n")
	sb.WriteString("Content-Transfer-Encoding: base64\r\n")
	sb.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=%s\r\n\r\n", attachmentName))
	sb.WriteString(base64.StdEncoding.EncodeToString(attachment))
	sb.WriteString("\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	return []byte(sb.String())
}

func severityColor(severity string) string {
	switch severity {
	case "CRITICAL":
		return "#dc3545"
	case "HIGH":
		return "#fd7e14"
	case "LOW":
		return "#28a745"
	default:
		return "#ffc107"
	}
}

func complianceColor(rate float64) string {
	switch {
	case rate >= 90:
		return "#28a745"
	case rate >= 70:
		return "#ffc107"
	default:
		return "#dc3545"
	}
}

func violationAlertBody(alert ViolationAlert) string {
	color := severityColor(alert.Severity)
	title := strings.Title(strings.ReplaceAll(alert.ViolationType, "_", " "))

	return fmt.Sprintf(`
<html>
  <body style="font-family: Arial, sans-serif; padding: 20px; background-color: #f5f5f5;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
      <div style="text-align: center; border-bottom: 2px solid #FF6B35; padding-bottom: 20px; margin-bottom: 30px;">
        <h1 style="color: #FF6B35; margin: 0;">PPE Violation Alert</h1>
        <p style="color: #666;">Intelliguard Safety Monitoring System</p>
      </div>
      <div style="background-color: #fff3f3; border-left: 4px solid %s; padding: 20px; margin-bottom: 20px;">
        <h2 style="color: %s; margin: 0 0 15px 0;">%s Detected</h2>
        <p style="margin: 0;"><strong>Severity:</strong> <span style="color: %s; font-weight: bold;">%s</span></p>
      </div>
      <table style="width: 100%%; border-collapse: collapse;">
        <tr><td style="padding: 8px 0; font-weight: bold;">Employee:</td><td>%s</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold;">Department:</td><td>%s</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold;">Detection Time:</td><td>%s</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold;">Confidence:</td><td>%.2f</td></tr>
      </table>
      <div style="background-color: #fff8e1; border: 1px solid #ffc107; padding: 15px; margin-top: 20px;">
        <h3 style="color: #e65100; margin: 0 0 10px 0;">Immediate Action Required</h3>
        <p style="margin: 0;">Please ensure the employee is properly equipped with required PPE before continuing work activities.</p>
      </div>
      <p style="margin-top: 30px; color: #888; font-size: 14px; text-align: center;">
        This is an automated alert from Intelliguard PPE Monitoring System<br>Generated on %s
      </p>
    </div>
  </body>
</html>`,
		color, color, title, color, alert.Severity,
		alert.EmployeeName, alert.Department,
		alert.Timestamp.Format("2006-01-02 15:04:05"), alert.Confidence,
		time.Now().Format("2006-01-02 at 15:04:05"))
}

func dailyReportBody(report DailyReport) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`
<html>
  <body style="font-family: Arial, sans-serif; padding: 20px; background-color: #f5f5f5;">
    <div style="max-width: 800px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
      <div style="text-align: center; border-bottom: 2px solid #2E86AB; padding-bottom: 20px; margin-bottom: 30px;">
        <h1 style="color: #2E86AB; margin: 0;">Daily PPE Compliance Report</h1>
        <p style="color: #666;">%s</p>
      </div>
      <table style="width: 100%%; margin-bottom: 30px;"><tr>
        <td style="text-align: center; padding: 20px; background-color: #f8f9fa; border-left: 4px solid %s;">
          <h3 style="margin: 0 0 10px 0;">Overall Compliance</h3>
          <p style="margin: 0; font-size: 32px; font-weight: bold; color: %s;">%.1f%%</p>
        </td>
        <td style="text-align: center; padding: 20px; background-color: #f8f9fa; border-left: 4px solid #17a2b8;">
          <h3 style="margin: 0 0 10px 0;">Total Detections</h3>
          <p style="margin: 0; font-size: 32px; font-weight: bold; color: #17a2b8;">%d</p>
        </td>
        <td style="text-align: center; padding: 20px; background-color: #f8f9fa; border-left: 4px solid #dc3545;">
          <h3 style="margin: 0 0 10px 0;">Violations</h3>
          <p style="margin: 0; font-size: 32px; font-weight: bold; color: #dc3545;">%d</p>
        </td>
      </tr></table>
      <h3 style="margin: 0 0 15px 0;">Department Summary</h3>
      <table style="width: 100%%; border-collapse: collapse; border: 1px solid #ddd;">
        <thead><tr style="background-color: #2E86AB; color: white;">
          <th style="padding: 12px; text-align: left;">Department</th>
          <th style="padding: 12px; text-align: center;">Detections</th>
          <th style="padding: 12px; text-align: center;">Violations</th>
          <th style="padding: 12px; text-align: center;">Compliance Rate</th>
        </tr></thead>
        <tbody>`,
		time.Now().Format("Monday, January 2, 2006"),
		complianceColor(report.ComplianceRate), complianceColor(report.ComplianceRate), report.ComplianceRate,
		report.TotalDetections, report.TotalViolations))

	for _, dept := range report.DepartmentSummary {
		sb.WriteString(fmt.Sprintf(`
          <tr style="border-bottom: 1px solid #ddd;">
            <td style="padding: 10px;">%s</td>
            <td style="padding: 10px; text-align: center;">%d</td>
            <td style="padding: 10px; text-align: center;">%d</td>
            <td style="padding: 10px; text-align: center; color: %s; font-weight: bold;">%.1f%%</td>
          </tr>`,
			dept.Department, dept.Detections, dept.Violations,
			complianceColor(dept.ComplianceRate), dept.ComplianceRate))
	}

	sb.WriteString(`
        </tbody>
      </table>
      <h3 style="margin: 30px 0 15px 0;">Top Violation Types</h3>
      <div style="background-color: #fff3f3; border: 1px solid #dc3545; padding: 15px;">`)

	top := report.TopViolations
	if len(top) > 5 {
		top = top[:5]
	}
	for _, v := range top {
		sb.WriteString(fmt.Sprintf(`
        <p style="margin: 5px 0;"><strong>%s:</strong> %d occurrences</p>`,
			strings.Title(strings.ReplaceAll(v.Type, "_", " ")), v.Count))
	}

	sb.WriteString(fmt.Sprintf(`
      </div>
      <div style="background-color: #e8f4f8; border: 1px solid #17a2b8; padding: 15px; margin-top: 20px;">
        <h3 style="color: #0c5460; margin: 0 0 10px 0;">Recommendations</h3>
        <ul style="margin: 0; padding-left: 20px;">
          <li>Schedule additional safety training for departments with compliance rates below 90%%</li>
          <li>Ensure adequate PPE equipment is available at all workstations</li>
          <li>Review and reinforce safety protocols with employees</li>
        </ul>
      </div>
      <p style="margin-top: 30px; color: #888; font-size: 14px; text-align: center;">
        This automated report was generated by Intelliguard PPE Monitoring System<br>Report generated on %s
      </p>
    </div>
  </body>
</html>`, time.Now().Format("2006-01-02 at 15:04:05")))

	return sb.String()
}

func registrationNoticeBody(notice RegistrationNotice) string {
	return fmt.Sprintf(`
<html>
  <body style="font-family: Arial, sans-serif; padding: 20px; background-color: #f5f5f5;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
      <div style="text-align: center; border-bottom: 2px solid #28a745; padding-bottom: 20px; margin-bottom: 30px;">
        <h1 style="color: #28a745; margin: 0;">New Employee Registration</h1>
        <p style="color: #666;">Intelliguard Safety Monitoring System</p>
      </div>
      <table style="width: 100%%; border-collapse: collapse;">
        <tr><td style="padding: 8px 0; font-weight: bold;">Name:</td><td>%s %s</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold;">Username:</td><td>%s</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold;">Email:</td><td>%s</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold;">Department:</td><td>%s</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold;">Role:</td><td>%s</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold;">Registration Date:</td><td>%s</td></tr>
      </table>
      <p style="margin-top: 30px; color: #888; font-size: 14px; text-align: center;">
        This notification was automatically generated by Intelliguard PPE Monitoring System
      </p>
    </div>
  </body>
</html>`,
		notice.FirstName, notice.LastName, notice.Username, notice.Email,
		notice.Department, strings.Title(notice.Role),
		time.Now().Format("2006-01-02 15:04:05"))
}
