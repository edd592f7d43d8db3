package analyticsService

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"IntelliguardGolang/internal/api/analytics"
	contextPkg "IntelliguardGolang/pkg/context"
	"IntelliguardGolang/pkg/mailer"
)

// SendDailyReport assembles yesterday-to-now stats and mails them with the
// violation CSV attached.
func (s *analyticsService) SendDailyReport(c context.Context, recipients []string) error {
	requestID := contextPkg.GetRequestID(c)

	if len(recipients) == 0 {
		return analytics.ErrNoReportRecipients
	}

	repo, err := s.analyticsRepo.NewClient(false)
	if err != nil {
		return err
	}

	since := time.Now().AddDate(0, 0, -1)

	overview, err := repo.Stats.Overview(c, since)
	if err != nil {
		return err
	}

	departments, err := repo.Stats.ByDepartment(c, since)
	if err != nil {
		return err
	}

	byType, err := repo.Stats.ViolationsByType(c, since)
	if err != nil {
		return err
	}

	exportRows, err := repo.Violations.ListForExport(c, since, time.Now())
	if err != nil {
		return err
	}

	csvPayload, err := BuildViolationsCSV(exportRows)
	if err != nil {
		return err
	}

	report := mailer.DailyReport{
		ComplianceRate:    overview.ComplianceRate,
		TotalDetections:   overview.TotalDetections,
		TotalViolations:   overview.TotalViolations,
		DepartmentSummary: make([]mailer.DepartmentSummary, 0, len(departments)),
		TopViolations:     make([]mailer.ViolationTypeCount, 0, len(byType)),
		CSV:               csvPayload,
	}
	for _, d := range departments {
		report.DepartmentSummary = append(report.DepartmentSummary, mailer.DepartmentSummary{
			Department:     d.Department,
			Detections:     d.Detections,
			Violations:     d.Violations,
			ComplianceRate: d.ComplianceRate,
		})
	}
	for _, t := range byType {
		report.TopViolations = append(report.TopViolations, mailer.ViolationTypeCount{
			Type:  t.ViolationType,
			Count: t.Count,
		})
	}

	if err := s.mailer.SendDailyReport(report, recipients); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to send daily report")
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"recipients": len(recipients),
	}).Info("Daily report sent")

	return nil
}
