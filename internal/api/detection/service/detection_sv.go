package detectionService

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/sirupsen/logrus"

	"IntelliguardGolang/internal/api/detection"
	"IntelliguardGolang/internal/entity"
	"IntelliguardGolang/pkg/annotate"
	contextPkg "IntelliguardGolang/pkg/context"
	"IntelliguardGolang/pkg/facematch"
	"IntelliguardGolang/pkg/mailer"
	"IntelliguardGolang/pkg/ppe"
)

func (s *detectionService) ProcessUpload(c context.Context, frame image.Image, raw []byte, req detection.ProcessDetectionRequest, actor entity.EmployeeLoginData) (detection.DetectionResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	rawDetections, inferErr := s.inference.ProcessPPEFrame(raw)
	if inferErr != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      inferErr.Error(),
		}).Error("PPE inference failed, storing degraded report")
	}
	report := ppe.Classify(rawDetections, inferErr)

	imagePath := s.uploadAnnotated(c, frame, report)

	repo, err := s.detectionRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return detection.DetectionResponse{}, err
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return detection.DetectionResponse{}, err
	}

	now := time.Now()
	det := entity.PPEDetection{
		ID:                 id,
		EmployeeID:         req.EmployeeID,
		ImagePath:          imagePath,
		DetectionTimestamp: now,
		TotalDetections:    report.TotalDetections,
		ViolationCount:     report.ViolationCount,
		ComplianceStatus:   string(report.ComplianceStatus),
		ConfidenceScore:    report.AverageConfidence,
		ProcessedBy:        actor.Username,
		Notes:              req.Notes,
	}

	if err := repo.Detections.Create(c, det); err != nil {
		_ = repo.Rollback()
		return detection.DetectionResponse{}, err
	}

	for _, v := range report.Violations {
		violationID, err := s.utils.NewULIDFromTimestamp(time.Now())
		if err != nil {
			_ = repo.Rollback()
			return detection.DetectionResponse{}, err
		}
		if err := repo.Violations.Create(c, entity.Violation{
			ID:            violationID,
			DetectionID:   id,
			EmployeeID:    req.EmployeeID,
			ViolationType: v.ViolationType,
			Severity:      string(v.Severity),
			BBoxX:         v.BBoxX,
			BBoxY:         v.BBoxY,
			BBoxWidth:     v.BBoxWidth,
			BBoxHeight:    v.BBoxHeight,
			Confidence:    v.Confidence,
		}); err != nil {
			_ = repo.Rollback()
			return detection.DetectionResponse{}, err
		}
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit detection transaction")
		return detection.DetectionResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":        requestID,
		"detection_id":      id,
		"compliance_status": report.ComplianceStatus,
		"violation_count":   report.ViolationCount,
	}).Info("Detection stored")

	s.alertOnSevereViolations(c, req.EmployeeID, report)

	imageURL := ""
	if imagePath != "" {
		if url, err := s.s3Client.PresignUrl(imagePath); err == nil {
			imageURL = url
		}
	}

	return detection.DetectionResponse{
		ID:                 id,
		EmployeeID:         req.EmployeeID,
		ImageURL:           imageURL,
		DetectionTimestamp: now,
		ProcessedBy:        actor.Username,
		Notes:              req.Notes,
		Report:             report,
	}, nil
}

// ProcessFrame backs the live websocket stream. A failed inference round trip
// yields an ERROR report rather than tearing the loop down.
func (s *detectionService) ProcessFrame(frame []byte) detection.FrameResult {
	rawDetections, inferErr := s.inference.ProcessPPEFrame(frame)
	report := ppe.Classify(rawDetections, inferErr)

	result := detection.FrameResult{
		Report:      report,
		ProcessedAt: time.Now(),
	}
	if inferErr != nil {
		result.Error = inferErr.Error()
	}
	return result
}

func (s *detectionService) GetByID(c context.Context, id string) (detection.DetectionResponse, error) {
	repo, err := s.detectionRepo.NewClient(false)
	if err != nil {
		return detection.DetectionResponse{}, err
	}

	det, err := repo.Detections.GetByID(c, id)
	if err != nil {
		return detection.DetectionResponse{}, err
	}

	violations, err := repo.Violations.ListByDetectionID(c, det.ID)
	if err != nil {
		return detection.DetectionResponse{}, err
	}

	report := ppe.Report{
		Detections:        []ppe.Detection{},
		Violations:        make([]ppe.Violation, 0, len(violations)),
		TotalDetections:   det.TotalDetections,
		ViolationCount:    det.ViolationCount,
		ComplianceStatus:  ppe.Status(det.ComplianceStatus),
		AverageConfidence: det.ConfidenceScore,
	}
	for _, v := range violations {
		report.Violations = append(report.Violations, ppe.Violation{
			ViolationType: v.ViolationType,
			Severity:      ppe.Severity(v.Severity),
			Confidence:    v.Confidence,
			BBoxX:         v.BBoxX,
			BBoxY:         v.BBoxY,
			BBoxWidth:     v.BBoxWidth,
			BBoxHeight:    v.BBoxHeight,
		})
	}

	imageURL := ""
	if det.ImagePath != "" {
		if url, err := s.s3Client.PresignUrl(det.ImagePath); err == nil {
			imageURL = url
		}
	}

	return detection.DetectionResponse{
		ID:                 det.ID,
		EmployeeID:         det.EmployeeID,
		ImageURL:           imageURL,
		DetectionTimestamp: det.DetectionTimestamp,
		ProcessedBy:        det.ProcessedBy,
		Notes:              det.Notes,
		Report:             report,
	}, nil
}

func (s *detectionService) List(c context.Context, filter detection.ListDetectionsQuery) (detection.ListDetectionsResponse, error) {
	repo, err := s.detectionRepo.NewClient(false)
	if err != nil {
		return detection.ListDetectionsResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	detections, total, err := repo.Detections.List(c, filter)
	if err != nil {
		return detection.ListDetectionsResponse{}, err
	}

	res := detection.ListDetectionsResponse{
		Detections: make([]detection.DetectionSummary, 0, len(detections)),
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, det := range detections {
		res.Detections = append(res.Detections, detection.DetectionSummary{
			ID:                 det.ID,
			EmployeeID:         det.EmployeeID,
			DetectionTimestamp: det.DetectionTimestamp,
			TotalDetections:    det.TotalDetections,
			ViolationCount:     det.ViolationCount,
			ComplianceStatus:   det.ComplianceStatus,
			ConfidenceScore:    det.ConfidenceScore,
			ProcessedBy:        det.ProcessedBy,
		})
	}

	return res, nil
}

func (s *detectionService) Identify(c context.Context, frame image.Image) (detection.IdentifyResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	match, err := s.matcher.Recognize(frame)
	if err != nil {
		switch {
		case errors.Is(err, facematch.ErrNoFaceDetected):
			return detection.IdentifyResponse{}, detection.ErrNoFaceInImage
		case errors.Is(err, facematch.ErrNotRecognized):
			return detection.IdentifyResponse{}, detection.ErrFaceNotRecognized
		default:
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Face recognition failed")
			return detection.IdentifyResponse{}, err
		}
	}

	repo, err := s.detectionRepo.NewClient(false)
	if err != nil {
		return detection.IdentifyResponse{}, err
	}

	emp, err := repo.Employees.GetByUsername(c, match.IdentityKey)
	if err != nil {
		return detection.IdentifyResponse{}, err
	}

	res := detection.IdentifyResponse{
		Username:   emp.Username,
		FirstName:  emp.FirstName,
		LastName:   emp.LastName,
		Department: emp.Department,
		Confidence: match.Confidence,
		Location:   match.Location,
	}

	if imagePath := s.uploadFaceFrame(c, frame, match); imagePath != "" {
		if url, err := s.s3Client.PresignUrl(imagePath); err == nil {
			res.ImageURL = url
		}
	}

	return res, nil
}

func (s *detectionService) uploadFaceFrame(c context.Context, frame image.Image, match facematch.Match) string {
	requestID := contextPkg.GetRequestID(c)

	annotated := annotate.FaceBox(frame, match)
	payload, err := s.utils.EncodeJPEG(annotated)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to encode identified frame")
		return ""
	}

	path, err := s.s3Client.UploadBytes("identify.jpg", "image/jpeg", payload)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to upload identified frame")
		return ""
	}

	return path
}

const describePrompt = `Describe this workplace scene. Note how many people are visible,
what protective equipment they appear to wear or lack, and any visible hazards.
Keep the description under 120 words.`

func (s *detectionService) Describe(c context.Context, base64Image string) (detection.DescribeResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	text, err := s.gemini.AnalyzeImage(c, base64Image, describePrompt)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Scene description failed")
		return detection.DescribeResponse{}, err
	}

	return detection.DescribeResponse{Description: text}, nil
}

func (s *detectionService) uploadAnnotated(c context.Context, frame image.Image, report ppe.Report) string {
	requestID := contextPkg.GetRequestID(c)

	if frame == nil || report.ComplianceStatus == ppe.StatusError {
		return ""
	}

	annotated := annotate.DetectionBoxes(frame, report.Detections)
	payload, err := s.utils.EncodeJPEG(annotated)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to encode annotated frame")
		return ""
	}

	path, err := s.s3Client.UploadBytes("detection.jpg", "image/jpeg", payload)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to upload annotated frame")
		return ""
	}

	return path
}

func (s *detectionService) alertOnSevereViolations(c context.Context, employeeID string, report ppe.Report) {
	requestID := contextPkg.GetRequestID(c)

	var severe *ppe.Violation
	for i := range report.Violations {
		v := &report.Violations[i]
		if v.Severity == ppe.SeverityCritical {
			severe = v
			break
		}
		if v.Severity == ppe.SeverityHigh && severe == nil {
			severe = v
		}
	}
	if severe == nil {
		return
	}

	repo, err := s.detectionRepo.NewClient(false)
	if err != nil {
		return
	}

	recipients, err := repo.Employees.ListSupervisorsEmails(c)
	if err != nil || len(recipients) == 0 {
		return
	}

	employeeName := "Unknown"
	department := "Unknown"
	if employeeID != "" {
		if emp, err := repo.Employees.GetByID(c, employeeID); err == nil {
			employeeName = emp.FirstName + " " + emp.LastName
			department = emp.Department
		}
	}

	alert := mailer.ViolationAlert{
		ViolationType: severe.ViolationType,
		Severity:      string(severe.Severity),
		EmployeeName:  employeeName,
		Department:    department,
		Confidence:    severe.Confidence,
		Timestamp:     time.Now(),
	}

	if err := s.mailer.SendViolationAlert(alert, recipients); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to send violation alert")
	}
}

