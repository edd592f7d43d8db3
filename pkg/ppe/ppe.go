package ppe

import (
	"gonum.org/v1/gonum/stat"
)

// Severity ranks how urgent a violation is.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Status is the aggregate compliance verdict for one frame.
type Status string

const (
	StatusCompliant Status = "COMPLIANT"
	StatusPartial   Status = "PARTIAL"
	StatusViolation Status = "VIOLATION"
	StatusError     Status = "ERROR"
)

// Classes is the full label vocabulary the detection model is trained on.
var Classes = []string{
	"glove", "goggles", "helmet", "mask", "no-suit", "no_glove",
	"no_goggles", "no_helmet", "no_mask", "no_shoes", "shoes", "suit",
}

// ViolationClasses are the labels that signify missing PPE.
var ViolationClasses = []string{
	"no_glove", "no_goggles", "no_helmet", "no_mask", "no_shoes", "no-suit",
}

var severityMap = map[string]Severity{
	"no_helmet":  SeverityCritical,
	"no_mask":    SeverityHigh,
	"no-suit":    SeverityHigh,
	"no_goggles": SeverityMedium,
	"no_glove":   SeverityMedium,
	"no_shoes":   SeverityMedium,
}

var violationSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(ViolationClasses))
	for _, class := range ViolationClasses {
		set[class] = struct{}{}
	}
	return set
}()

// RawDetection is one box straight out of the model, already filtered by the
// model's own confidence threshold.
type RawDetection struct {
	ClassName  string     `json:"class_name"`
	Confidence float64    `json:"confidence"`
	BBox       [4]float64 `json:"bbox"`
}

// Detection is a recognized item with derived box dimensions.
type Detection struct {
	ClassName  string     `json:"class_name"`
	Confidence float64    `json:"confidence"`
	BBox       [4]float64 `json:"bbox"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
}

// Violation classifies one Detection whose class marks missing equipment.
type Violation struct {
	ViolationType string   `json:"violation_type"`
	Severity      Severity `json:"severity"`
	Confidence    float64  `json:"confidence"`
	BBoxX         float64  `json:"bbox_x"`
	BBoxY         float64  `json:"bbox_y"`
	BBoxWidth     float64  `json:"bbox_width"`
	BBoxHeight    float64  `json:"bbox_height"`
}

// Report is the compliance verdict for a single frame.
type Report struct {
	Detections        []Detection `json:"detections"`
	Violations        []Violation `json:"violations"`
	TotalDetections   int         `json:"total_detections"`
	ViolationCount    int         `json:"violation_count"`
	ComplianceStatus  Status      `json:"compliance_status"`
	AverageConfidence float64     `json:"average_confidence"`
}

// IsViolationClass reports whether class marks missing equipment.
func IsViolationClass(class string) bool {
	_, ok := violationSet[class]
	return ok
}

// SeverityFor maps a violation type to its severity. Unknown types fall back
// to MEDIUM so the lookup is total.
func SeverityFor(violationType string) Severity {
	if severity, ok := severityMap[violationType]; ok {
		return severity
	}
	return SeverityMedium
}

// Classify turns raw model output into a compliance Report. When the upstream
// inference call itself failed, pass its error as inferErr: the result is a
// degraded ERROR report and the failure never propagates to the caller.
func Classify(raw []RawDetection, inferErr error) Report {
	if inferErr != nil {
		return Report{
			Detections:       []Detection{},
			Violations:       []Violation{},
			ComplianceStatus: StatusError,
		}
	}

	detections := make([]Detection, 0, len(raw))
	violations := make([]Violation, 0)
	confidences := make([]float64, 0, len(raw))

	for _, r := range raw {
		width := r.BBox[2] - r.BBox[0]
		height := r.BBox[3] - r.BBox[1]

		detections = append(detections, Detection{
			ClassName:  r.ClassName,
			Confidence: r.Confidence,
			BBox:       r.BBox,
			Width:      width,
			Height:     height,
		})
		confidences = append(confidences, r.Confidence)

		if IsViolationClass(r.ClassName) {
			violations = append(violations, Violation{
				ViolationType: r.ClassName,
				Severity:      SeverityFor(r.ClassName),
				Confidence:    r.Confidence,
				BBoxX:         r.BBox[0],
				BBoxY:         r.BBox[1],
				BBoxWidth:     width,
				BBoxHeight:    height,
			})
		}
	}

	avgConfidence := 0.0
	if len(confidences) > 0 {
		avgConfidence = stat.Mean(confidences, nil)
	}

	return Report{
		Detections:        detections,
		Violations:        violations,
		TotalDetections:   len(detections),
		ViolationCount:    len(violations),
		ComplianceStatus:  statusFor(len(detections), len(violations)),
		AverageConfidence: avgConfidence,
	}
}

// statusFor applies the compliance rule: no violations means compliant, half
// or more of the detections being violations means outright violation.
func statusFor(totalDetections, violationCount int) Status {
	switch {
	case violationCount == 0:
		return StatusCompliant
	case float64(violationCount) >= float64(totalDetections)*0.5:
		return StatusViolation
	default:
		return StatusPartial
	}
}
