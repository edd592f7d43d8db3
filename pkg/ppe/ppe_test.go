package ppe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(class string, conf float64) RawDetection {
	return RawDetection{
		ClassName:  class,
		Confidence: conf,
		BBox:       [4]float64{10, 20, 110, 220},
	}
}

func TestClassify_AllCompliant(t *testing.T) {
	report := Classify([]RawDetection{
		raw("helmet", 0.9),
		raw("mask", 0.85),
		raw("glove", 0.7),
	}, nil)

	assert.Equal(t, 3, report.TotalDetections)
	assert.Equal(t, 0, report.ViolationCount)
	assert.Equal(t, StatusCompliant, report.ComplianceStatus)
	assert.Empty(t, report.Violations)
}

func TestClassify_HalfViolationsIsViolation(t *testing.T) {
	// Exactly 1 of 2 meets the >= 0.5 boundary.
	report := Classify([]RawDetection{
		raw("helmet", 0.9),
		raw("no_mask", 0.8),
	}, nil)

	assert.Equal(t, 2, report.TotalDetections)
	assert.Equal(t, 1, report.ViolationCount)
	assert.Equal(t, StatusViolation, report.ComplianceStatus)
}

func TestClassify_MinorityViolationsIsPartial(t *testing.T) {
	report := Classify([]RawDetection{
		raw("helmet", 0.9),
		raw("mask", 0.9),
		raw("no_glove", 0.6),
	}, nil)

	assert.Equal(t, 3, report.TotalDetections)
	assert.Equal(t, 1, report.ViolationCount)
	assert.Equal(t, StatusPartial, report.ComplianceStatus)
}

func TestClassify_SingleViolation(t *testing.T) {
	report := Classify([]RawDetection{raw("no_helmet", 0.95)}, nil)

	assert.Equal(t, 1, report.TotalDetections)
	assert.Equal(t, 1, report.ViolationCount)
	assert.Equal(t, StatusViolation, report.ComplianceStatus)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, SeverityCritical, report.Violations[0].Severity)
}

func TestClassify_EmptyInput(t *testing.T) {
	report := Classify(nil, nil)

	assert.Equal(t, 0, report.TotalDetections)
	assert.Equal(t, 0, report.ViolationCount)
	assert.Equal(t, StatusCompliant, report.ComplianceStatus)
	assert.Zero(t, report.AverageConfidence)
}

func TestClassify_InferenceErrorDegradesToErrorReport(t *testing.T) {
	report := Classify([]RawDetection{raw("no_helmet", 0.95)}, errors.New("model unavailable"))

	assert.Equal(t, StatusError, report.ComplianceStatus)
	assert.Equal(t, 0, report.TotalDetections)
	assert.Equal(t, 0, report.ViolationCount)
	assert.Empty(t, report.Detections)
	assert.Empty(t, report.Violations)
	assert.Zero(t, report.AverageConfidence)
}

func TestClassify_AverageConfidenceIncludesViolations(t *testing.T) {
	report := Classify([]RawDetection{
		raw("helmet", 0.9),
		raw("no_mask", 0.7),
	}, nil)

	assert.InDelta(t, 0.8, report.AverageConfidence, 1e-9)
}

func TestClassify_DerivedBoxDimensions(t *testing.T) {
	report := Classify([]RawDetection{{
		ClassName:  "no_shoes",
		Confidence: 0.66,
		BBox:       [4]float64{5, 10, 55, 90},
	}}, nil)

	require.Len(t, report.Detections, 1)
	assert.Equal(t, 50.0, report.Detections[0].Width)
	assert.Equal(t, 80.0, report.Detections[0].Height)

	require.Len(t, report.Violations, 1)
	assert.Equal(t, 5.0, report.Violations[0].BBoxX)
	assert.Equal(t, 10.0, report.Violations[0].BBoxY)
	assert.Equal(t, 50.0, report.Violations[0].BBoxWidth)
	assert.Equal(t, 80.0, report.Violations[0].BBoxHeight)
}

func TestSeverityFor_Table(t *testing.T) {
	cases := map[string]Severity{
		"no_helmet":  SeverityCritical,
		"no_mask":    SeverityHigh,
		"no-suit":    SeverityHigh,
		"no_goggles": SeverityMedium,
		"no_glove":   SeverityMedium,
		"no_shoes":   SeverityMedium,
		"no_cape":    SeverityMedium,
		"":           SeverityMedium,
	}

	for violationType, want := range cases {
		assert.Equal(t, want, SeverityFor(violationType), "severity for %q", violationType)
	}
}

func TestIsViolationClass(t *testing.T) {
	for _, class := range ViolationClasses {
		assert.True(t, IsViolationClass(class), "class %q", class)
	}
	for _, class := range []string{"helmet", "mask", "glove", "goggles", "shoes", "suit"} {
		assert.False(t, IsViolationClass(class), "class %q", class)
	}
}
