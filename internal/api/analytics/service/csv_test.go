package analyticsService

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"IntelliguardGolang/internal/api/analytics"
)

func TestBuildViolationsCSV(t *testing.T) {
	ts := time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)
	rows := []analytics.ViolationExportRow{
		{
			ID:            "01HV1",
			EmployeeName:  "Dina Wijaya",
			Department:    "Assembly",
			ViolationType: "no_helmet",
			Severity:      "CRITICAL",
			Confidence:    0.9312,
			Timestamp:     ts,
			Resolved:      false,
		},
		{
			ID:            "01HV2",
			EmployeeName:  "Budi Santoso",
			Department:    "Welding",
			ViolationType: "no_glove",
			Severity:      "MEDIUM",
			Confidence:    0.7,
			Timestamp:     ts.Add(time.Hour),
			Resolved:      true,
			ResolvedBy:    "supervisor1",
		},
	}

	payload, err := BuildViolationsCSV(rows)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"id", "employee_name", "department", "violation_type",
		"severity", "confidence", "timestamp", "resolved", "resolved_by",
	}, records[0])

	assert.Equal(t, []string{
		"01HV1", "Dina Wijaya", "Assembly", "no_helmet",
		"CRITICAL", "0.9312", "2025-06-15T08:30:00Z", "false", "",
	}, records[1])

	assert.Equal(t, "supervisor1", records[2][8])
	assert.Equal(t, "true", records[2][7])
}

func TestBuildViolationsCSVEmpty(t *testing.T) {
	payload, err := BuildViolationsCSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestParseExportRange(t *testing.T) {
	from, to, err := parseExportRange(analytics.ExportQuery{From: "2025-06-01", To: "2025-06-30"})
	require.NoError(t, err)
	assert.Equal(t, 2025, from.Year())
	assert.Equal(t, time.June, from.Month())
	assert.True(t, to.After(from))

	_, _, err = parseExportRange(analytics.ExportQuery{From: "junk"})
	assert.ErrorIs(t, err, analytics.ErrInvalidDateRange)

	_, _, err = parseExportRange(analytics.ExportQuery{From: "2025-06-30", To: "2025-06-01"})
	assert.ErrorIs(t, err, analytics.ErrInvalidDateRange)
}
