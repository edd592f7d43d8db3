package analyticsService

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"IntelliguardGolang/internal/api/analytics"
)

// BuildViolationsCSV renders export rows into a CSV document with a fixed
// header. Timestamps are RFC 3339 in UTC.
func BuildViolationsCSV(rows []analytics.ViolationExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{
		"id", "employee_name", "department", "violation_type",
		"severity", "confidence", "timestamp", "resolved", "resolved_by",
	}); err != nil {
		return nil, err
	}

	for _, row := range rows {
		record := []string{
			row.ID,
			row.EmployeeName,
			row.Department,
			row.ViolationType,
			row.Severity,
			strconv.FormatFloat(row.Confidence, 'f', 4, 64),
			row.Timestamp.UTC().Format(time.RFC3339),
			strconv.FormatBool(row.Resolved),
			row.ResolvedBy,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
