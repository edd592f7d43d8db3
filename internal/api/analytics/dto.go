package analytics

import "time"

type StatsResponse struct {
	TotalDetections      int     `json:"total_detections"`
	TotalViolations      int     `json:"total_violations"`
	UnresolvedViolations int     `json:"unresolved_violations"`
	ComplianceRate       float64 `json:"compliance_rate"`
	AverageConfidence    float64 `json:"average_confidence"`
	ActiveEmployees      int     `json:"active_employees"`
	WindowDays           int     `json:"window_days"`
	CachedAt             string  `json:"cached_at,omitempty"`
}

type ViolationTypeSummary struct {
	ViolationType string `json:"violation_type"`
	Severity      string `json:"severity"`
	Count         int    `json:"count"`
	Unresolved    int    `json:"unresolved"`
}

type ViolationsSummaryResponse struct {
	WindowDays int                    `json:"window_days"`
	ByType     []ViolationTypeSummary `json:"by_type"`
}

type TrendPoint struct {
	Date       string `json:"date"`
	Detections int    `json:"detections"`
	Violations int    `json:"violations"`
}

type TrendResponse struct {
	WindowDays int          `json:"window_days"`
	Points     []TrendPoint `json:"points"`
}

type DepartmentStat struct {
	Department     string  `json:"department"`
	Detections     int     `json:"detections"`
	Violations     int     `json:"violations"`
	ComplianceRate float64 `json:"compliance_rate"`
}

type ResolveViolationRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=500"`
}

type ResolveViolationResponse struct {
	ID         string    `json:"id"`
	Resolved   bool      `json:"resolved"`
	ResolvedBy string    `json:"resolved_by"`
	ResolvedAt time.Time `json:"resolved_at"`
}

type ExportQuery struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// ViolationExportRow is one line of the CSV export.
type ViolationExportRow struct {
	ID            string
	EmployeeName  string
	Department    string
	ViolationType string
	Severity      string
	Confidence    float64
	Timestamp     time.Time
	Resolved      bool
	ResolvedBy    string
}
