package assistant

type QueryRequest struct {
	Question string `json:"question" validate:"required,min=5,max=500"`
}

type QueryResponse struct {
	Question string                   `json:"question"`
	SQL      string                   `json:"sql"`
	Rows     []map[string]interface{} `json:"rows"`
	RowCount int                      `json:"row_count"`
	Answer   string                   `json:"answer"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type QuickStatsResponse struct {
	TotalDetections      int     `json:"total_detections"`
	TotalViolations      int     `json:"total_violations"`
	UnresolvedViolations int     `json:"unresolved_violations"`
	ComplianceRate       float64 `json:"compliance_rate"`
	WindowDays           int     `json:"window_days"`
	Summary              string  `json:"summary"`
}
