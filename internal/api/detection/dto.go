package detection

import (
	"time"

	"IntelliguardGolang/pkg/facematch"
	"IntelliguardGolang/pkg/ppe"
)

type ProcessDetectionRequest struct {
	EmployeeID string `form:"employee_id" validate:"omitempty,max=50"`
	Notes      string `form:"notes" validate:"omitempty,max=500"`
}

type DetectionResponse struct {
	ID                 string     `json:"id"`
	EmployeeID         string     `json:"employee_id,omitempty"`
	ImageURL           string     `json:"image_url,omitempty"`
	DetectionTimestamp time.Time  `json:"detection_timestamp"`
	ProcessedBy        string     `json:"processed_by"`
	Notes              string     `json:"notes,omitempty"`
	Report             ppe.Report `json:"report"`
}

type ListDetectionsQuery struct {
	EmployeeID string `query:"employee_id"`
	Status     string `query:"status" validate:"omitempty,oneof=COMPLIANT PARTIAL VIOLATION ERROR"`
	From       string `query:"from"`
	To         string `query:"to"`
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
}

type DetectionSummary struct {
	ID                 string    `json:"id"`
	EmployeeID         string    `json:"employee_id,omitempty"`
	DetectionTimestamp time.Time `json:"detection_timestamp"`
	TotalDetections    int       `json:"total_detections"`
	ViolationCount     int       `json:"violation_count"`
	ComplianceStatus   string    `json:"compliance_status"`
	ConfidenceScore    float64   `json:"confidence_score"`
	ProcessedBy        string    `json:"processed_by"`
}

type ListDetectionsResponse struct {
	Detections []DetectionSummary `json:"detections"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

type IdentifyResponse struct {
	Username   string         `json:"username"`
	FirstName  string         `json:"first_name"`
	LastName   string         `json:"last_name"`
	Department string         `json:"department"`
	Confidence float64        `json:"confidence"`
	Location   facematch.Rect `json:"location"`
	ImageURL   string         `json:"image_url,omitempty"`
}

type DescribeResponse struct {
	Description string `json:"description"`
}

// FrameResult is the payload pushed to websocket clients for every frame.
type FrameResult struct {
	Report      ppe.Report `json:"report"`
	ProcessedAt time.Time  `json:"processed_at"`
	Error       string     `json:"error,omitempty"`
}
