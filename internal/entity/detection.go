package entity

import "time"

type PPEDetection struct {
	ID                 string    `db:"id"`
	EmployeeID         string    `db:"employee_id"`
	ImagePath          string    `db:"image_path"`
	DetectionTimestamp time.Time `db:"detection_timestamp"`
	TotalDetections    int       `db:"total_detections"`
	ViolationCount     int       `db:"violation_count"`
	ComplianceStatus   string    `db:"compliance_status"`
	ConfidenceScore    float64   `db:"confidence_score"`
	ProcessedBy        string    `db:"processed_by"`
	Notes              string    `db:"notes"`
}

type Violation struct {
	ID            string     `db:"id"`
	DetectionID   string     `db:"detection_id"`
	EmployeeID    string     `db:"employee_id"`
	ViolationType string     `db:"violation_type"`
	Severity      string     `db:"severity"`
	BBoxX         float64    `db:"bbox_x"`
	BBoxY         float64    `db:"bbox_y"`
	BBoxWidth     float64    `db:"bbox_width"`
	BBoxHeight    float64    `db:"bbox_height"`
	Confidence    float64    `db:"confidence"`
	Timestamp     time.Time  `db:"timestamp"`
	Resolved      bool       `db:"resolved"`
	ResolvedBy    string     `db:"resolved_by"`
	ResolvedAt    *time.Time `db:"resolved_at"`
}
