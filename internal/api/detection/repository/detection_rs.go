package detectionRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"IntelliguardGolang/internal/api/detection"
	"IntelliguardGolang/internal/entity"
	contextPkg "IntelliguardGolang/pkg/context"
)

type DetectionDB struct {
	ID                 sql.NullString `db:"id"`
	EmployeeID         sql.NullString `db:"employee_id"`
	ImagePath          sql.NullString `db:"image_path"`
	DetectionTimestamp sql.NullTime   `db:"detection_timestamp"`
	TotalDetections    int            `db:"total_detections"`
	ViolationCount     int            `db:"violation_count"`
	ComplianceStatus   sql.NullString `db:"compliance_status"`
	ConfidenceScore    float64        `db:"confidence_score"`
	ProcessedBy        sql.NullString `db:"processed_by"`
	Notes              sql.NullString `db:"notes"`
}

func (r *detectionRepo) Create(c context.Context, det entity.PPEDetection) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":                  det.ID,
		"employee_id":         nullableString(det.EmployeeID),
		"image_path":          det.ImagePath,
		"detection_timestamp": det.DetectionTimestamp,
		"total_detections":    det.TotalDetections,
		"violation_count":     det.ViolationCount,
		"compliance_status":   det.ComplianceStatus,
		"confidence_score":    det.ConfidenceScore,
		"processed_by":        det.ProcessedBy,
		"notes":               det.Notes,
	}

	query, args, err := sqlx.Named(queryCreateDetection, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for Create detection")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating detection")
		return err
	}

	return nil
}

func (r *detectionRepo) GetByID(c context.Context, id string) (entity.PPEDetection, error) {
	requestID := contextPkg.GetRequestID(c)
	var det DetectionDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetDetectionByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID named query preparation err")
		return entity.PPEDetection{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&det); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("GetByID no rows found")
			return entity.PPEDetection{}, detection.ErrDetectionNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID execution err")
		return entity.PPEDetection{}, err
	}

	return makeDetection(det), nil
}

func (r *detectionRepo) List(c context.Context, filter detection.ListDetectionsQuery) ([]entity.PPEDetection, int, error) {
	requestID := contextPkg.GetRequestID(c)

	argsKV := map[string]interface{}{
		"employee_id": filter.EmployeeID,
		"status":      filter.Status,
		"from_ts":     filter.From,
		"to_ts":       filter.To,
		"limit":       filter.Limit,
		"offset":      (filter.Page - 1) * filter.Limit,
	}

	query, args, err := sqlx.Named(queryListDetections, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("List named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	rows, err := r.q.QueryxContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("List execution err")
		return nil, 0, err
	}
	defer rows.Close()

	detections := make([]entity.PPEDetection, 0)
	for rows.Next() {
		var det DetectionDB
		if err := rows.StructScan(&det); err != nil {
			return nil, 0, err
		}
		detections = append(detections, makeDetection(det))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := sqlx.Named(queryCountDetections, argsKV)
	if err != nil {
		return nil, 0, err
	}
	countQuery = r.q.Rebind(countQuery)

	var total int
	if err := r.q.QueryRowxContext(c, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return detections, total, nil
}

func makeDetection(det DetectionDB) entity.PPEDetection {
	return entity.PPEDetection{
		ID:                 det.ID.String,
		EmployeeID:         det.EmployeeID.String,
		ImagePath:          det.ImagePath.String,
		DetectionTimestamp: det.DetectionTimestamp.Time,
		TotalDetections:    det.TotalDetections,
		ViolationCount:     det.ViolationCount,
		ComplianceStatus:   det.ComplianceStatus.String,
		ConfidenceScore:    det.ConfidenceScore,
		ProcessedBy:        det.ProcessedBy.String,
		Notes:              det.Notes.String,
	}
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

type ViolationDB struct {
	ID            sql.NullString `db:"id"`
	DetectionID   sql.NullString `db:"detection_id"`
	EmployeeID    sql.NullString `db:"employee_id"`
	ViolationType sql.NullString `db:"violation_type"`
	Severity      sql.NullString `db:"severity"`
	BBoxX         float64        `db:"bbox_x"`
	BBoxY         float64        `db:"bbox_y"`
	BBoxWidth     float64        `db:"bbox_width"`
	BBoxHeight    float64        `db:"bbox_height"`
	Confidence    float64        `db:"confidence"`
	Timestamp     sql.NullTime   `db:"timestamp"`
	Resolved      bool           `db:"resolved"`
	ResolvedBy    sql.NullString `db:"resolved_by"`
	ResolvedAt    sql.NullTime   `db:"resolved_at"`
}

func (r *violationRepo) Create(c context.Context, v entity.Violation) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":             v.ID,
		"detection_id":   v.DetectionID,
		"employee_id":    nullableString(v.EmployeeID),
		"violation_type": v.ViolationType,
		"severity":       v.Severity,
		"bbox_x":         v.BBoxX,
		"bbox_y":         v.BBoxY,
		"bbox_width":     v.BBoxWidth,
		"bbox_height":    v.BBoxHeight,
		"confidence":     v.Confidence,
		"timestamp":      time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateViolation, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for Create violation")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating violation")
		return err
	}

	return nil
}

func (r *violationRepo) ListByDetectionID(c context.Context, detectionID string) ([]entity.Violation, error) {
	requestID := contextPkg.GetRequestID(c)

	argsKV := map[string]interface{}{
		"detection_id": detectionID,
	}

	query, args, err := sqlx.Named(queryListViolationsByDetection, argsKV)
	if err != nil {
		return nil, err
	}
	query = r.q.Rebind(query)

	rows, err := r.q.QueryxContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListByDetectionID execution err")
		return nil, err
	}
	defer rows.Close()

	violations := make([]entity.Violation, 0)
	for rows.Next() {
		var v ViolationDB
		if err := rows.StructScan(&v); err != nil {
			return nil, err
		}
		violations = append(violations, makeViolation(v))
	}

	return violations, rows.Err()
}

func makeViolation(v ViolationDB) entity.Violation {
	out := entity.Violation{
		ID:            v.ID.String,
		DetectionID:   v.DetectionID.String,
		EmployeeID:    v.EmployeeID.String,
		ViolationType: v.ViolationType.String,
		Severity:      v.Severity.String,
		BBoxX:         v.BBoxX,
		BBoxY:         v.BBoxY,
		BBoxWidth:     v.BBoxWidth,
		BBoxHeight:    v.BBoxHeight,
		Confidence:    v.Confidence,
		Timestamp:     v.Timestamp.Time,
		Resolved:      v.Resolved,
		ResolvedBy:    v.ResolvedBy.String,
	}
	if v.ResolvedAt.Valid {
		t := v.ResolvedAt.Time
		out.ResolvedAt = &t
	}
	return out
}
