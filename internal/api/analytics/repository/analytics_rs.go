package analyticsRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"IntelliguardGolang/internal/api/analytics"
	"IntelliguardGolang/internal/entity"
	contextPkg "IntelliguardGolang/pkg/context"
)

type overviewDB struct {
	TotalDetections      int     `db:"total_detections"`
	TotalViolations      int     `db:"total_violations"`
	UnresolvedViolations int     `db:"unresolved_violations"`
	AverageConfidence    float64 `db:"average_confidence"`
	CompliantDetections  int     `db:"compliant_detections"`
	ActiveEmployees      int     `db:"active_employees"`
}

func (r *statsRepo) Overview(c context.Context, since time.Time) (analytics.StatsResponse, error) {
	requestID := contextPkg.GetRequestID(c)
	var row overviewDB

	query, args, err := sqlx.Named(queryStatsOverview, map[string]interface{}{"since": since})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Overview named query preparation err")
		return analytics.StatsResponse{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Overview execution err")
		return analytics.StatsResponse{}, err
	}

	complianceRate := 0.0
	if row.TotalDetections > 0 {
		complianceRate = float64(row.CompliantDetections) / float64(row.TotalDetections) * 100
	}

	return analytics.StatsResponse{
		TotalDetections:      row.TotalDetections,
		TotalViolations:      row.TotalViolations,
		UnresolvedViolations: row.UnresolvedViolations,
		ComplianceRate:       complianceRate,
		AverageConfidence:    row.AverageConfidence,
		ActiveEmployees:      row.ActiveEmployees,
	}, nil
}

func (r *statsRepo) ViolationsByType(c context.Context, since time.Time) ([]analytics.ViolationTypeSummary, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryViolationsByType, map[string]interface{}{"since": since})
	if err != nil {
		return nil, err
	}
	query = r.q.Rebind(query)

	rows, err := r.q.QueryxContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ViolationsByType execution err")
		return nil, err
	}
	defer rows.Close()

	summaries := make([]analytics.ViolationTypeSummary, 0)
	for rows.Next() {
		var s struct {
			ViolationType string `db:"violation_type"`
			Severity      string `db:"severity"`
			Total         int    `db:"total"`
			Unresolved    int    `db:"unresolved"`
		}
		if err := rows.StructScan(&s); err != nil {
			return nil, err
		}
		summaries = append(summaries, analytics.ViolationTypeSummary{
			ViolationType: s.ViolationType,
			Severity:      s.Severity,
			Count:         s.Total,
			Unresolved:    s.Unresolved,
		})
	}

	return summaries, rows.Err()
}

func (r *statsRepo) Trend(c context.Context, since time.Time) ([]analytics.TrendPoint, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryTrend, map[string]interface{}{"since": since})
	if err != nil {
		return nil, err
	}
	query = r.q.Rebind(query)

	rows, err := r.q.QueryxContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Trend execution err")
		return nil, err
	}
	defer rows.Close()

	points := make([]analytics.TrendPoint, 0)
	for rows.Next() {
		var p struct {
			Day        string `db:"day"`
			Detections int    `db:"detections"`
			Violations int    `db:"violations"`
		}
		if err := rows.StructScan(&p); err != nil {
			return nil, err
		}
		points = append(points, analytics.TrendPoint{
			Date:       p.Day,
			Detections: p.Detections,
			Violations: p.Violations,
		})
	}

	return points, rows.Err()
}

func (r *statsRepo) ByDepartment(c context.Context, since time.Time) ([]analytics.DepartmentStat, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryByDepartment, map[string]interface{}{"since": since})
	if err != nil {
		return nil, err
	}
	query = r.q.Rebind(query)

	rows, err := r.q.QueryxContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ByDepartment execution err")
		return nil, err
	}
	defer rows.Close()

	stats := make([]analytics.DepartmentStat, 0)
	for rows.Next() {
		var s struct {
			Department string `db:"department"`
			Detections int    `db:"detections"`
			Violations int    `db:"violations"`
			Compliant  int    `db:"compliant"`
		}
		if err := rows.StructScan(&s); err != nil {
			return nil, err
		}
		rate := 0.0
		if s.Detections > 0 {
			rate = float64(s.Compliant) / float64(s.Detections) * 100
		}
		stats = append(stats, analytics.DepartmentStat{
			Department:     s.Department,
			Detections:     s.Detections,
			Violations:     s.Violations,
			ComplianceRate: rate,
		})
	}

	return stats, rows.Err()
}

type violationDB struct {
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

func (r *violationRepo) GetByID(c context.Context, id string) (entity.Violation, error) {
	requestID := contextPkg.GetRequestID(c)
	var v violationDB

	query, args, err := sqlx.Named(queryGetViolationByID, map[string]interface{}{"id": id})
	if err != nil {
		return entity.Violation{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("GetByID no violation found")
			return entity.Violation{}, analytics.ErrViolationNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID execution err")
		return entity.Violation{}, err
	}

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
	return out, nil
}

func (r *violationRepo) Resolve(c context.Context, id string, resolvedBy string, resolvedAt time.Time) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryResolveViolation, map[string]interface{}{
		"id":          id,
		"resolved_by": resolvedBy,
		"resolved_at": resolvedAt,
	})
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when resolving violation")
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return analytics.ErrViolationAlreadyClosed
	}

	return nil
}

func (r *violationRepo) ListForExport(c context.Context, from, to time.Time) ([]analytics.ViolationExportRow, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryListViolationsForExport, map[string]interface{}{
		"from_ts": from,
		"to_ts":   to,
	})
	if err != nil {
		return nil, err
	}
	query = r.q.Rebind(query)

	rows, err := r.q.QueryxContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListForExport execution err")
		return nil, err
	}
	defer rows.Close()

	out := make([]analytics.ViolationExportRow, 0)
	for rows.Next() {
		var row struct {
			ID            string    `db:"id"`
			EmployeeName  string    `db:"employee_name"`
			Department    string    `db:"department"`
			ViolationType string    `db:"violation_type"`
			Severity      string    `db:"severity"`
			Confidence    float64   `db:"confidence"`
			Timestamp     time.Time `db:"timestamp"`
			Resolved      bool      `db:"resolved"`
			ResolvedBy    string    `db:"resolved_by"`
		}
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		out = append(out, analytics.ViolationExportRow(row))
	}

	return out, rows.Err()
}
