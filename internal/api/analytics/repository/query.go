package analyticsRepository

const (
	queryStatsOverview = `
SELECT
    (SELECT COUNT(*) FROM ppe_detections WHERE detection_timestamp >= :since)                          AS total_detections,
    (SELECT COUNT(*) FROM violations WHERE timestamp >= :since)                                        AS total_violations,
    (SELECT COUNT(*) FROM violations WHERE timestamp >= :since AND resolved = false)                   AS unresolved_violations,
    (SELECT COALESCE(AVG(confidence_score), 0) FROM ppe_detections WHERE detection_timestamp >= :since) AS average_confidence,
    (SELECT COUNT(*) FROM ppe_detections
        WHERE detection_timestamp >= :since AND compliance_status = 'COMPLIANT')                       AS compliant_detections,
    (SELECT COUNT(*) FROM employees WHERE is_active = true)                                            AS active_employees`

	queryViolationsByType = `
SELECT violation_type,
       severity,
       COUNT(*)                                        AS total,
       COUNT(*) FILTER (WHERE resolved = false)        AS unresolved
FROM violations
WHERE timestamp >= :since
GROUP BY violation_type, severity
ORDER BY total DESC`

	queryTrend = `
SELECT TO_CHAR(d.day, 'YYYY-MM-DD') AS day,
       COALESCE(det.cnt, 0)         AS detections,
       COALESCE(vio.cnt, 0)         AS violations
FROM generate_series(DATE(:since), CURRENT_DATE, INTERVAL '1 day') AS d(day)
LEFT JOIN (
    SELECT DATE(detection_timestamp) AS day, COUNT(*) AS cnt
    FROM ppe_detections
    WHERE detection_timestamp >= :since
    GROUP BY DATE(detection_timestamp)
) det ON det.day = d.day
LEFT JOIN (
    SELECT DATE(timestamp) AS day, COUNT(*) AS cnt
    FROM violations
    WHERE timestamp >= :since
    GROUP BY DATE(timestamp)
) vio ON vio.day = d.day
ORDER BY d.day`

	queryByDepartment = `
SELECT e.department,
       COUNT(d.id)                                                        AS detections,
       COALESCE(SUM(d.violation_count), 0)                                AS violations,
       COUNT(d.id) FILTER (WHERE d.compliance_status = 'COMPLIANT')       AS compliant
FROM ppe_detections d
JOIN employees e ON e.id = d.employee_id
WHERE d.detection_timestamp >= :since
GROUP BY e.department
ORDER BY e.department`

	queryGetViolationByID = `
SELECT id, detection_id, COALESCE(employee_id, '') AS employee_id, violation_type, severity,
       bbox_x, bbox_y, bbox_width, bbox_height, confidence, timestamp, resolved,
       COALESCE(resolved_by, '') AS resolved_by, resolved_at
FROM violations
    WHERE id = :id`

	queryResolveViolation = `
UPDATE violations
SET resolved = true,
    resolved_by = :resolved_by,
    resolved_at = :resolved_at
WHERE id = :id AND resolved = false`

	queryListViolationsForExport = `
SELECT v.id,
       COALESCE(e.first_name || ' ' || e.last_name, 'Unknown') AS employee_name,
       COALESCE(e.department, 'Unknown')                       AS department,
       v.violation_type,
       v.severity,
       v.confidence,
       v.timestamp,
       v.resolved,
       COALESCE(v.resolved_by, '')                             AS resolved_by
FROM violations v
LEFT JOIN employees e ON e.id = v.employee_id
WHERE v.timestamp >= :from_ts AND v.timestamp <= :to_ts
ORDER BY v.timestamp`
)
