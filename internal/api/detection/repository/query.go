package detectionRepository

const (
	queryCreateDetection = `
INSERT INTO ppe_detections (id, employee_id, image_path, detection_timestamp, total_detections,
                            violation_count, compliance_status, confidence_score, processed_by, notes)
VALUES (:id, :employee_id, :image_path, :detection_timestamp, :total_detections,
        :violation_count, :compliance_status, :confidence_score, :processed_by, :notes)`

	queryGetDetectionByID = `
SELECT id, COALESCE(employee_id, '') AS employee_id, COALESCE(image_path, '') AS image_path,
       detection_timestamp, total_detections, violation_count, compliance_status,
       confidence_score, COALESCE(processed_by, '') AS processed_by, COALESCE(notes, '') AS notes
FROM ppe_detections
    WHERE id = :id`

	queryListDetections = `
SELECT id, COALESCE(employee_id, '') AS employee_id, COALESCE(image_path, '') AS image_path,
       detection_timestamp, total_detections, violation_count, compliance_status,
       confidence_score, COALESCE(processed_by, '') AS processed_by, COALESCE(notes, '') AS notes
FROM ppe_detections
WHERE (:employee_id = '' OR employee_id = :employee_id)
  AND (:status = '' OR compliance_status = :status)
  AND (:from_ts = '' OR detection_timestamp >= CAST(:from_ts AS timestamptz))
  AND (:to_ts = '' OR detection_timestamp <= CAST(:to_ts AS timestamptz))
ORDER BY detection_timestamp DESC
LIMIT :limit OFFSET :offset`

	queryCountDetections = `
SELECT COUNT(*)
FROM ppe_detections
WHERE (:employee_id = '' OR employee_id = :employee_id)
  AND (:status = '' OR compliance_status = :status)
  AND (:from_ts = '' OR detection_timestamp >= CAST(:from_ts AS timestamptz))
  AND (:to_ts = '' OR detection_timestamp <= CAST(:to_ts AS timestamptz))`

	queryCreateViolation = `
INSERT INTO violations (id, detection_id, employee_id, violation_type, severity,
                        bbox_x, bbox_y, bbox_width, bbox_height, confidence, timestamp, resolved)
VALUES (:id, :detection_id, :employee_id, :violation_type, :severity,
        :bbox_x, :bbox_y, :bbox_width, :bbox_height, :confidence, :timestamp, false)`

	queryListViolationsByDetection = `
SELECT id, detection_id, COALESCE(employee_id, '') AS employee_id, violation_type, severity,
       bbox_x, bbox_y, bbox_width, bbox_height, confidence, timestamp, resolved,
       COALESCE(resolved_by, '') AS resolved_by, resolved_at
FROM violations
WHERE detection_id = :detection_id
ORDER BY timestamp`

	queryGetEmployeeByID = `
SELECT id, username, password_hash, first_name, last_name, email, department,
       role, COALESCE(face_encoding, '') AS face_encoding, is_active, created_at, updated_at
FROM employees
    WHERE id = :id`

	queryGetEmployeeByUsername = `
SELECT id, username, password_hash, first_name, last_name, email, department,
       role, COALESCE(face_encoding, '') AS face_encoding, is_active, created_at, updated_at
FROM employees
    WHERE username = :username`

	queryListSupervisorsEmails = `
SELECT email
FROM employees
WHERE role IN ('admin', 'supervisor') AND is_active = true`
)
