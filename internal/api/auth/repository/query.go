package authRepository

const (
	queryGetEmployeeByUsername = `
SELECT id, username, password_hash, first_name, last_name, email, department,
       role, COALESCE(face_encoding, '') AS face_encoding, is_active, created_at, updated_at
FROM employees
    WHERE username = :username`

	queryGetEmployeeByID = `
SELECT id, username, password_hash, first_name, last_name, email, department,
       role, COALESCE(face_encoding, '') AS face_encoding, is_active, created_at, updated_at
FROM employees
    WHERE id = :id`

	queryCreateAuditLog = `
INSERT INTO audit_logs (id, employee_id, action, details, ip_address, timestamp)
VALUES (:id, :employee_id, :action, :details, :ip_address, :timestamp)`
)
