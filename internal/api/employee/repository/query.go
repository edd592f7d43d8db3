package employeeRepository

const (
	queryCreateEmployee = `
INSERT INTO employees (id, username, password_hash, first_name, last_name, email,
                       department, role, is_active, created_at, updated_at)
VALUES (:id, :username, :password_hash, :first_name, :last_name, :email,
        :department, :role, :is_active, :created_at, :updated_at)`

	queryGetEmployeeByID = `
SELECT id, username, password_hash, first_name, last_name, email, department,
       role, COALESCE(face_encoding, '') AS face_encoding, is_active, created_at, updated_at
FROM employees
    WHERE id = :id`

	queryListEmployees = `
SELECT id, username, password_hash, first_name, last_name, email, department,
       role, COALESCE(face_encoding, '') AS face_encoding, is_active, created_at, updated_at
FROM employees
WHERE (:department = '' OR department = :department)
  AND (:active_only = false OR is_active = true)
ORDER BY last_name, first_name
LIMIT :limit OFFSET :offset`

	queryCountEmployees = `
SELECT COUNT(*)
FROM employees
WHERE (:department = '' OR department = :department)
  AND (:active_only = false OR is_active = true)`

	queryListAdminsEmails = `
SELECT email
FROM employees
WHERE role = 'admin' AND is_active = true`

	queryListEnrolledEmployees = `
SELECT id, username, password_hash, first_name, last_name, email, department,
       role, face_encoding, is_active, created_at, updated_at
FROM employees
WHERE is_active = true AND face_encoding IS NOT NULL AND face_encoding <> ''`

	queryUpdateEmployee = `
UPDATE employees
SET first_name = :first_name,
    last_name = :last_name,
    email = :email,
    department = :department,
    role = :role,
    updated_at = :updated_at
WHERE id = :id`

	queryUpdateFaceEncoding = `
UPDATE employees
SET face_encoding = :face_encoding,
    updated_at = :updated_at
WHERE id = :id`

	querySetEmployeeActive = `
UPDATE employees
SET is_active = :is_active,
    updated_at = :updated_at
WHERE id = :id`

	queryCreateAuditLog = `
INSERT INTO audit_logs (id, employee_id, action, details, ip_address, timestamp)
VALUES (:id, :employee_id, :action, :details, :ip_address, :timestamp)`
)
