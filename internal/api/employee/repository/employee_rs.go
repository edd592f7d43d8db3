package employeeRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"IntelliguardGolang/internal/api/employee"
	"IntelliguardGolang/internal/entity"
	contextPkg "IntelliguardGolang/pkg/context"
)

type EmployeeDB struct {
	ID           sql.NullString `db:"id"`
	Username     sql.NullString `db:"username"`
	PasswordHash sql.NullString `db:"password_hash"`
	FirstName    sql.NullString `db:"first_name"`
	LastName     sql.NullString `db:"last_name"`
	Email        sql.NullString `db:"email"`
	Department   sql.NullString `db:"department"`
	Role         sql.NullString `db:"role"`
	FaceEncoding sql.NullString `db:"face_encoding"`
	IsActive     bool           `db:"is_active"`
	CreatedAt    sql.NullTime   `db:"created_at"`
	UpdatedAt    sql.NullTime   `db:"updated_at"`
}

func (r *employeeRepository) Create(c context.Context, emp entity.Employee) error {
	requestID := contextPkg.GetRequestID(c)
	now := time.Now()
	argsKV := map[string]interface{}{
		"id":            emp.ID,
		"username":      emp.Username,
		"password_hash": emp.PasswordHash,
		"first_name":    emp.FirstName,
		"last_name":     emp.LastName,
		"email":         emp.Email,
		"department":    emp.Department,
		"role":          emp.Role,
		"is_active":     true,
		"created_at":    now,
		"updated_at":    now,
	}

	query, args, err := sqlx.Named(queryCreateEmployee, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for Create employee")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "employees_username_key" {
					r.log.WithFields(logrus.Fields{
						"request_id": requestID,
						"username":   emp.Username,
					}).Warn("Username already exists")
					return employee.ErrUsernameAlreadyExists
				}
				if pqErr.Constraint == "employees_email_key" {
					r.log.WithFields(logrus.Fields{
						"request_id": requestID,
					}).Warn("Email already exists")
					return employee.ErrEmailAlreadyExists
				}
			}
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating employee")
		return err
	}

	return nil
}

func (r *employeeRepository) GetByID(c context.Context, id string) (entity.Employee, error) {
	requestID := contextPkg.GetRequestID(c)
	var emp EmployeeDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetEmployeeByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID named query preparation err")
		return entity.Employee{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&emp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("GetByID no rows found")
			return entity.Employee{}, employee.ErrEmployeeNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID execution err")
		return entity.Employee{}, err
	}

	return r.makeEmployee(emp), nil
}

func (r *employeeRepository) List(c context.Context, filter employee.ListEmployeesQuery) ([]entity.Employee, int, error) {
	requestID := contextPkg.GetRequestID(c)

	argsKV := map[string]interface{}{
		"department":  filter.Department,
		"active_only": filter.ActiveOnly,
		"limit":       filter.Limit,
		"offset":      (filter.Page - 1) * filter.Limit,
	}

	query, args, err := sqlx.Named(queryListEmployees, argsKV)
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

	employees := make([]entity.Employee, 0)
	for rows.Next() {
		var emp EmployeeDB
		if err := rows.StructScan(&emp); err != nil {
			return nil, 0, err
		}
		employees = append(employees, r.makeEmployee(emp))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := sqlx.Named(queryCountEmployees, argsKV)
	if err != nil {
		return nil, 0, err
	}
	countQuery = r.q.Rebind(countQuery)

	var total int
	if err := r.q.QueryRowxContext(c, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("List count execution err")
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *employeeRepository) ListAdminsEmails(c context.Context) ([]string, error) {
	requestID := contextPkg.GetRequestID(c)

	rows, err := r.q.QueryxContext(c, r.q.Rebind(queryListAdminsEmails))
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListAdminsEmails execution err")
		return nil, err
	}
	defer rows.Close()

	emails := make([]string, 0)
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}

	return emails, rows.Err()
}

func (r *employeeRepository) ListEnrolled(c context.Context) ([]entity.Employee, error) {
	requestID := contextPkg.GetRequestID(c)

	rows, err := r.q.QueryxContext(c, r.q.Rebind(queryListEnrolledEmployees))
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListEnrolled execution err")
		return nil, err
	}
	defer rows.Close()

	employees := make([]entity.Employee, 0)
	for rows.Next() {
		var emp EmployeeDB
		if err := rows.StructScan(&emp); err != nil {
			return nil, err
		}
		employees = append(employees, r.makeEmployee(emp))
	}

	return employees, rows.Err()
}

func (r *employeeRepository) Update(c context.Context, emp entity.Employee) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         emp.ID,
		"first_name": emp.FirstName,
		"last_name":  emp.LastName,
		"email":      emp.Email,
		"department": emp.Department,
		"role":       emp.Role,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateEmployee, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Update named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating employee")
		return err
	}

	return nil
}

func (r *employeeRepository) UpdateFaceEncoding(c context.Context, id string, encoding string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":            id,
		"face_encoding": encoding,
		"updated_at":    time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateFaceEncoding, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateFaceEncoding named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating face encoding")
		return err
	}

	return nil
}

func (r *employeeRepository) SetActive(c context.Context, id string, active bool) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         id,
		"is_active":  active,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(querySetEmployeeActive, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SetActive named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when setting employee active flag")
		return err
	}

	return nil
}

func (r *employeeRepository) makeEmployee(emp EmployeeDB) entity.Employee {
	return entity.Employee{
		ID:           emp.ID.String,
		Username:     emp.Username.String,
		PasswordHash: emp.PasswordHash.String,
		FirstName:    emp.FirstName.String,
		LastName:     emp.LastName.String,
		Email:        emp.Email.String,
		Department:   emp.Department.String,
		Role:         emp.Role.String,
		FaceEncoding: emp.FaceEncoding.String,
		IsActive:     emp.IsActive,
		CreatedAt:    emp.CreatedAt.Time,
		UpdatedAt:    emp.UpdatedAt.Time,
	}
}

func (r *auditLogRepository) Create(c context.Context, auditLog entity.AuditLog) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":          auditLog.ID,
		"employee_id": auditLog.EmployeeID,
		"action":      auditLog.Action,
		"details":     auditLog.Details,
		"ip_address":  auditLog.IPAddress,
		"timestamp":   time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateAuditLog, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for Create audit log")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating audit log")
		return err
	}

	return nil
}
