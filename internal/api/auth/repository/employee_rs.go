package authRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"IntelliguardGolang/internal/api/auth"
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

func (r *employeeRepository) GetByUsername(c context.Context, username string) (entity.Employee, error) {
	requestID := contextPkg.GetRequestID(c)
	var employee EmployeeDB

	argsKV := map[string]interface{}{
		"username": username,
	}

	query, args, err := sqlx.Named(queryGetEmployeeByUsername, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByUsername named query preparation err")
		return entity.Employee{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&employee); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"username":   username,
			}).Warn("GetByUsername no rows found")
			return entity.Employee{}, auth.ErrEmployeeNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByUsername execution err")
		return entity.Employee{}, err
	}

	return r.makeEmployee(employee), nil
}

func (r *employeeRepository) GetByID(c context.Context, id string) (entity.Employee, error) {
	requestID := contextPkg.GetRequestID(c)
	var employee EmployeeDB

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

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&employee); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("GetByID no rows found")
			return entity.Employee{}, auth.ErrEmployeeNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID execution err")
		return entity.Employee{}, err
	}

	return r.makeEmployee(employee), nil
}

func (r *employeeRepository) makeEmployee(employee EmployeeDB) entity.Employee {
	return entity.Employee{
		ID:           employee.ID.String,
		Username:     employee.Username.String,
		PasswordHash: employee.PasswordHash.String,
		FirstName:    employee.FirstName.String,
		LastName:     employee.LastName.String,
		Email:        employee.Email.String,
		Department:   employee.Department.String,
		Role:         employee.Role.String,
		FaceEncoding: employee.FaceEncoding.String,
		IsActive:     employee.IsActive,
		CreatedAt:    employee.CreatedAt.Time,
		UpdatedAt:    employee.UpdatedAt.Time,
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
