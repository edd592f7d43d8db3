package detectionRepository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"IntelliguardGolang/internal/api/detection"
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

func (r *employeeRepo) GetByID(c context.Context, id string) (entity.Employee, error) {
	return r.getOne(c, queryGetEmployeeByID, map[string]interface{}{"id": id})
}

func (r *employeeRepo) GetByUsername(c context.Context, username string) (entity.Employee, error) {
	return r.getOne(c, queryGetEmployeeByUsername, map[string]interface{}{"username": username})
}

func (r *employeeRepo) getOne(c context.Context, namedQuery string, argsKV map[string]interface{}) (entity.Employee, error) {
	requestID := contextPkg.GetRequestID(c)
	var emp EmployeeDB

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Employee named query preparation err")
		return entity.Employee{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&emp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Employee{}, detection.ErrFaceNotRecognized
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Employee lookup execution err")
		return entity.Employee{}, err
	}

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
	}, nil
}

func (r *employeeRepo) ListSupervisorsEmails(c context.Context) ([]string, error) {
	requestID := contextPkg.GetRequestID(c)

	rows, err := r.q.QueryxContext(c, r.q.Rebind(queryListSupervisorsEmails))
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListSupervisorsEmails execution err")
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
