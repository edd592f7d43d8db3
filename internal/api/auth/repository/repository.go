package authRepository

import (
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"IntelliguardGolang/internal/entity"
)

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var db sqlx.ExtContext
	var commitFunc, rollbackFunc func() error

	db = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		db = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Employees: &employeeRepository{q: db, log: r.log},
		AuditLogs: &auditLogRepository{q: db, log: r.log},
		Commit:    commitFunc,
		Rollback:  rollbackFunc,
	}, nil
}

type Client struct {
	Employees interface {
		GetByUsername(ctx context.Context, username string) (entity.Employee, error)
		GetByID(ctx context.Context, id string) (entity.Employee, error)
	}

	AuditLogs interface {
		Create(ctx context.Context, auditLog entity.AuditLog) error
	}

	Commit   func() error
	Rollback func() error
}

type employeeRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}

type auditLogRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}
