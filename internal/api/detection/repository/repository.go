package detectionRepository

import (
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"IntelliguardGolang/internal/api/detection"
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
		Detections: &detectionRepo{q: db, log: r.log},
		Violations: &violationRepo{q: db, log: r.log},
		Employees:  &employeeRepo{q: db, log: r.log},
		Commit:     commitFunc,
		Rollback:   rollbackFunc,
	}, nil
}

type Client struct {
	Detections interface {
		Create(ctx context.Context, det entity.PPEDetection) error
		GetByID(ctx context.Context, id string) (entity.PPEDetection, error)
		List(ctx context.Context, filter detection.ListDetectionsQuery) ([]entity.PPEDetection, int, error)
	}

	Violations interface {
		Create(ctx context.Context, v entity.Violation) error
		ListByDetectionID(ctx context.Context, detectionID string) ([]entity.Violation, error)
	}

	Employees interface {
		GetByID(ctx context.Context, id string) (entity.Employee, error)
		GetByUsername(ctx context.Context, username string) (entity.Employee, error)
		ListSupervisorsEmails(ctx context.Context) ([]string, error)
	}

	Commit   func() error
	Rollback func() error
}

type detectionRepo struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}

type violationRepo struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}

type employeeRepo struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}
