package analyticsRepository

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"IntelliguardGolang/internal/api/analytics"
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
		Stats:      &statsRepo{q: db, log: r.log},
		Violations: &violationRepo{q: db, log: r.log},
		Commit:     commitFunc,
		Rollback:   rollbackFunc,
	}, nil
}

type Client struct {
	Stats interface {
		Overview(ctx context.Context, since time.Time) (analytics.StatsResponse, error)
		ViolationsByType(ctx context.Context, since time.Time) ([]analytics.ViolationTypeSummary, error)
		Trend(ctx context.Context, since time.Time) ([]analytics.TrendPoint, error)
		ByDepartment(ctx context.Context, since time.Time) ([]analytics.DepartmentStat, error)
	}

	Violations interface {
		GetByID(ctx context.Context, id string) (entity.Violation, error)
		Resolve(ctx context.Context, id string, resolvedBy string, resolvedAt time.Time) error
		ListForExport(ctx context.Context, from, to time.Time) ([]analytics.ViolationExportRow, error)
	}

	Commit   func() error
	Rollback func() error
}

type statsRepo struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}

type violationRepo struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}
