package assistantRepository

import (
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	contextPkg "IntelliguardGolang/pkg/context"
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
	ExecuteSelect(ctx context.Context, query string) ([]map[string]interface{}, error)
	QuickStats(ctx context.Context, days int) (QuickStatsDB, error)
}

// ExecuteSelect runs an already-vetted SELECT and returns generic rows. The
// caller is responsible for ensuring the statement is read-only.
func (r *repository) ExecuteSelect(c context.Context, query string) ([]map[string]interface{}, error) {
	requestID := contextPkg.GetRequestID(c)

	rows, err := r.DB.QueryxContext(c, query)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Assistant query execution err")
		return nil, err
	}
	defer rows.Close()

	out := make([]map[string]interface{}, 0)
	for rows.Next() {
		row := map[string]interface{}{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		out = append(out, row)
	}

	return out, rows.Err()
}
