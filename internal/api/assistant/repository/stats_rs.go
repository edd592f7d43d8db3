package assistantRepository

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	contextPkg "IntelliguardGolang/pkg/context"
)

const queryQuickStats = `
SELECT
    (SELECT COUNT(*) FROM ppe_detections WHERE detection_timestamp >= :since)        AS total_detections,
    (SELECT COUNT(*) FROM violations WHERE timestamp >= :since)                      AS total_violations,
    (SELECT COUNT(*) FROM violations WHERE timestamp >= :since AND resolved = false) AS unresolved_violations,
    (SELECT COUNT(*) FROM ppe_detections
        WHERE detection_timestamp >= :since AND compliance_status = 'COMPLIANT')     AS compliant_detections`

type QuickStatsDB struct {
	TotalDetections      int `db:"total_detections"`
	TotalViolations      int `db:"total_violations"`
	UnresolvedViolations int `db:"unresolved_violations"`
	CompliantDetections  int `db:"compliant_detections"`
}

func (r *repository) QuickStats(c context.Context, days int) (QuickStatsDB, error) {
	requestID := contextPkg.GetRequestID(c)
	var row QuickStatsDB

	since := time.Now().AddDate(0, 0, -days)
	query, args, err := sqlx.Named(queryQuickStats, map[string]interface{}{"since": since})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("QuickStats named query preparation err")
		return QuickStatsDB{}, err
	}
	query = r.DB.Rebind(query)

	if err := r.DB.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(fmt.Sprintf("QuickStats query err over %d days", days))
		return QuickStatsDB{}, err
	}

	return row, nil
}
