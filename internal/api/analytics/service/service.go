package analyticsService

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"IntelliguardGolang/internal/api/analytics"
	analyticsRepository "IntelliguardGolang/internal/api/analytics/repository"
	"IntelliguardGolang/internal/entity"
	"IntelliguardGolang/pkg/mailer"
	"IntelliguardGolang/pkg/redis"
)

type IAnalyticsService interface {
	Stats(ctx context.Context, windowDays int) (analytics.StatsResponse, error)
	ViolationsSummary(ctx context.Context, windowDays int) (analytics.ViolationsSummaryResponse, error)
	Trend(ctx context.Context, windowDays int) (analytics.TrendResponse, error)
	Departments(ctx context.Context, windowDays int) ([]analytics.DepartmentStat, error)
	ResolveViolation(ctx context.Context, id string, actor entity.EmployeeLoginData) (analytics.ResolveViolationResponse, error)
	ExportViolationsCSV(ctx context.Context, query analytics.ExportQuery) ([]byte, error)
	SendDailyReport(ctx context.Context, recipients []string) error
}

type analyticsService struct {
	log           *logrus.Logger
	analyticsRepo analyticsRepository.Repository
	redisServer   redis.IRedis
	mailer        mailer.ItfMailer
}

func New(log *logrus.Logger,
	analyticsRepo analyticsRepository.Repository,
	redisServer redis.IRedis,
	mailer mailer.ItfMailer,
) IAnalyticsService {
	return &analyticsService{
		log:           log,
		analyticsRepo: analyticsRepo,
		redisServer:   redisServer,
		mailer:        mailer,
	}
}

const statsCacheTTL = 5 * time.Minute
