package analyticsHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	analyticsService "IntelliguardGolang/internal/api/analytics/service"
	"IntelliguardGolang/internal/middleware"
)

type AnalyticsHandler struct {
	log              *logrus.Logger
	analyticsService analyticsService.IAnalyticsService
	validator        *validator.Validate
	middleware       middleware.Middleware
}

func New(
	log *logrus.Logger,
	as analyticsService.IAnalyticsService,
	validate *validator.Validate,
	middleware middleware.Middleware,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		log:              log,
		analyticsService: as,
		validator:        validate,
		middleware:       middleware,
	}
}

func (h *AnalyticsHandler) Start(srv fiber.Router) {
	analytics := srv.Group("/analytics", h.middleware.NewTokenMiddleware)
	analytics.Get("/stats", h.HandleStats)
	analytics.Get("/violations/summary", h.HandleViolationsSummary)
	analytics.Get("/violations/trend", h.HandleTrend)
	analytics.Get("/departments", h.HandleDepartments)
	analytics.Patch("/violations/:id/resolve", h.HandleResolveViolation)
	analytics.Get("/violations/export", h.HandleExportCSV)
	analytics.Post("/report/daily", h.middleware.NewAdminMiddleware, h.HandleDailyReport)
}
