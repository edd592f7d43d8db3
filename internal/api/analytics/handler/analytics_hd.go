package analyticsHandler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"

	contextPkg "IntelliguardGolang/pkg/context"
	"IntelliguardGolang/pkg/handlerUtil"
	jwtPkg "IntelliguardGolang/pkg/jwt"

	"IntelliguardGolang/internal/api/analytics"
)

func (h *AnalyticsHandler) HandleStats(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	res, err := h.analyticsService.Stats(c, ctx.QueryInt("days", 30))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "analytics_stats")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *AnalyticsHandler) HandleViolationsSummary(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	res, err := h.analyticsService.ViolationsSummary(c, ctx.QueryInt("days", 30))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "violations_summary")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *AnalyticsHandler) HandleTrend(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	res, err := h.analyticsService.Trend(c, ctx.QueryInt("days", 30))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "violations_trend")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *AnalyticsHandler) HandleDepartments(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	res, err := h.analyticsService.Departments(c, ctx.QueryInt("days", 30))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "department_stats")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *AnalyticsHandler) HandleResolveViolation(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	actor, err := jwtPkg.GetEmployeeLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "invalid session")
	}

	res, err := h.analyticsService.ResolveViolation(c, ctx.Params("id"), actor)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "resolve_violation")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *AnalyticsHandler) HandleExportCSV(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var query analytics.ExportQuery
	if err := ctx.QueryParser(&query); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_query")
	}

	payload, err := h.analyticsService.ExportViolationsCSV(c, query)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "export_violations")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		ctx.Set(fiber.HeaderContentType, "text/csv")
		ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="violations.csv"`)
		return ctx.Send(payload)
	}
}

type dailyReportRequest struct {
	Recipients []string `json:"recipients" validate:"required,min=1,dive,email"`
}

func (h *AnalyticsHandler) HandleDailyReport(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req dailyReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.analyticsService.SendDailyReport(c, req.Recipients); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "send_daily_report")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{"sent": true})
	}
}
