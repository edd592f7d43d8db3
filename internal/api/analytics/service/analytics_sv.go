package analyticsService

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"IntelliguardGolang/internal/api/analytics"
	"IntelliguardGolang/internal/entity"
	contextPkg "IntelliguardGolang/pkg/context"
	"IntelliguardGolang/pkg/redis"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func normalizeWindow(windowDays int) int {
	if windowDays < 1 || windowDays > 365 {
		return 30
	}
	return windowDays
}

func (s *analyticsService) Stats(c context.Context, windowDays int) (analytics.StatsResponse, error) {
	requestID := contextPkg.GetRequestID(c)
	windowDays = normalizeWindow(windowDays)
	cacheKey := fmt.Sprintf("analytics:stats:%d", windowDays)

	if cached, err := s.redisServer.GetCachedJSON(c, cacheKey); err == nil {
		var res analytics.StatsResponse
		if err := json.Unmarshal(cached, &res); err == nil {
			return res, nil
		}
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Stats cache read failed")
	}

	repo, err := s.analyticsRepo.NewClient(false)
	if err != nil {
		return analytics.StatsResponse{}, err
	}

	since := time.Now().AddDate(0, 0, -windowDays)
	res, err := repo.Stats.Overview(c, since)
	if err != nil {
		return analytics.StatsResponse{}, err
	}
	res.WindowDays = windowDays
	res.CachedAt = time.Now().Format(time.RFC3339)

	if payload, err := json.Marshal(res); err == nil {
		if err := s.redisServer.CacheJSON(c, cacheKey, payload, statsCacheTTL); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Stats cache write failed")
		}
	}

	return res, nil
}

func (s *analyticsService) ViolationsSummary(c context.Context, windowDays int) (analytics.ViolationsSummaryResponse, error) {
	windowDays = normalizeWindow(windowDays)

	repo, err := s.analyticsRepo.NewClient(false)
	if err != nil {
		return analytics.ViolationsSummaryResponse{}, err
	}

	since := time.Now().AddDate(0, 0, -windowDays)
	byType, err := repo.Stats.ViolationsByType(c, since)
	if err != nil {
		return analytics.ViolationsSummaryResponse{}, err
	}

	return analytics.ViolationsSummaryResponse{
		WindowDays: windowDays,
		ByType:     byType,
	}, nil
}

func (s *analyticsService) Trend(c context.Context, windowDays int) (analytics.TrendResponse, error) {
	windowDays = normalizeWindow(windowDays)

	repo, err := s.analyticsRepo.NewClient(false)
	if err != nil {
		return analytics.TrendResponse{}, err
	}

	since := time.Now().AddDate(0, 0, -windowDays)
	points, err := repo.Stats.Trend(c, since)
	if err != nil {
		return analytics.TrendResponse{}, err
	}

	return analytics.TrendResponse{
		WindowDays: windowDays,
		Points:     points,
	}, nil
}

func (s *analyticsService) Departments(c context.Context, windowDays int) ([]analytics.DepartmentStat, error) {
	windowDays = normalizeWindow(windowDays)

	repo, err := s.analyticsRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -windowDays)
	return repo.Stats.ByDepartment(c, since)
}

func (s *analyticsService) ResolveViolation(c context.Context, id string, actor entity.EmployeeLoginData) (analytics.ResolveViolationResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.analyticsRepo.NewClient(false)
	if err != nil {
		return analytics.ResolveViolationResponse{}, err
	}

	violation, err := repo.Violations.GetByID(c, id)
	if err != nil {
		return analytics.ResolveViolationResponse{}, err
	}
	if violation.Resolved {
		return analytics.ResolveViolationResponse{}, analytics.ErrViolationAlreadyClosed
	}

	resolvedAt := time.Now()
	if err := repo.Violations.Resolve(c, id, actor.Username, resolvedAt); err != nil {
		return analytics.ResolveViolationResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":   requestID,
		"violation_id": id,
		"resolved_by":  actor.Username,
	}).Info("Violation resolved")

	return analytics.ResolveViolationResponse{
		ID:         id,
		Resolved:   true,
		ResolvedBy: actor.Username,
		ResolvedAt: resolvedAt,
	}, nil
}

func (s *analyticsService) ExportViolationsCSV(c context.Context, query analytics.ExportQuery) ([]byte, error) {
	from, to, err := parseExportRange(query)
	if err != nil {
		return nil, err
	}

	repo, err := s.analyticsRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	rows, err := repo.Violations.ListForExport(c, from, to)
	if err != nil {
		return nil, err
	}

	return BuildViolationsCSV(rows)
}

func parseExportRange(query analytics.ExportQuery) (time.Time, time.Time, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if query.From != "" {
		parsed, err := time.Parse("2006-01-02", query.From)
		if err != nil {
			return time.Time{}, time.Time{}, analytics.ErrInvalidDateRange
		}
		from = parsed
	}
	if query.To != "" {
		parsed, err := time.Parse("2006-01-02", query.To)
		if err != nil {
			return time.Time{}, time.Time{}, analytics.ErrInvalidDateRange
		}
		to = parsed.AddDate(0, 0, 1).Add(-time.Second)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, analytics.ErrInvalidDateRange
	}

	return from, to, nil
}
