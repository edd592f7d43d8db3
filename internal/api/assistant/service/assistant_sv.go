package assistantService

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"IntelliguardGolang/internal/api/assistant"
	contextPkg "IntelliguardGolang/pkg/context"
)

const maxRows = 100

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (s *assistantService) Query(c context.Context, req assistant.QueryRequest) (assistant.QueryResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	sqlQuery, err := s.chatGPT.GenerateSQL(c, req.Question)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SQL generation failed")
		return assistant.QueryResponse{}, assistant.ErrAssistantUnavailable
	}

	if err := ValidateReadOnlyQuery(sqlQuery); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"sql":        sqlQuery,
		}).Warn("Generated query rejected by read-only guard")
		return assistant.QueryResponse{}, err
	}

	sqlQuery = EnsureRowLimit(sqlQuery, maxRows)

	rows, err := s.assistantRepo.ExecuteSelect(c, sqlQuery)
	if err != nil {
		return assistant.QueryResponse{}, err
	}

	rowsJSON, err := json.Marshal(rows)
	if err != nil {
		return assistant.QueryResponse{}, err
	}

	answer, err := s.chatGPT.SummarizeRows(c, req.Question, string(rowsJSON))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Row summarization failed")
		return assistant.QueryResponse{}, assistant.ErrAssistantUnavailable
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"row_count":  len(rows),
	}).Info("Assistant query answered")

	return assistant.QueryResponse{
		Question: req.Question,
		SQL:      sqlQuery,
		Rows:     rows,
		RowCount: len(rows),
		Answer:   answer,
	}, nil
}

const quickStatsWindowDays = 30

func (s *assistantService) QuickStats(c context.Context) (assistant.QuickStatsResponse, error) {
	row, err := s.assistantRepo.QuickStats(c, quickStatsWindowDays)
	if err != nil {
		return assistant.QuickStatsResponse{}, err
	}

	rate := 0.0
	if row.TotalDetections > 0 {
		rate = float64(row.CompliantDetections) / float64(row.TotalDetections) * 100
	}

	summary := fmt.Sprintf(
		"Last %d days: %d detections, %d violations (%d unresolved), %.1f%% compliance rate.",
		quickStatsWindowDays, row.TotalDetections, row.TotalViolations, row.UnresolvedViolations, rate,
	)

	return assistant.QuickStatsResponse{
		TotalDetections:      row.TotalDetections,
		TotalViolations:      row.TotalViolations,
		UnresolvedViolations: row.UnresolvedViolations,
		ComplianceRate:       rate,
		WindowDays:           quickStatsWindowDays,
		Summary:              summary,
	}, nil
}

func (s *assistantService) Suggestions() assistant.SuggestionsResponse {
	return assistant.SuggestionsResponse{
		Suggestions: []string{
			"How many violations happened today?",
			"Show me all critical violations this week",
			"Which department has the most violations?",
			"What is the overall compliance rate this month?",
			"List employees with unresolved violations",
			"What are the most common violation types?",
			"Show me the detection history for the last 7 days",
		},
	}
}
