package assistantService

import (
	"strconv"
	"strings"

	"IntelliguardGolang/internal/api/assistant"
)

var forbiddenKeywords = []string{
	"insert", "update", "delete", "drop", "alter", "create",
	"truncate", "grant", "revoke", "copy", "merge", "call",
	"vacuum", "set", "into",
}

// ValidateReadOnlyQuery rejects anything that is not a single SELECT (or a
// WITH chain ending in one). Keyword matching is deliberately coarse, the
// database role should be read-only regardless.
func ValidateReadOnlyQuery(query string) error {
	trimmed := strings.TrimSpace(query)
	trimmed = strings.TrimSuffix(trimmed, ";")
	if trimmed == "" {
		return assistant.ErrUnsafeQuery
	}

	if strings.Contains(trimmed, ";") {
		return assistant.ErrUnsafeQuery
	}

	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "select") && !strings.HasPrefix(lower, "with") {
		return assistant.ErrUnsafeQuery
	}

	for _, field := range strings.Fields(lower) {
		word := strings.Trim(field, "(),")
		for _, keyword := range forbiddenKeywords {
			if word == keyword {
				return assistant.ErrUnsafeQuery
			}
		}
	}

	return nil
}

// EnsureRowLimit appends a LIMIT clause when the statement has none.
func EnsureRowLimit(query string, limit int) string {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(query), ";"))
	if strings.Contains(strings.ToLower(trimmed), " limit ") {
		return trimmed
	}
	if limit <= 0 {
		limit = 100
	}
	return trimmed + " LIMIT " + strconv.Itoa(limit)
}
