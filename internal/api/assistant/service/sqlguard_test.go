package assistantService

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"IntelliguardGolang/internal/api/assistant"
)

func TestValidateReadOnlyQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{"plain select", "SELECT id FROM violations", false},
		{"select with trailing semicolon", "SELECT COUNT(*) FROM ppe_detections;", false},
		{"with clause", "WITH recent AS (SELECT * FROM violations) SELECT * FROM recent", false},
		{"lowercase select", "select violation_type, count(*) from violations group by violation_type", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"insert", "INSERT INTO employees (id) VALUES ('x')", true},
		{"update", "UPDATE violations SET resolved = true", true},
		{"delete", "DELETE FROM violations", true},
		{"drop", "DROP TABLE employees", true},
		{"stacked statements", "SELECT 1; DROP TABLE employees", true},
		{"select into", "SELECT * INTO backup FROM employees", true},
		{"embedded delete", "SELECT 1 WHERE EXISTS (SELECT 1); DELETE FROM audit_logs", true},
		{"explain", "EXPLAIN SELECT * FROM violations", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReadOnlyQuery(tt.query)
			if tt.wantErr {
				assert.ErrorIs(t, err, assistant.ErrUnsafeQuery)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnsureRowLimit(t *testing.T) {
	assert.Equal(t, "SELECT id FROM violations LIMIT 100",
		EnsureRowLimit("SELECT id FROM violations", 100))

	assert.Equal(t, "SELECT id FROM violations LIMIT 5",
		EnsureRowLimit("SELECT id FROM violations LIMIT 5", 100))

	assert.Equal(t, "SELECT id FROM violations LIMIT 100",
		EnsureRowLimit("  SELECT id FROM violations;  ", 0))
}
