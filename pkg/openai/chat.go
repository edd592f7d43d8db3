package openai

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
)

type IChatGPT interface {
	GenerateSQL(ctx context.Context, question string) (string, error)
	SummarizeRows(ctx context.Context, question string, rowsJSON string) (string, error)
}

type chatGPTService struct {
	client *openai.Client
	model  string
}

const schemaPrompt = `You are a SQL generator for a PPE (Personal Protective Equipment) compliance monitoring database on PostgreSQL.

Database schema:
- employees(id, username, first_name, last_name, email, department, role, is_active, created_at, updated_at)
- ppe_detections(id, employee_id, image_path, detection_timestamp, total_detections, violation_count, compliance_status, confidence_score, processed_by, notes)
- violations(id, detection_id, employee_id, violation_type, severity, bbox_x, bbox_y, bbox_width, bbox_height, confidence, timestamp, resolved, resolved_by, resolved_at)
- audit_logs(id, employee_id, action, details, ip_address, timestamp)

PPE violation types: no_helmet, no_mask, no_goggles, no_glove, no_shoes, no-suit
Severity levels: LOW, MEDIUM, HIGH, CRITICAL
Compliance status: COMPLIANT, VIOLATION, PARTIAL

Rules:
- Return ONLY one SELECT statement, no explanation, no markdown fences
- Never write INSERT, UPDATE, DELETE, DROP or any statement that modifies data
- Limit result sets to at most 100 rows`

func NewChatGPT() IChatGPT {
	apiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("OPENAI_CHAT_MODEL")

	if model == "" {
		model = openai.GPT4
	}

	return &chatGPTService{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *chatGPTService) GenerateSQL(ctx context.Context, question string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: schemaPrompt,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: question,
		},
	}

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: 0,
			MaxTokens:   300,
		},
	)

	if err != nil {
		return "", fmt.Errorf("ChatGPT API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from ChatGPT")
	}

	return stripFences(resp.Choices[0].Message.Content), nil
}

func (c *chatGPTService) SummarizeRows(ctx context.Context, question string, rowsJSON string) (string, error) {
	systemPrompt := `You are an AI assistant for a PPE compliance monitoring system.
You are given the user's question and JSON rows queried from the compliance database.
Answer the question using only those rows.
Be specific, include statistics when appropriate, mention safety recommendations for violations, and format the response clearly.
Keep the answer short.`

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf("Question: %s\n\nRows:\n%s", question, rowsJSON),
		},
	}

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: 0.3,
			MaxTokens:   400,
		},
	)

	if err != nil {
		return "", fmt.Errorf("ChatGPT API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from ChatGPT")
	}

	return resp.Choices[0].Message.Content, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```sql")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
