package assistantService

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"IntelliguardGolang/internal/api/assistant"
	assistantRepository "IntelliguardGolang/internal/api/assistant/repository"
	"IntelliguardGolang/pkg/openai"
)

type IAssistantService interface {
	Query(ctx context.Context, req assistant.QueryRequest) (assistant.QueryResponse, error)
	Suggestions() assistant.SuggestionsResponse
	QuickStats(ctx context.Context) (assistant.QuickStatsResponse, error)
}

type assistantService struct {
	log           *logrus.Logger
	assistantRepo assistantRepository.Repository
	chatGPT       openai.IChatGPT
}

func New(log *logrus.Logger,
	assistantRepo assistantRepository.Repository,
	chatGPT openai.IChatGPT,
) IAssistantService {
	return &assistantService{
		log:           log,
		assistantRepo: assistantRepo,
		chatGPT:       chatGPT,
	}
}
