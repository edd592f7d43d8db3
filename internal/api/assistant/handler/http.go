package assistantHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	assistantService "IntelliguardGolang/internal/api/assistant/service"
	"IntelliguardGolang/internal/middleware"
)

type AssistantHandler struct {
	log              *logrus.Logger
	assistantService assistantService.IAssistantService
	validator        *validator.Validate
	middleware       middleware.Middleware
}

func New(
	log *logrus.Logger,
	as assistantService.IAssistantService,
	validate *validator.Validate,
	middleware middleware.Middleware,
) *AssistantHandler {
	return &AssistantHandler{
		log:              log,
		assistantService: as,
		validator:        validate,
		middleware:       middleware,
	}
}

func (h *AssistantHandler) Start(srv fiber.Router) {
	assistant := srv.Group("/assistant", h.middleware.NewTokenMiddleware)
	assistant.Post("/query", h.HandleQuery)
	assistant.Get("/suggestions", h.HandleSuggestions)
	assistant.Get("/stats", h.HandleQuickStats)
}
