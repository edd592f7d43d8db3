package detectionHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	detectionService "IntelliguardGolang/internal/api/detection/service"
	"IntelliguardGolang/internal/middleware"
	"IntelliguardGolang/pkg/utils"
)

type DetectionHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	detectionService detectionService.IDetectionService
	utils            utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ds detectionService.IDetectionService,
	utils utils.IUtils,
) *DetectionHandler {
	return &DetectionHandler{
		detectionService: ds,
		log:              log,
		validator:        validator,
		middleware:       middleware,
		utils:            utils,
	}
}

func (h *DetectionHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	detections := srv.Group("/detections")
	detections.Use("/ws", wsMiddleware)
	detections.Get("/ws", websocket.New(h.handleDetectionWebSocket))

	detections.Post("/", h.middleware.NewTokenMiddleware, h.HandleProcess)
	detections.Get("/", h.middleware.NewTokenMiddleware, h.HandleList)
	detections.Get("/:id", h.middleware.NewTokenMiddleware, h.HandleGetByID)
	detections.Post("/identify", h.middleware.NewTokenMiddleware, h.HandleIdentify)
	detections.Post("/describe", h.middleware.NewTokenMiddleware, h.HandleDescribe)
}
