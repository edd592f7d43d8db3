package authHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	authService "IntelliguardGolang/internal/api/auth/service"
	"IntelliguardGolang/internal/middleware"
	"IntelliguardGolang/pkg/utils"
)

type AuthHandler struct {
	log         *logrus.Logger
	authService authService.IAuthService
	validator   *validator.Validate
	middleware  middleware.Middleware
	utils       utils.IUtils
}

func New(
	log *logrus.Logger,
	as authService.IAuthService,
	validate *validator.Validate,
	middleware middleware.Middleware,
	utils utils.IUtils,
) *AuthHandler {
	return &AuthHandler{
		log:         log,
		authService: as,
		validator:   validate,
		middleware:  middleware,
		utils:       utils,
	}
}

func (h *AuthHandler) Start(srv fiber.Router) {
	auth := srv.Group("/auth")
	auth.Post("/login", h.HandleLogin)
	auth.Post("/refresh", h.HandleRefresh)
	auth.Post("/logout", h.middleware.NewTokenMiddleware, h.HandleLogout)
	auth.Post("/face-login", h.HandleFaceLogin)
}
