package employeeHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	employeeService "IntelliguardGolang/internal/api/employee/service"
	"IntelliguardGolang/internal/middleware"
	"IntelliguardGolang/pkg/utils"
)

type EmployeeHandler struct {
	log             *logrus.Logger
	employeeService employeeService.IEmployeeService
	validator       *validator.Validate
	middleware      middleware.Middleware
	utils           utils.IUtils
}

func New(
	log *logrus.Logger,
	es employeeService.IEmployeeService,
	validate *validator.Validate,
	middleware middleware.Middleware,
	utils utils.IUtils,
) *EmployeeHandler {
	return &EmployeeHandler{
		log:             log,
		employeeService: es,
		validator:       validate,
		middleware:      middleware,
		utils:           utils,
	}
}

func (h *EmployeeHandler) Start(srv fiber.Router) {
	employees := srv.Group("/employees", h.middleware.NewTokenMiddleware)
	employees.Get("/", h.HandleList)
	employees.Get("/:id", h.HandleGetByID)
	employees.Post("/", h.middleware.NewAdminMiddleware, h.HandleCreate)
	employees.Patch("/:id", h.middleware.NewAdminMiddleware, h.HandleUpdate)
	employees.Delete("/:id", h.middleware.NewAdminMiddleware, h.HandleDeactivate)
	employees.Post("/:id/face", h.middleware.NewAdminMiddleware, h.HandleEnrollFace)
	employees.Post("/registry/reload", h.middleware.NewAdminMiddleware, h.HandleReloadRegistry)
}
