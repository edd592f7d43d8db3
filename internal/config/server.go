package config

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"IntelliguardGolang/database/postgres"
	analyticsHandler "IntelliguardGolang/internal/api/analytics/handler"
	analyticsRepository "IntelliguardGolang/internal/api/analytics/repository"
	analyticsService "IntelliguardGolang/internal/api/analytics/service"
	assistantHandler "IntelliguardGolang/internal/api/assistant/handler"
	assistantRepository "IntelliguardGolang/internal/api/assistant/repository"
	assistantService "IntelliguardGolang/internal/api/assistant/service"
	authHandler "IntelliguardGolang/internal/api/auth/handler"
	authRepository "IntelliguardGolang/internal/api/auth/repository"
	authService "IntelliguardGolang/internal/api/auth/service"
	detectionHandler "IntelliguardGolang/internal/api/detection/handler"
	detectionRepository "IntelliguardGolang/internal/api/detection/repository"
	detectionService "IntelliguardGolang/internal/api/detection/service"
	employeeHandler "IntelliguardGolang/internal/api/employee/handler"
	employeeRepository "IntelliguardGolang/internal/api/employee/repository"
	employeeService "IntelliguardGolang/internal/api/employee/service"
	"IntelliguardGolang/internal/middleware"
	"IntelliguardGolang/pkg/bcrypt"
	"IntelliguardGolang/pkg/facematch"
	"IntelliguardGolang/pkg/gemini"
	"IntelliguardGolang/pkg/inference"
	"IntelliguardGolang/pkg/mailer"
	"IntelliguardGolang/pkg/openai"
	"IntelliguardGolang/pkg/redis"
	"IntelliguardGolang/pkg/s3"
	"IntelliguardGolang/pkg/utils"
)

type ServerOption func(*Server) error

type Server struct {
	engine          *fiber.App
	db              *sqlx.DB
	log             *logrus.Logger
	middleware      middleware.Middleware
	validator       *validator.Validate
	utils           utils.IUtils
	bcryptUtils     bcrypt.IBcrypt
	handlers        []handler
	redisServer     redis.IRedis
	mailerClient    mailer.ItfMailer
	inferenceClient inference.IInference
	matcher         *facematch.Matcher
	geminiClient    gemini.IGemini
	chatGPT         openai.IChatGPT
	s3Client        s3.ItfS3
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithMailer(mailerClient mailer.ItfMailer) ServerOption {
	return func(s *Server) error {
		s.mailerClient = mailerClient
		return nil
	}
}

func WithInferenceClient(client inference.IInference) ServerOption {
	return func(s *Server) error {
		s.inferenceClient = client
		return nil
	}
}

func WithFaceMatcher() ServerOption {
	return func(s *Server) error {
		if s.inferenceClient == nil {
			return fmt.Errorf("inference client must be initialized before the face matcher")
		}
		extractor := inference.NewExtractor(s.inferenceClient)
		s.matcher = facematch.NewMatcher(extractor, facematch.NewRegistry(), facematch.DefaultTolerance)
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
		return nil
	}
}

func WithChatGPT(chatGPT openai.IChatGPT) ServerOption {
	return func(s *Server) error {
		s.chatGPT = chatGPT
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Auth Domain
	authRepo := authRepository.New(s.db, s.log)
	authServices := authService.New(s.log, authRepo, s.redisServer, s.bcryptUtils, s.utils, s.matcher)
	authHandlers := authHandler.New(s.log, authServices, s.validator, s.middleware, s.utils)

	// Employee Domain
	employeeRepo := employeeRepository.New(s.db, s.log)
	employeeServices := employeeService.New(s.log, employeeRepo, s.bcryptUtils, s.utils, s.mailerClient, s.matcher)
	employeeHandlers := employeeHandler.New(s.log, employeeServices, s.validator, s.middleware, s.utils)

	// Detection Domain
	detectionRepo := detectionRepository.New(s.db, s.log)
	detectionServices := detectionService.New(s.log, detectionRepo, s.inferenceClient, s.matcher, s.s3Client, s.geminiClient, s.mailerClient, s.utils)
	detectionHandlers := detectionHandler.New(s.log, s.validator, s.middleware, detectionServices, s.utils)

	// Analytics Domain
	analyticsRepo := analyticsRepository.New(s.db, s.log)
	analyticsServices := analyticsService.New(s.log, analyticsRepo, s.redisServer, s.mailerClient)
	analyticsHandlers := analyticsHandler.New(s.log, analyticsServices, s.validator, s.middleware)

	// Assistant Domain
	assistantRepo := assistantRepository.New(s.db, s.log)
	assistantServices := assistantService.New(s.log, assistantRepo, s.chatGPT)
	assistantHandlers := assistantHandler.New(s.log, assistantServices, s.validator, s.middleware)

	s.handlers = append(s.handlers, authHandlers, employeeHandlers, detectionHandlers, analyticsHandlers, assistantHandlers)
}

// WarmFaceRegistry loads stored enrollments so recognition works right after
// boot instead of waiting for the first admin-triggered reload.
func (s *Server) WarmFaceRegistry() {
	employeeRepo := employeeRepository.New(s.db, s.log)
	employeeServices := employeeService.New(s.log, employeeRepo, s.bcryptUtils, s.utils, s.mailerClient, s.matcher)

	size, err := employeeServices.ReloadRegistry(context.Background())
	if err != nil {
		s.log.Errorf("Failed to warm face registry: %v", err)
		return
	}
	s.log.Infof("Face registry warmed with %d enrollments", size)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewRateLimiter)

	for _, h := range s.handlers {
		h.Start(router)
	}

	s.setupHealthCheck()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	if err := s.engine.Listen(fmt.Sprintf(":%s", port)); err != nil {
		if s.inferenceClient != nil {
			s.inferenceClient.CloseConnections()
		}
		return err
	}

	return nil
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
