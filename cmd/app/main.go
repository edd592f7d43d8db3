package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"IntelliguardGolang/internal/config"
	"IntelliguardGolang/pkg/inference"
	"IntelliguardGolang/pkg/log"
	"IntelliguardGolang/pkg/mailer"
	"IntelliguardGolang/pkg/openai"
	"IntelliguardGolang/pkg/redis"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Fatalf("Error loading .env file: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	redisServer := redis.New()
	mailerClient := mailer.New()
	inferenceClient := inference.NewAIClient()
	chatGPT := openai.NewChatGPT()

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithDatabase(),
		config.WithRedisServer(redisServer),
		config.WithMailer(mailerClient),
		config.WithInferenceClient(inferenceClient),
		config.WithFaceMatcher(),
		config.WithMiddleware(),
		config.WithS3Client(),
		config.WithGeminiClient(),
		config.WithChatGPT(chatGPT),
		config.WithBcryptUtils(),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()
	server.WarmFaceRegistry()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")
	inferenceClient.CloseConnections()
}
