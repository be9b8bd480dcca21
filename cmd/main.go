package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/prepview/server/adapters/llm"
	"github.com/prepview/server/adapters/questions"
	"github.com/prepview/server/adapters/storage"
	"github.com/prepview/server/adapters/tts"
	"github.com/prepview/server/domain/repositories"
	"github.com/prepview/server/internal/api"
	"github.com/prepview/server/internal/store"
	"github.com/prepview/server/usecase"
)

func main() {
	// .env is optional; real deployments set the environment directly
	godotenv.Load()

	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Durable storage for working copies, summaries, and audio
	fileStorage, err := storage.NewFileStorage(storage.NewFileStorageConfigFromEnv(), logger)
	if err != nil {
		logger.Fatal("Failed to initialize file storage", zap.Error(err))
	}

	sessionStore := store.NewSessionStore(fileStorage, logger)

	// Feedback generator: Gemini when a key is configured, mock otherwise
	var feedback repositories.FeedbackGenerator
	if os.Getenv("GEMINI_API_KEY") != "" {
		gemini, err := llm.NewGeminiFeedback(llm.NewGeminiConfigFromEnv(), logger)
		if err != nil {
			logger.Fatal("Failed to initialize Gemini feedback generator", zap.Error(err))
		}
		feedback = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set, using mock feedback generator")
		feedback = llm.NewMockFeedbackGenerator()
	}

	// Speech synthesizer: ElevenLabs when a key is configured, mock otherwise
	var speech repositories.SpeechSynthesizer
	if os.Getenv("ELEVEN_LABS_API_KEY") != "" {
		elevenLabs, err := tts.NewElevenLabsTTS(tts.NewElevenLabsConfigFromEnv(fileStorage.AudioDir()), logger)
		if err != nil {
			logger.Fatal("Failed to initialize ElevenLabs synthesizer", zap.Error(err))
		}
		speech = elevenLabs
	} else {
		logger.Warn("ELEVEN_LABS_API_KEY not set, using mock speech synthesizer")
		speech = tts.NewMockSpeechSynthesizer(logger)
	}

	sessionService := usecase.NewSessionService(
		sessionStore,
		feedback,
		speech,
		questions.NewPool(),
		fileStorage,
		logger,
	)

	// Initialize API routes
	api.InitRoutes(e, sessionService, fileStorage.AudioDir(), logger)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("port", port))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
