package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quizforge/internal/adapter"
	"quizforge/internal/adapter/extractor"
	"quizforge/internal/adapter/quizgen"
	"quizforge/internal/cache"
	"quizforge/internal/config"
	"quizforge/internal/database"
	"quizforge/internal/dto"
	"quizforge/internal/handler"
	"quizforge/internal/logger"
	"quizforge/internal/middleware"
	"quizforge/internal/repository"
	"quizforge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// PDF text extraction
	pdfExtractor := extractor.NewPDFTextExtractor()

	// Question generation via Groq's OpenAI-compatible API
	questionGenerator, err := quizgen.NewGroqQuestionGenerator(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create question generator", zap.Error(err))
	}
	appLogger.Info("Question generator initialized",
		zap.String("model", cfg.LLM.Model),
		zap.String("base_url", cfg.LLM.BaseURL))

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize repositories
	quizRepository := repository.NewQuizDatabaseAdapter(db)
	resultRepository := repository.NewResultDatabaseAdapter(db)

	// Initialize Redis client and cache adapter
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize services
	quizService := service.NewQuizService(quizRepository, resultRepository, pdfExtractor, questionGenerator, cacheAdapter, cfg)

	authService, err := service.NewAuthService(cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	appLogger.Info("AuthService initialized")

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(quizService)
	healthHandler := handler.NewHealthHandler(db, cacheAdapter)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    20 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/health", healthHandler.HealthCheck)

	// Staff routes
	staffGroup := app.Group("/staff", middleware.Protected(authService), middleware.RequireRole(dto.RoleStaff))
	staffGroup.Post("/quiz/upload", quizHandler.StaffUploadQuiz)

	// Student routes
	studentGroup := app.Group("/student", middleware.Protected(authService), middleware.RequireRole(dto.RoleStudent))
	studentGroup.Get("/quiz/upload/get", quizHandler.StudentGetLatestQuiz)
	studentGroup.Get("/quizzes", quizHandler.StudentListQuizzes)
	studentGroup.Get("/quiz/:id", quizHandler.StudentGetQuiz)
	studentGroup.Post("/quiz/:id/submit", quizHandler.StudentSubmitQuiz)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
