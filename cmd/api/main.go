package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/meeting-summarizer-team/meeting-summarizer/pkg/validator"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/adapter/handler"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/adapter/repository"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/usecase/pipeline"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/usecase/rag"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/usecase/summary"
	pkgai "github.com/meeting-summarizer-team/meeting-summarizer/pkg/ai"
	"github.com/meeting-summarizer-team/meeting-summarizer/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize chunk store
	log.Println("📦 Opening vector store...")
	chunkRepo, err := repository.NewBadgerChunkRepository(cfg.Storage.VectorDBPath, cfg.Storage.InMemory, logger)
	if err != nil {
		log.Fatalf("Failed to open vector store: %v", err)
	}
	defer chunkRepo.Close()

	// Initialize report store
	log.Println("📦 Preparing report storage...")
	reportRepo, err := repository.NewFileReportRepository(cfg.Storage.DataDir, logger)
	if err != nil {
		log.Fatalf("Failed to prepare report storage: %v", err)
	}

	// Initialize AI clients
	log.Println("🤖 Initializing AI components...")
	asmClient := pkgai.NewAssemblyAIClient(&cfg.Assembly)

	ollamaClient, err := pkgai.NewOllamaClient(&cfg.Ollama, logger)
	if err != nil {
		log.Fatalf("Failed to initialize Ollama client: %v", err)
	}

	log.Printf("🔌 Checking Ollama at %s (model: %s)...", cfg.Ollama.BaseURL, cfg.Ollama.Model)
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := ollamaClient.CheckAvailability(startupCtx); err != nil {
		cancelStartup()
		log.Fatalf("Ollama is not available: %v", err)
	}
	cancelStartup()
	log.Println("✅ Ollama is reachable")

	embedder, err := pkgai.NewEmbedder(&cfg.Ollama, logger)
	if err != nil {
		log.Fatalf("Failed to initialize embedder: %v", err)
	}

	// Initialize retrieval service
	log.Println("🧩 Initializing retrieval service...")
	splitter := rag.NewSplitter(cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap)
	ragService, err := rag.NewService(chunkRepo, embedder, splitter, cfg.Chunking.EmbedWorkers, logger)
	if err != nil {
		log.Fatalf("Failed to initialize retrieval service: %v", err)
	}
	defer ragService.Close()

	// Initialize summary service
	log.Println("📝 Initializing summary service...")
	summaryService, err := summary.NewService(ollamaClient, logger)
	if err != nil {
		log.Fatalf("Failed to initialize summary service: %v", err)
	}

	// Initialize pipeline
	log.Println("🚀 Initializing meeting pipeline...")
	pipelineService := pipeline.NewService(asmClient, ragService, summaryService, reportRepo, logger)

	// Initialize handlers
	meetingHandler := handler.NewMeetingHandler(pipelineService, reportRepo, cfg, logger)
	searchHandler := handler.NewSearchHandler(ragService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, meetingHandler, searchHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
