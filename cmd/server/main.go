package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"voicedeck/internal/auth"
	"voicedeck/internal/collab/anthropic"
	"voicedeck/internal/collab/openai"
	collabstorage "voicedeck/internal/collab/storage"
	"voicedeck/internal/config"
	"voicedeck/internal/handler"
	"voicedeck/internal/middleware"
	"voicedeck/internal/repository/postgres"
	"voicedeck/internal/service/classify"
	"voicedeck/internal/service/dashboard"
	"voicedeck/internal/service/document"
	"voicedeck/internal/service/project"
	"voicedeck/internal/service/resolve"
	"voicedeck/internal/service/synthesize"
	"voicedeck/internal/service/video"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	projectRepo := postgres.NewProjectRepository(repoConfig)
	videoRepo := postgres.NewVideoRepository(repoConfig)
	docRepo := postgres.NewDocumentRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Create collaborator clients
	chatModel := anthropic.New(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	speechClient := openai.NewClient(cfg.OpenAIAPIKey)
	mediaStore := collabstorage.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey, cfg.StorageBucket)

	// Create services
	resolver := resolve.New(projectRepo, logger)
	classifier := classify.New(speechClient, chatModel, logger)
	synthesizer := synthesize.New(projectRepo, videoRepo, docRepo, chatModel, logger)

	videoService := video.NewService(videoRepo, projectRepo, classifier, resolver, mediaStore, logger)
	projectService := project.NewService(projectRepo, speechClient, logger)
	documentService := document.NewService(docRepo, synthesizer, txManager, logger)
	dashboardService := dashboard.NewService(projectRepo, videoRepo, docRepo, logger)

	// Create handlers
	projectHandler := handler.NewProjectHandler(projectService, logger)
	videoHandler := handler.NewVideoHandler(videoService, logger)
	documentHandler := handler.NewDocumentHandler(documentService, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Project routes
	mux.HandleFunc("GET /api/projects", projectHandler.ListProjects)
	mux.HandleFunc("POST /api/projects", projectHandler.CreateProject)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.GetProject)
	mux.HandleFunc("PATCH /api/projects/{id}", projectHandler.UpdateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", projectHandler.DeleteProject)
	mux.HandleFunc("POST /api/projects/{id}/thumbnail", projectHandler.GenerateThumbnail)

	// Video routes
	mux.HandleFunc("POST /api/videos", videoHandler.Upload)
	mux.HandleFunc("GET /api/videos", videoHandler.ListVideos)
	mux.HandleFunc("GET /api/videos/{id}", videoHandler.GetVideo)
	mux.HandleFunc("PATCH /api/videos/{id}", videoHandler.UpdateVideo)
	mux.HandleFunc("DELETE /api/videos/{id}", videoHandler.DeleteVideo)
	mux.HandleFunc("POST /api/videos/{id}/transcribe", videoHandler.Transcribe)

	// Document routes
	mux.HandleFunc("POST /api/projects/{id}/synthesize", documentHandler.Synthesize)
	mux.HandleFunc("GET /api/projects/{id}/document", documentHandler.GetByProject)
	mux.HandleFunc("PATCH /api/documents/{id}", documentHandler.UpdateDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", documentHandler.DeleteDocument)

	// Dashboard route
	mux.HandleFunc("GET /api/dashboard", dashboardHandler.GetDashboard)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.AuthMiddleware(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server. The write timeout is generous because the
	// transcription and synthesis routes wait on external collaborators.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
