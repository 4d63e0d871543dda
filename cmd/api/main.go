package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-agent-backend/config"
	v1 "resume-agent-backend/internal/delivery/http/v1"
	"resume-agent-backend/internal/repository/postgres"
	"resume-agent-backend/internal/resumeagent"
	"resume-agent-backend/internal/usecase"
	"resume-agent-backend/pkg/crypto"
	"resume-agent-backend/pkg/database"
	"resume-agent-backend/pkg/gemini"
	"resume-agent-backend/pkg/github"
	"resume-agent-backend/pkg/latex"
	"resume-agent-backend/pkg/logger"
	"resume-agent-backend/pkg/redis"
	"resume-agent-backend/pkg/token"

	"github.com/go-playground/validator/v10"
)

// @title           Resume Agent API
// @version         1.0
// @description     Backend for AI-assisted LaTeX resume generation using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting resume agent backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting; the API degrades to in-memory limits without it)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	githubConnRepo := postgres.NewGithubConnectionRepository(dbPool)
	projectRepo := postgres.NewProjectRepository(dbPool)
	githubRepoRepo := postgres.NewGithubRepoRepository(dbPool)
	jdRepo := postgres.NewJobDescriptionRepository(dbPool)
	templateRepo := postgres.NewTemplateRepository(dbPool)
	resumeRepo := postgres.NewResumeRepository(dbPool)

	// 6. Setup External Services
	var llm usecase.Generator
	if client, err := gemini.NewClient(cfg.GeminiAPIKeys, gemini.Options{
		Model:       cfg.GeminiModel,
		Temperature: float32(cfg.GeminiTemperature),
		MaxTokens:   int32(cfg.GeminiMaxTokens),
	}); err != nil {
		logger.Log.Warn("Gemini not configured - resume generation and JD analysis degraded", "error", err)
	} else {
		llm = client
	}

	compiler := latex.NewCompiler(cfg.LatexCompileURL, cfg.LatexTimeoutSeconds)
	agent := resumeagent.NewAgent(llm)

	githubFor := func(accessToken string) usecase.GithubClient {
		return github.NewClient(cfg.GithubAPIBaseURL, accessToken)
	}

	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTExpiryMinutes)
	encryptor := crypto.NewEncryptor(cfg.SecretKey)

	// 7. Setup UseCases
	validate := validator.New()
	authUC := usecase.NewAuthUsecase(userRepo, githubConnRepo, tokens, encryptor, githubFor, validate)
	projectUC := usecase.NewProjectUsecase(projectRepo, githubConnRepo, githubRepoRepo, encryptor, githubFor, llm)
	jdUC := usecase.NewJobDescriptionUsecase(jdRepo, llm)
	templateUC := usecase.NewTemplateUsecase(templateRepo)
	resumeUC := usecase.NewResumeUsecase(resumeRepo, projectRepo, jdRepo, templateRepo, userRepo, agent, compiler, cfg.UploadDir)
	healthUC := usecase.NewHealthUsecase(dbPool)

	// 8. Seed built-in resume templates (idempotent)
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if created, err := templateUC.InitSystemTemplates(seedCtx); err != nil {
		logger.Log.Warn("Failed to seed system templates", "error", err)
	} else if created > 0 {
		logger.Log.Info("Seeded system templates", "count", created)
	}
	seedCancel()

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:     authUC,
		ProjectUC:  projectUC,
		JobDescUC:  jdUC,
		TemplateUC: templateUC,
		ResumeUC:   resumeUC,
		HealthUC:   healthUC,
		Tokens:     tokens,
		Config:     cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
