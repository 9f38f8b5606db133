package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/builder"
	"resume-builder/internal/exports"
	"resume-builder/internal/extract"
	"resume-builder/internal/llm"
	"resume-builder/internal/llm/anthropic"
	"resume-builder/internal/llm/gemini"
	"resume-builder/internal/llm/openai"
	"resume-builder/internal/reviews"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/storage/object"
	localstore "resume-builder/internal/shared/storage/object/local"
	s3store "resume-builder/internal/shared/storage/object/s3"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/workspace"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	LLM    llm.Client

	BuilderService   *builder.Service
	WorkspaceService *workspace.Service
	ExportsService   *exports.Service
	ReviewsService   *reviews.Service
}

// Build prepares every dependency and wires the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	verifier, err := auth.NewVerifier(cfg.JWTSecret, cfg.Env)
	if err != nil {
		return nil, err
	}

	sqlDB, err := openAppDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	closeOnErr := func(err error) error {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		return err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, closeOnErr(err)
	}

	client, err := BuildLLM(ctx, cfg)
	if err != nil {
		return nil, closeOnErr(err)
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		LLM:    client,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:   cfg,
		Verifier: verifier,
		Health:   health.NewService(cfg.LLMProvider, sqlDB),
		Limiter:  middleware.NewRateLimiter(nil),
		Handlers: []server.RouteRegistrar{
			builder.NewHandler(app.BuilderService),
			extract.NewHandler(),
			workspace.NewHandler(app.WorkspaceService),
			exports.NewHandler(app.ExportsService),
			reviews.NewHandler(app.ReviewsService),
		},
	})

	return app, nil
}

// Close releases the database handle.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

var openAppDB = buildDB

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	pool := db.ServerPool().WithEnv()
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, pool)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB, db.Dialect(cfg.DatabaseURL)); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		store, err := s3store.New(ctx, s3store.Options{
			Region:   cfg.AWSRegion,
			Bucket:   cfg.S3Bucket,
			Prefix:   cfg.S3Prefix,
			KMSKeyID: cfg.SSEKMSKeyID,
			Endpoint: cfg.S3Endpoint,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// BuildLLM selects the provider client from configuration. Every real
// provider is wrapped with one retry; "none" yields the placeholder client.
func BuildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	var (
		client llm.Client
		err    error
	)
	switch cfg.LLMProvider {
	case "openai":
		client, err = openai.NewClient(openai.Options{
			APIKey:  cfg.LLMAPIKey,
			Model:   cfg.LLMModel,
			BaseURL: cfg.LLMBaseURL,
			Timeout: cfg.LLMTimeout,
		})
	case "gemini":
		client, err = gemini.NewClient(ctx, gemini.Options{
			APIKey:  cfg.LLMAPIKey,
			Model:   cfg.LLMModel,
			BaseURL: cfg.LLMBaseURL,
			Timeout: cfg.LLMTimeout,
		})
	case "anthropic":
		client, err = anthropic.NewClient(anthropic.Options{
			APIKey:  cfg.LLMAPIKey,
			Model:   cfg.LLMModel,
			BaseURL: cfg.LLMBaseURL,
			Timeout: cfg.LLMTimeout,
		})
	default:
		telemetry.Warn("bootstrap.llm_not_configured", map[string]any{"provider": cfg.LLMProvider})
		return llm.PlaceholderClient{}, nil
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.llm_not_configured", map[string]any{"provider": cfg.LLMProvider, "error": err.Error()})
			return llm.PlaceholderClient{}, nil
		}
		return nil, err
	}
	telemetry.Info("bootstrap.llm", map[string]any{"provider": cfg.LLMProvider, "model": cfg.LLMModel})
	return llm.WithRetry(client), nil
}

func buildServices(app *App) {
	var (
		workspaceRepo workspace.Repo
		exportRepo    exports.Repo
		reviewRepo    reviews.Repo
	)
	if app.DB != nil {
		workspaceRepo = &workspace.PGRepo{DB: app.DB}
		exportRepo = &exports.PGRepo{DB: app.DB}
		reviewRepo = &reviews.PGRepo{DB: app.DB}
	} else {
		workspaceRepo = workspace.NewMemoryRepo()
		exportRepo = exports.NewMemoryRepo()
		reviewRepo = reviews.NewMemoryRepo()
	}

	app.ReviewsService = reviews.NewService(reviewRepo)
	app.WorkspaceService = workspace.NewService(workspaceRepo)
	app.ExportsService = &exports.Service{Repo: exportRepo, Store: app.Store}
	app.BuilderService = builder.NewService(app.LLM, app.ReviewsService, app.Config.LLMMaxInputTokens, llm.RetryBudget(app.Config.LLMTimeout))
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
