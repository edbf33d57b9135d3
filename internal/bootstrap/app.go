package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"unirise-backend/internal/catalog"
	"unirise-backend/internal/export"
	"unirise-backend/internal/llm"
	"unirise-backend/internal/llm/cache"
	"unirise-backend/internal/llm/gemini"
	"unirise-backend/internal/llm/openrouter"
	"unirise-backend/internal/majors"
	"unirise-backend/internal/services/health"
	"unirise-backend/internal/shared/config"
	"unirise-backend/internal/shared/server"
	"unirise-backend/internal/shared/storage/db"
	"unirise-backend/internal/shared/telemetry"
	"unirise-backend/internal/shared/tracing"
	"unirise-backend/internal/usage"
)

// App holds shared dependencies and the HTTP router built from them.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	Catalog  *catalog.Catalog
	LLM      llm.Client
	Majors   *majors.Service
	Usage    *usage.Service
	Renderer *export.Renderer

	closers []func(context.Context) error
}

// Build wires the catalog, completion provider, usage ledger, exporters and
// router. Optional backends (Redis, the SQL ledger) degrade to in-process
// fallbacks in dev-like environments and fail the build elsewhere.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	app := &App{
		Config:   cfg,
		Catalog:  catalog.Default(),
		Renderer: export.NewRenderer(cfg.PDFFontPath),
	}

	shutdownTracing, err := tracing.Init(ctx, tracing.Options{
		Enabled:     cfg.OTelEnabled,
		Exporter:    cfg.OTelExporter,
		ServiceName: server.ServiceName,
		Environment: cfg.Env,
	})
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, shutdownTracing)

	client, err := app.buildLLM(ctx)
	if err != nil {
		_ = app.Close(ctx)
		return nil, err
	}
	app.LLM = client

	usageSvc, err := app.buildUsage(ctx)
	if err != nil {
		_ = app.Close(ctx)
		return nil, err
	}
	app.Usage = usageSvc

	app.Majors = &majors.Service{
		Catalog:  app.Catalog,
		LLM:      app.LLM,
		Usage:    app.Usage,
		Provider: cfg.LLMProvider,
		Model:    cfg.LLMModel,
	}

	app.Router = server.NewRouter(cfg, server.Handlers{
		Majors: majors.NewHandler(app.Majors),
		Export: export.NewHandler(app.Renderer),
		Usage:  usage.NewHandler(app.Usage),
		Health: health.NewService("UniRise"),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":      cfg.Env,
		"provider": cfg.LLMProvider,
		"model":    cfg.LLMModel,
		"cache":    cfg.RedisURL != "",
		"ledger":   ledgerKind(cfg.DatabaseURL),
	})
	return app, nil
}

// Close releases backends in reverse construction order.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) buildLLM(ctx context.Context) (llm.Client, error) {
	cfg := a.Config

	var client llm.Client
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		g, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return g.Close() })
		client = g
	case config.ProviderOpenRouter, "":
		o, err := openrouter.NewClient(openrouter.Options{
			APIKey:  cfg.OpenRouterAPIKey,
			Model:   cfg.LLMModel,
			URL:     cfg.OpenRouterURL,
			Referer: cfg.OpenRouterReferer,
			Title:   cfg.OpenRouterTitle,
			Timeout: cfg.LLMTimeout,
		})
		if err != nil {
			return nil, err
		}
		client = o
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLMProvider)
	}
	client = llm.WithTimeout(client, cfg.LLMTimeout)

	if strings.TrimSpace(cfg.RedisURL) == "" {
		return client, nil
	}
	store, err := cache.NewRedisStore(ctx, cfg.RedisURL)
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.cache_unavailable", map[string]any{"error": err.Error()})
			return client, nil
		}
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error { return store.Close() })
	return cache.New(client, store, cfg.LLMModel, cfg.CacheTTL), nil
}

func (a *App) buildUsage(ctx context.Context) (*usage.Service, error) {
	cfg := a.Config
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return usage.NewService(), nil
	}

	svc, err := a.connectUsage(ctx)
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.ledger_unavailable", map[string]any{"error": err.Error()})
			return usage.NewService(), nil
		}
		return nil, err
	}
	return svc, nil
}

func (a *App) connectUsage(ctx context.Context) (*usage.Service, error) {
	target, err := db.Resolve(a.Config.DatabaseURL)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.Connect(ctx, target, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB, target.Dialect); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error { return sqlDB.Close() })
	return usage.NewSQLService(usage.NewSQLStore(sqlDB, target.Dialect)), nil
}

func ledgerKind(databaseURL string) string {
	if strings.TrimSpace(databaseURL) == "" {
		return "memory"
	}
	if target, err := db.Resolve(databaseURL); err == nil {
		return target.Dialect
	}
	return "unknown"
}
