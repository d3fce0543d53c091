// README: Dependency wiring shared by the API server and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"skyguide/internal/ai"
	"skyguide/internal/config"
	"skyguide/internal/http/handlers"
	"skyguide/internal/infra"
	"skyguide/internal/maps"
	"skyguide/internal/modules/intent"
	"skyguide/internal/modules/usage"
	"skyguide/internal/modules/weather"
	"skyguide/internal/service"
)

type App struct {
	Assistant *service.Assistant
	Parser    *intent.Parser
	// Quota is nil when no database is configured.
	Quota *usage.Service

	closers []func() error
}

// Build wires every collaborator from cfg. Optional backends (redis, postgres, maps) are
// skipped when unconfigured; redis falls back to the in-process cache when unreachable.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	a := &App{}

	llm, closeLLM, err := ai.NewProvider(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}
	a.closers = append(a.closers, closeLLM)

	var fetcher weather.Fetcher = weather.NewRateLimited(
		weather.NewClient(cfg.Weather, logger), cfg.Weather.RPS, cfg.Weather.Burst)
	fetcher = weather.NewCached(fetcher, a.weatherCache(ctx, cfg, logger), cfg.Weather.CacheTTL, logger)

	var places maps.PlaceFinder
	var routes maps.RouteEstimator
	if cfg.Maps.APIKey != "" {
		ps, err := maps.NewPlacesService(cfg.Maps.APIKey)
		if err != nil {
			a.Close()
			return nil, err
		}
		rs, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			a.Close()
			return nil, err
		}
		places, routes = ps, rs
	}

	if cfg.DB.DSN != "" {
		if err := infra.Migrate(cfg.DB.DSN); err != nil {
			a.Close()
			return nil, err
		}
		db, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("db: %w", err)
		}
		a.closers = append(a.closers, func() error { db.Close(); return nil })
		a.Quota = usage.NewService(usage.NewStore(db, cfg.Quota.Tokens))
	}

	a.Parser = intent.NewParser(llm, logger)
	a.Assistant = service.NewAssistant(service.Deps{
		Parser:   a.Parser,
		Weather:  fetcher,
		LLM:      llm,
		Places:   places,
		Routes:   routes,
		Location: cfg.Location(),
		Logger:   logger,
	})
	return a, nil
}

func (a *App) weatherCache(ctx context.Context, cfg config.Config, logger *slog.Logger) weather.Cache {
	if cfg.Redis.Addr == "" {
		return weather.NewMemoryCache(cfg.Weather.CacheTTL)
	}
	rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		logger.Warn("redis unavailable, using in-process cache", "addr", cfg.Redis.Addr, "error", err)
		return weather.NewMemoryCache(cfg.Weather.CacheTTL)
	}
	a.closers = append(a.closers, rdb.Close)
	return weather.NewRedisCache(rdb)
}

// QuotaGuard returns the quota as a handler dependency, nil when disabled.
func (a *App) QuotaGuard() handlers.QuotaGuard {
	if a.Quota == nil {
		return nil
	}
	return a.Quota
}

// Close releases clients in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
