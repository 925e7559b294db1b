package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/localpages/internal/store"
	"github.com/sells-group/localpages/internal/workflow"
	anthropicpkg "github.com/sells-group/localpages/pkg/anthropic"
	"github.com/sells-group/localpages/pkg/wordpress"
)

// appEnv holds the initialized store, clients, and workflows needed by
// the serve/research/publish commands.
type appEnv struct {
	Store     store.Store
	WordPress wordpress.Client
	Research  *workflow.Research
	Publish   *workflow.Publish
	Bulk      *workflow.BulkPublish
}

// Close releases resources held by the environment.
func (e *appEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initStore opens the configured database backend.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		st, err := store.NewSQLite(cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		zap.L().Info("using sqlite store", zap.String("path", cfg.Store.DatabaseURL))
		return st, nil
	case "postgres", "":
		st, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL, cfg.Store.Pool)
		if err != nil {
			return nil, err
		}
		zap.L().Info("using postgres store")
		return st, nil
	default:
		return nil, eris.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}

// initEnv sets up the store, API clients, and workflows. Callers should
// defer env.Close().
func initEnv(ctx context.Context) (*appEnv, error) {
	if cfg.Anthropic.Key == "" {
		return nil, eris.New("LOCALPAGES_ANTHROPIC_KEY is required")
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	anthropicClient := anthropicpkg.NewClient(cfg.Anthropic.Key)
	generator := anthropicpkg.NewContentGenerator(anthropicClient, anthropicpkg.GenerationConfig{
		Model:       cfg.Anthropic.Model,
		MaxTokens:   cfg.Anthropic.MaxTokens,
		Temperature: cfg.Anthropic.Temperature,
	})

	var wpClient wordpress.Client
	if cfg.WordPress.SiteURL != "" {
		wpClient = wordpress.NewClient(
			cfg.WordPress.SiteURL,
			cfg.WordPress.Username,
			cfg.WordPress.AppPassword,
			wordpress.WithRateLimit(cfg.WordPress.RateLimit),
		)
	} else {
		zap.L().Warn("wordpress not configured, publish commands unavailable")
	}

	business := workflow.Business{
		Service:   cfg.Business.Service,
		Name:      cfg.Business.Name,
		Telephone: cfg.Business.Telephone,
		SiteURL:   cfg.Business.SiteURL,
	}

	research := workflow.NewResearch(st, generator, business).
		WithMaxAttempts(cfg.Anthropic.MaxAttempts)
	publish := workflow.NewPublish(st, wpClient).
		WithMaxAttempts(cfg.WordPress.MaxAttempts)
	bulk := workflow.NewBulkPublish(publish, cfg.Publish.RatePerSecond)

	return &appEnv{
		Store:     st,
		WordPress: wpClient,
		Research:  research,
		Publish:   publish,
		Bulk:      bulk,
	}, nil
}
