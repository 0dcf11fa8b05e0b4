package advisor

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jonathan/skill-gap-advisor/internal/config"
	"github.com/jonathan/skill-gap-advisor/internal/db"
	"github.com/jonathan/skill-gap-advisor/internal/llm"
	"github.com/jonathan/skill-gap-advisor/internal/taxonomy"
	"github.com/jonathan/skill-gap-advisor/internal/templates"
	"github.com/jonathan/skill-gap-advisor/internal/videos"
)

// Open builds an Advisor from configuration. Static tables and templates are
// loaded once here. Capabilities that cannot be initialized are logged and
// left disabled. The returned close function releases provider clients.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Advisor, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}

	tax, err := LoadTaxonomy(cfg.TaxonomyPath)
	if err != nil {
		return nil, nil, err
	}

	registry, err := LoadTemplates(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	client, status := llm.Open(ctx, cfg.LLMConfig(), cfg.LLMAPIKey(), logger)
	embedder := llm.OpenEmbedder(ctx, cfg.EmbeddingConfig(), logger)
	searcher := videos.New(ctx, cfg.YouTubeAPIKey, cfg.VideoTimeout(), logger)

	a, err := New(Deps{
		Taxonomy:           tax,
		Templates:          registry,
		Client:             client,
		LLMStatus:          status,
		Embedder:           embedder,
		Searcher:           searcher,
		Clusters:           cfg.Clusters,
		Concurrency:        cfg.EnrichmentConcurrency,
		GenerationTimeout:  cfg.GenerationTimeout(),
		DefaultLevel:       cfg.Level,
		DefaultWeeklyHours: cfg.WeeklyHours,
		Logger:             logger,
	})
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		if client != nil {
			if err := client.Close(); err != nil {
				logger.Warn("failed to close LLM client", slog.Any("error", err))
			}
		}
		if c, ok := embedder.(io.Closer); ok {
			if err := c.Close(); err != nil {
				logger.Warn("failed to close embedder", slog.Any("error", err))
			}
		}
	}
	return a, closeFn, nil
}

// LoadTaxonomy reads the static tables from path, or the built-in tables
// when path is empty
func LoadTaxonomy(path string) (*taxonomy.Taxonomy, error) {
	if path == "" {
		return taxonomy.Default()
	}
	tax, err := taxonomy.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}
	return tax, nil
}

// LoadTemplates resolves the job template registry: a configured file first,
// then the database, then the built-in templates. A database that cannot be
// reached or holds no templates falls back to the built-ins.
func LoadTemplates(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*templates.Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.JobTemplatesPath != "" {
		return templates.LoadFile(cfg.JobTemplatesPath)
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("failed to connect to database, using built-in job templates", slog.Any("error", err))
			return templates.Default(), nil
		}
		defer database.Close()

		registry, err := templates.LoadFromStore(ctx, database)
		if err != nil {
			logger.Warn("failed to load job templates from database, using built-in job templates", slog.Any("error", err))
			return templates.Default(), nil
		}
		if registry.Len() == 0 {
			logger.Warn("database holds no job templates, using built-in job templates")
			return templates.Default(), nil
		}
		return registry, nil
	}

	return templates.Default(), nil
}
