package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jonathan/skill-gap-advisor/internal/advisor"
	"github.com/jonathan/skill-gap-advisor/internal/config"
)

// loadConfig resolves configuration: file, then environment, then defaults
func loadConfig() (*config.Config, error) {
	var cfg config.Config
	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	cfg.ApplyEnv(os.Getenv)
	if rootVerbose {
		cfg.Verbose = true
	}
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// newLogger logs to stderr; debug output only in verbose mode
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openAdvisor loads configuration and builds the advisor with every
// configured capability
func openAdvisor(ctx context.Context) (*advisor.Advisor, *config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := newLogger(cfg.Verbose)
	slog.SetDefault(logger)

	a, closeFn, err := advisor.Open(ctx, cfg, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize advisor: %w", err)
	}
	if rootConfigPath != "" {
		logger.Debug("loaded config", slog.String("path", rootConfigPath))
	}
	return a, cfg, closeFn, nil
}

// splitCSV splits a comma-separated flag value, dropping blanks
func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// writeJSON writes v as indented JSON to path, or to w when path is empty
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
