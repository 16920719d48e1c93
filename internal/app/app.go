package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/vk/kmpgraph/internal/buildmodel"
	"github.com/vk/kmpgraph/internal/config"
	"github.com/vk/kmpgraph/internal/ctxlog"
	"github.com/vk/kmpgraph/internal/hclconfig"
	"github.com/vk/kmpgraph/internal/inmemoryrelations"
	"github.com/vk/kmpgraph/internal/yamlconfig"
)

// ErrInvalidConfig wraps every problem found while loading, validating or
// applying the build configuration.
var ErrInvalidConfig = errors.New("invalid build configuration")

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
}

// NewApp is the constructor for the main application. Command results are
// written to outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loaderFor(cfg.Format),
	}
}

// Context returns ctx carrying the application's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Load reads and validates the configuration files.
func (a *App) Load(ctx context.Context) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading configuration...", "paths", a.config.ConfigPaths, "format", a.config.Format)

	if len(a.config.ConfigPaths) == 0 {
		return nil, fmt.Errorf("%w: no configuration paths given", ErrInvalidConfig)
	}
	cfg, err := a.loader.Load(ctx, a.config.ConfigPaths...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("%w:\n%w", ErrInvalidConfig, err)
	}

	logger.Debug("Configuration loaded and validated.", "source_sets", len(cfg.SourceSets), "targets", len(cfg.Targets))
	return cfg, nil
}

// Build loads the configuration into a fresh build model.
func (a *App) Build(ctx context.Context) (*buildmodel.Model, error) {
	cfg, err := a.Load(ctx)
	if err != nil {
		return nil, err
	}
	model := buildmodel.New(inmemoryrelations.Factory)
	if err := model.Apply(ctx, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return model, nil
}

// loaderFor picks the configuration loader for a format name.
func loaderFor(format string) config.Loader {
	switch format {
	case FormatHCL:
		return hclconfig.NewLoader()
	case FormatYAML:
		return yamlconfig.NewLoader()
	default:
		return config.MultiLoader{hclconfig.NewLoader(), yamlconfig.NewLoader()}
	}
}

// extensionsFor lists the file extensions a format reads.
func extensionsFor(format string) []string {
	switch format {
	case FormatHCL:
		return []string{hclconfig.Extension}
	case FormatYAML:
		return slices.Clone(yamlconfig.Extensions)
	default:
		return append([]string{hclconfig.Extension}, yamlconfig.Extensions...)
	}
}
