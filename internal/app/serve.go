package app

import (
	"context"
	"fmt"

	"github.com/vk/kmpgraph/internal/ctxlog"
	"github.com/vk/kmpgraph/internal/server"
	"github.com/vk/kmpgraph/internal/watch"
	"golang.org/x/sync/errgroup"
)

// Serve runs the query server until ctx is cancelled. With Watch set, the
// configuration files are watched and every change is applied to a fresh
// model that replaces the served one; a broken change keeps the old model.
func (a *App) Serve(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	model, err := a.Build(ctx)
	if err != nil {
		return err
	}
	srv, err := server.New(ctx, model, server.Options{CacheSize: a.config.CacheSize})
	if err != nil {
		return fmt.Errorf("failed to create query server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(ctxlog.With(gctx, "component", "server"), a.config.ListenAddr)
	})
	if a.config.Watch {
		w := watch.New(a.config.ConfigPaths, func(ctx context.Context, changed []string) {
			a.reload(ctx, srv, changed)
		}, watch.Options{Extensions: extensionsFor(a.config.Format), Debounce: a.config.Debounce})
		g.Go(func() error {
			logger.Info("👀 Watching configuration for changes", "paths", a.config.ConfigPaths)
			return w.Run(ctxlog.With(gctx, "component", "watch"))
		})
	}
	return g.Wait()
}

// reload rebuilds the model from disk and swaps it into srv.
func (a *App) reload(ctx context.Context, srv *server.Server, changed []string) {
	logger := ctxlog.FromContext(ctx)
	model, err := a.Build(ctx)
	if err != nil {
		logger.Warn("Reload failed, keeping the current model.", "files", changed, "error", err)
		return
	}
	srv.SetModel(ctx, model)
	logger.Info("🔄 Model reloaded", "files", changed, "generation", model.Generation())
}
