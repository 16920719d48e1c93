package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/kmpgraph/internal/buildmodel"
	"github.com/vk/kmpgraph/internal/ctxlog"
	"github.com/vk/kmpgraph/internal/remote"
	"github.com/vk/kmpgraph/internal/report"
)

// ErrInvalidQuery wraps query kinds, names and output formats that cannot
// be answered.
var ErrInvalidQuery = errors.New("invalid query")

// Check builds the model and prints a one-line summary.
func (a *App) Check(ctx context.Context) error {
	model, err := a.Build(ctx)
	if err != nil {
		return err
	}
	stats := model.Stats()
	ctxlog.FromContext(ctx).Info("✅ Configuration is valid.", "generation", model.Generation())
	_, err = fmt.Fprintf(a.outW, "%d source sets, %d compilations, %d depends-on edges, %d closure pairs\n",
		len(model.SourceSets(ctx)), len(model.Compilations(ctx)), stats.Edges, stats.ClosurePairs)
	return err
}

// Query answers a single relation query against the configured files.
func (a *App) Query(ctx context.Context, rawKind, name string) error {
	kind, format, err := a.parseQuery(rawKind)
	if err != nil {
		return err
	}
	model, err := a.Build(ctx)
	if err != nil {
		return err
	}
	items, err := model.Query(ctx, kind, name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	return report.WriteQuery(a.outW, format, report.QueryResult{Kind: kind.String(), Name: name, Items: items})
}

// Export prints the snapshot of every relation in the configured output format.
func (a *App) Export(ctx context.Context) error {
	format, err := report.ParseFormat(a.config.Output)
	if err != nil {
		return err
	}
	model, err := a.Build(ctx)
	if err != nil {
		return err
	}
	return report.WriteSnapshot(a.outW, format, model.Snapshot(ctx))
}

// Remote asks a running server for one query over socket.io.
func (a *App) Remote(ctx context.Context, rawKind, name string) error {
	kind, format, err := a.parseQuery(rawKind)
	if err != nil {
		return err
	}
	client := &remote.Client{URL: a.config.RemoteURL, Timeout: a.config.RemoteTimeout}
	items, err := client.Query(ctx, kind.String(), name)
	if err != nil {
		return err
	}
	return report.WriteQuery(a.outW, format, report.QueryResult{Kind: kind.String(), Name: name, Items: items})
}

func (a *App) parseQuery(rawKind string) (buildmodel.Kind, report.Format, error) {
	kind, err := buildmodel.ParseKind(rawKind)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	format, err := report.ParseFormat(a.config.Output)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	if format == report.FormatHCL {
		return 0, "", fmt.Errorf("%w: output format %q is only available for export", ErrInvalidQuery, format)
	}
	return kind, format, nil
}
