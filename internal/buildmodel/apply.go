package buildmodel

import (
	"context"
	"fmt"

	"github.com/vk/kmpgraph/internal/config"
	"github.com/vk/kmpgraph/internal/ctxlog"
	"github.com/vk/kmpgraph/internal/nodeid"
)

// Apply declares everything in cfg, after template expansion, in this
// order: source sets, compilations, depends-on edges, compilation inputs.
// It stops at the first error; declarations applied before it are kept.
// Run config.Validate first to get every problem at once.
func (m *Model) Apply(ctx context.Context, cfg *config.Model) error {
	logger := ctxlog.FromContext(ctx)
	expanded := cfg.Expand()

	for _, s := range expanded.SourceSets {
		if _, err := m.DeclareSourceSet(ctx, s.Name); err != nil {
			return withOrigin(s.Origin, err)
		}
	}
	for _, t := range expanded.Targets {
		for _, c := range t.Compilations {
			if _, err := m.DeclareCompilation(ctx, t.Name, c.Name); err != nil {
				return withOrigin(c.Origin, err)
			}
		}
	}
	for _, s := range expanded.SourceSets {
		for _, dep := range s.DependsOn {
			if err := m.DependsOn(ctx, s.Name, dep); err != nil {
				return withOrigin(s.Origin, fmt.Errorf("source set %q: %w", s.Name, err))
			}
		}
	}
	for _, t := range expanded.Targets {
		for _, c := range t.Compilations {
			for _, name := range c.SourceSets {
				if err := m.AddSourceSet(ctx, t.Name, c.Name, name); err != nil {
					id := nodeid.CompilationID{Target: t.Name, Name: c.Name}
					return withOrigin(c.Origin, fmt.Errorf("compilation %s: %w", id, err))
				}
			}
		}
	}

	stats := m.Stats()
	logger.Debug("Applied configuration.",
		"source_sets", len(expanded.SourceSets),
		"targets", len(expanded.Targets),
		"edges", stats.Edges,
		"closure_pairs", stats.ClosurePairs,
		"memberships", stats.Memberships,
	)
	return nil
}

func withOrigin(origin string, err error) error {
	if origin == "" {
		return err
	}
	return fmt.Errorf("%s: %w", origin, err)
}
