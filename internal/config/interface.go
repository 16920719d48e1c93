package config

import (
	"context"
	"errors"
	"fmt"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths (files or directories),
	// translates it into the format-agnostic model and returns it.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// ErrNoConfigFiles is returned when no path yields a configuration file.
var ErrNoConfigFiles = errors.New("no configuration files found")

// MultiLoader runs several loaders over the same paths and merges their
// models. A loader that finds no files of its own format is skipped; the
// combination fails with ErrNoConfigFiles only when every loader found none.
type MultiLoader []Loader

// Load implements Loader.
func (ml MultiLoader) Load(ctx context.Context, paths ...string) (*Model, error) {
	merged := &Model{}
	found := false
	for _, l := range ml {
		m, err := l.Load(ctx, paths...)
		if errors.Is(err, ErrNoConfigFiles) {
			continue
		}
		if err != nil {
			return nil, err
		}
		found = true
		merged.Append(m)
	}
	if !found {
		return nil, fmt.Errorf("%w in %v", ErrNoConfigFiles, paths)
	}
	return merged, nil
}
