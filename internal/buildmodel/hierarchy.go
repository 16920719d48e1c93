package buildmodel

import (
	"context"

	"github.com/vk/kmpgraph/internal/config"
)

// ApplyDefaultHierarchy declares the default hierarchy template for the
// given targets: commonMain and commonTest, the metadata compilation and,
// per target T, TMain -> commonMain, TTest -> commonTest with the T/main
// and T/test compilations. Existing declarations are merged.
func (m *Model) ApplyDefaultHierarchy(ctx context.Context, targets ...string) error {
	return m.Apply(ctx, config.DefaultHierarchy(targets...))
}
