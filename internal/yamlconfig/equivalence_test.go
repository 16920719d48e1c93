package yamlconfig_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/vk/kmpgraph/internal/config"
	"github.com/vk/kmpgraph/internal/hclconfig"
	"github.com/vk/kmpgraph/internal/yamlconfig"
)

func TestHCLAndYAMLAgree(t *testing.T) {
	dir := t.TempDir()
	hclFile := filepath.Join(dir, "build.hcl")
	yamlFile := filepath.Join(dir, "build.yaml")

	require.NoError(t, os.WriteFile(hclFile, []byte(`
hierarchy {}

source_set "linuxMain" {
  depends_on = [source_set.commonMain]
}

source_set "linuxX64Main" {
  depends_on = ["linuxMain"]
}

target "linuxX64" {
  platform = "native"
  compilation "main" {
    source_sets = [source_set.linuxX64Main]
  }
}
`), 0o644))
	require.NoError(t, os.WriteFile(yamlFile, []byte(`
hierarchy: {}
source_sets:
  - name: linuxMain
    depends_on: [commonMain]
  - name: linuxX64Main
    depends_on: [linuxMain]
targets:
  - name: linuxX64
    platform: native
    compilations:
      - name: main
        source_sets: [linuxX64Main]
`), 0o644))

	ctx := context.Background()
	fromHCL, err := hclconfig.NewLoader().Load(ctx, hclFile)
	require.NoError(t, err)
	fromYAML, err := yamlconfig.NewLoader().Load(ctx, yamlFile)
	require.NoError(t, err)

	ignoreOrigins := cmpopts.IgnoreFields(config.SourceSet{}, "Origin")
	ignoreTargetOrigins := cmpopts.IgnoreFields(config.Target{}, "Origin")
	ignoreCompOrigins := cmpopts.IgnoreFields(config.Compilation{}, "Origin")
	if diff := cmp.Diff(fromHCL, fromYAML, ignoreOrigins, ignoreTargetOrigins, ignoreCompOrigins); diff != "" {
		t.Errorf("HCL and YAML models differ (-hcl +yaml):\n%s", diff)
	}
	require.NoError(t, config.Validate(fromYAML))
}
