package yamlconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/kmpgraph/internal/config"
)

func writeYAML(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

const linuxBuild = `hierarchy:
  default: true
source_sets:
  - name: linuxMain
    depends_on: [commonMain]
targets:
  - name: linuxX64
    platform: native
    compilations:
      - name: main
        source_sets:
          - linuxX64Main
          - linuxMain
`

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	file := writeYAML(t, dir, "build.yaml", linuxBuild)
	writeYAML(t, dir, "extra.yml", "source_sets:\n  - name: jvmExtra\n")

	m, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	extra := filepath.Join(dir, "extra.yml")
	want := &config.Model{
		DefaultHierarchy: true,
		SourceSets: []*config.SourceSet{
			{Name: "linuxMain", DependsOn: []string{"commonMain"}, Origin: file + ":4"},
			{Name: "jvmExtra", Origin: extra + ":2"},
		},
		Targets: []*config.Target{{
			Name:     "linuxX64",
			Platform: "native",
			Origin:   file + ":7",
			Compilations: []*config.Compilation{
				{Name: "main", SourceSets: []string{"linuxX64Main", "linuxMain"}, Origin: file + ":10"},
			},
		}},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown key is rejected", func(t *testing.T) {
		p := writeYAML(t, t.TempDir(), "build.yaml", "source_sets:\n  - name: a\n    dependsOn: [b]\n")
		_, err := NewLoader().Load(ctx, p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dependsOn")
	})

	t.Run("malformed document", func(t *testing.T) {
		p := writeYAML(t, t.TempDir(), "build.yaml", "source_sets: [\n")
		_, err := NewLoader().Load(ctx, p)
		assert.ErrorContains(t, err, "failed to decode YAML file")
	})

	t.Run("empty file is an empty model", func(t *testing.T) {
		p := writeYAML(t, t.TempDir(), "build.yaml", "")
		m, err := NewLoader().Load(ctx, p)
		require.NoError(t, err)
		assert.Empty(t, m.SourceSets)
	})

	t.Run("no files", func(t *testing.T) {
		_, err := NewLoader().Load(ctx, t.TempDir())
		assert.ErrorIs(t, err, config.ErrNoConfigFiles)
	})
}
