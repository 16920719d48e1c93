package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/kmpgraph/internal/buildmodel"
	"github.com/vk/kmpgraph/internal/server"
)

const linuxJvmBuild = `
hierarchy {
  default = true
}

target "jvm" {
  platform = "jvm"
}

target "linuxX64" {
  platform = "native"
}

source_set "linuxMain" {
  depends_on = [source_set.commonMain]
}

source_set "linuxX64Main" {
  depends_on = [source_set.linuxMain]
}
`

func writeBuild(t *testing.T, content string) (dir, file string) {
	t.Helper()
	dir = t.TempDir()
	file = filepath.Join(dir, "build.hcl")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return dir, file
}

func TestApp_Check(t *testing.T) {
	// --- Arrange ---
	dir, _ := writeBuild(t, linuxJvmBuild)
	a, out, _ := SetupAppTest(t, Config{ConfigPaths: []string{dir}})

	// --- Act ---
	err := a.Check(a.Context(context.Background()))

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "7 source sets, 5 compilations, 6 depends-on edges, 6 closure pairs\n", out.String())
}

func TestApp_Query(t *testing.T) {
	dir, _ := writeBuild(t, linuxJvmBuild)

	tests := []struct {
		kind, name string
		want       string
	}{
		{"compilations", "commonMain", "jvm/main\nlinuxX64/main\nmetadata/main\n"},
		{"source-sets", "linuxX64/main", "commonMain\nlinuxMain\nlinuxX64Main\n"},
		{"depends-on-closure", "linuxX64Main", "commonMain\nlinuxMain\n"},
		{"reverse-depends-on", "linuxMain", "linuxX64Main\n"},
		{"depends-on", "missing", ""},
	}
	for _, tt := range tests {
		t.Run(tt.kind+"/"+tt.name, func(t *testing.T) {
			a, out, _ := SetupAppTest(t, Config{ConfigPaths: []string{dir}})
			require.NoError(t, a.Query(a.Context(context.Background()), tt.kind, tt.name))
			assert.Equal(t, tt.want, out.String())
		})
	}

	t.Run("json output", func(t *testing.T) {
		a, out, _ := SetupAppTest(t, Config{ConfigPaths: []string{dir}, Output: "json"})
		require.NoError(t, a.Query(a.Context(context.Background()), "depends-on", "linuxMain"))
		assert.JSONEq(t, `{"kind":"depends-on","name":"linuxMain","items":["commonMain"]}`, out.String())
	})

	t.Run("unknown kind", func(t *testing.T) {
		a, _, _ := SetupAppTest(t, Config{ConfigPaths: []string{dir}})
		err := a.Query(a.Context(context.Background()), "ancestors", "linuxMain")
		require.ErrorIs(t, err, buildmodel.ErrUnknownKind)
		require.ErrorIs(t, err, ErrInvalidQuery)
	})

	t.Run("malformed compilation", func(t *testing.T) {
		a, _, _ := SetupAppTest(t, Config{ConfigPaths: []string{dir}})
		err := a.Query(a.Context(context.Background()), "source-sets", "linuxX64")
		require.ErrorIs(t, err, ErrInvalidQuery)
	})

	t.Run("hcl output", func(t *testing.T) {
		a, _, _ := SetupAppTest(t, Config{ConfigPaths: []string{dir}, Output: "hcl"})
		err := a.Query(a.Context(context.Background()), "depends-on", "linuxMain")
		require.ErrorIs(t, err, ErrInvalidQuery)
	})
}

func TestApp_Export(t *testing.T) {
	dir, _ := writeBuild(t, linuxJvmBuild)
	a, out, _ := SetupAppTest(t, Config{ConfigPaths: []string{dir}, Output: "hcl"})

	require.NoError(t, a.Export(a.Context(context.Background())))

	assert.Contains(t, out.String(), `source_set "linuxX64Main"`)
	assert.Contains(t, out.String(), `compilation "metadata" "main"`)
}

func TestApp_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name: "cycle",
			content: `
source_set "a" { depends_on = [source_set.b] }
source_set "b" { depends_on = [source_set.a] }
`,
			want: "depends-on cycle",
		},
		{
			name:    "syntax error",
			content: `source_set "a" {`,
			want:    "failed to parse HCL file",
		},
		{
			name:    "unknown reference",
			content: `source_set "a" { depends_on = ["nowhere"] }`,
			want:    "unknown source set",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, _ := writeBuild(t, tt.content)
			a, out, _ := SetupAppTest(t, Config{ConfigPaths: []string{dir}})

			err := a.Check(a.Context(context.Background()))

			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
			assert.Empty(t, out.String())
		})
	}

	t.Run("no files", func(t *testing.T) {
		a, _, _ := SetupAppTest(t, Config{ConfigPaths: []string{t.TempDir()}})
		err := a.Check(a.Context(context.Background()))
		require.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "no configuration files found")
	})

	t.Run("no paths", func(t *testing.T) {
		a, _, _ := SetupAppTest(t, Config{})
		err := a.Check(a.Context(context.Background()))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestApp_FormatSelectsLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(`source_set "fromHCL" {}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("source_sets:\n  - name: fromYAML\n"), 0o644))

	tests := []struct {
		format string
		want   string
	}{
		{FormatAuto, "2 source sets"},
		{FormatHCL, "1 source sets"},
		{FormatYAML, "1 source sets"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			a, out, _ := SetupAppTest(t, Config{ConfigPaths: []string{dir}, Format: tt.format})
			require.NoError(t, a.Check(a.Context(context.Background())))
			assert.True(t, strings.HasPrefix(out.String(), tt.want), out.String())
		})
	}

	assert.Equal(t, []string{".hcl", ".yaml", ".yml"}, extensionsFor(FormatAuto))
	assert.Equal(t, []string{".yaml", ".yml"}, extensionsFor(FormatYAML))
}

func TestApp_Reload(t *testing.T) {
	// --- Arrange ---
	dir, file := writeBuild(t, linuxJvmBuild)
	a, _, logs := SetupAppTest(t, Config{ConfigPaths: []string{dir}})
	ctx := a.Context(context.Background())

	model, err := a.Build(ctx)
	require.NoError(t, err)
	srv, err := server.New(ctx, model, server.Options{})
	require.NoError(t, err)

	// --- Act: a valid change replaces the model ---
	require.NoError(t, os.WriteFile(file, []byte(linuxJvmBuild+`source_set "extra" {}`+"\n"), 0o644))
	a.reload(ctx, srv, []string{file})

	// --- Assert ---
	reloaded := srv.Model()
	assert.NotSame(t, model, reloaded)
	assert.Contains(t, reloaded.SourceSets(ctx), "extra")
	assert.NotContains(t, model.SourceSets(ctx), "extra", "the previous model must not be mutated")

	// --- Act: a broken change keeps the current model ---
	require.NoError(t, os.WriteFile(file, []byte(`source_set "a" {`), 0o644))
	a.reload(ctx, srv, []string{file})

	// --- Assert ---
	assert.Same(t, reloaded, srv.Model())
	assert.Contains(t, logs.String(), "Reload failed")
}

func TestApp_ServeStopsOnCancel(t *testing.T) {
	dir, _ := writeBuild(t, linuxJvmBuild)
	a, _, _ := SetupAppTest(t, Config{
		ConfigPaths: []string{dir},
		ListenAddr:  "127.0.0.1:0",
		Watch:       true,
	})

	ctx, cancel := context.WithCancel(a.Context(context.Background()))
	cancel()

	assert.NoError(t, a.Serve(ctx))
}
