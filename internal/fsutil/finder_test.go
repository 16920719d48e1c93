package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("#"), 0o644))
	}
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.hcl", "nested/b.hcl", "c.yaml")

	files, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "nested", "b.hcl"),
	}, files)

	assert.Panics(t, func() { _, _ = FindFilesByExtension(root, "") })
}

func TestFindFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "z.yml", "b/config.yaml", "a/main.hcl", "notes.txt")

	t.Run("directories are searched for every extension", func(t *testing.T) {
		files, err := FindFiles([]string{root}, ".yaml", ".yml")
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "b", "config.yaml"),
			filepath.Join(root, "z.yml"),
		}, files)
	})

	t.Run("plain files are filtered by extension", func(t *testing.T) {
		files, err := FindFiles([]string{
			filepath.Join(root, "notes.txt"),
			filepath.Join(root, "a", "main.hcl"),
		}, ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "a", "main.hcl")}, files)
	})

	t.Run("duplicates and missing paths", func(t *testing.T) {
		files, err := FindFiles([]string{
			root,
			filepath.Join(root, "a", "main.hcl"),
			filepath.Join(root, "does-not-exist"),
		}, ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "a", "main.hcl")}, files)
	})

	t.Run("no extensions", func(t *testing.T) {
		assert.Panics(t, func() { _, _ = FindFiles([]string{root}) })
	})
}
