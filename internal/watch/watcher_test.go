package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsMatchingChanges(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "build.hcl")
	require.NoError(t, os.WriteFile(target, []byte("# v1"), 0o644))

	changes := make(chan []string, 8)
	w := New([]string{dir}, func(_ context.Context, changed []string) {
		changes <- changed
	}, Options{Extensions: []string{".hcl"}, Debounce: 20 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- w.Run(ctx) }()

	// The watch may not be registered yet, so keep writing until it fires.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	var got []string
loop:
	for {
		select {
		case got = <-changes:
			break loop
		case <-tick.C:
			require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))
			require.NoError(t, os.WriteFile(target, []byte("# v2"), 0o644))
		case <-deadline:
			t.Fatal("no change reported")
		}
	}

	assert.Equal(t, []string{target}, got)

	cancel()
	select {
	case err := <-runErr:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_Matches(t *testing.T) {
	w := New(nil, nil, Options{Extensions: []string{".yaml", ".yml"}})
	assert.True(t, w.matches("/a/build.yaml"))
	assert.True(t, w.matches("b.yml"))
	assert.False(t, w.matches("c.hcl"))
	assert.Equal(t, DefaultDebounce, w.opts.Debounce)

	all := New(nil, nil, Options{})
	assert.True(t, all.matches("anything"))
}

func TestWatcher_MissingPathIsIgnored(t *testing.T) {
	w := New([]string{filepath.Join(t.TempDir(), "missing")}, func(context.Context, []string) {}, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, w.Run(ctx))
}
