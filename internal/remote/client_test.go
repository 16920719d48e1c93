package remote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitURL(t *testing.T) {
	testCases := []struct {
		raw      string
		wantBase string
		wantPath string
		wantErr  string
	}{
		{raw: "http://localhost:8080", wantBase: "http://localhost:8080", wantPath: "/socket.io/"},
		{raw: "https://graph.example.com/", wantBase: "https://graph.example.com", wantPath: "/socket.io/"},
		{raw: "http://localhost:8080/custom/", wantBase: "http://localhost:8080", wantPath: "/custom/"},
		{raw: "localhost:8080", wantErr: "must include scheme and host"},
		{raw: "http://[::1", wantErr: "failed to parse URL"},
	}
	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			base, path, err := splitURL(tc.raw)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantBase, base)
			assert.Equal(t, tc.wantPath, path)
		})
	}
}

func TestDecodeAck(t *testing.T) {
	t.Run("items", func(t *testing.T) {
		items, err := decodeAck([]any{map[string]any{"items": []any{"commonMain", "linuxMain"}}})
		require.NoError(t, err)
		assert.Equal(t, []string{"commonMain", "linuxMain"}, items)
	})

	t.Run("empty items", func(t *testing.T) {
		items, err := decodeAck([]any{map[string]any{"items": []any{}}})
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("server error", func(t *testing.T) {
		_, err := decodeAck([]any{map[string]any{"error": "unknown query kind"}})
		assert.ErrorIs(t, err, ErrRemote)
		assert.ErrorContains(t, err, "unknown query kind")
	})

	t.Run("malformed", func(t *testing.T) {
		for _, args := range [][]any{
			nil,
			{"text"},
			{map[string]any{}},
			{map[string]any{"items": []any{1}}},
		} {
			_, err := decodeAck(args)
			assert.Error(t, err, "%v", args)
		}
	})
}

func TestQuery_BadURL(t *testing.T) {
	c := &Client{URL: "not a url", Timeout: time.Second}
	_, err := c.Query(context.Background(), "depends-on", "commonMain")
	assert.Error(t, err)
}
