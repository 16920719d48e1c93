// Package remote queries a running kmpgraph server over socket.io.
package remote

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/vk/kmpgraph/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultPath is the socket.io endpoint of the query server.
const DefaultPath = "/socket.io/"

// ErrRemote wraps errors reported by the server in its acknowledgement.
var ErrRemote = errors.New("remote query failed")

// Client issues queries against one server.
type Client struct {
	URL                string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// opResult is a private struct to safely pass results through the done channel.
type opResult struct {
	items []string
	err   error
}

// Query connects, emits `query(kind, name)` and waits for the
// acknowledgement, the timeout or ctx, whichever comes first.
func (c *Client) Query(ctx context.Context, kind, name string) ([]string, error) {
	logger := ctxlog.FromContext(ctx).With("url", c.URL, "kind", kind, "name", name)
	logger.Debug("Remote query started")
	defer logger.Debug("Remote query finished")

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	baseURL, path, err := splitURL(c.URL)
	if err != nil {
		return nil, err
	}

	opts := socket.DefaultOptions()
	opts.SetPath(path)
	if c.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket("/", opts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	var isConnected atomic.Bool
	done := make(chan opResult, 1)
	finish := func(res opResult) {
		select {
		case done <- res:
		default:
		}
	}

	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Debug("Connected", "sid", io.Id())
		io.Timeout(timeout).EmitWithAck("query", kind, name)(func(args []any, err error) {
			if err != nil {
				finish(opResult{err: fmt.Errorf("waiting for acknowledgement: %w", err)})
				return
			}
			items, err := decodeAck(args)
			finish(opResult{items: items, err: err})
		})
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connection failed")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = fmt.Errorf("connection failed: %w", e)
			}
		}
		finish(opResult{err: err})
	})

	io.Connect()

	select {
	case <-opCtx.Done():
		if isConnected.Load() {
			return nil, fmt.Errorf("timed out after connecting while waiting for the query answer")
		}
		return nil, fmt.Errorf("timed out while waiting for initial connection")
	case res := <-done:
		return res.items, res.err
	}
}

// splitURL separates the server origin from the socket.io path. An empty
// path selects DefaultPath.
func splitURL(raw string) (baseURL, path string, err error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", "", fmt.Errorf("URL %q must include scheme and host", raw)
	}

	path = parsed.Path
	if path == "" || path == "/" {
		path = DefaultPath
	}
	return fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host), path, nil
}

// decodeAck reads the server's `{"items": [...]}` or `{"error": "..."}`
// acknowledgement.
func decodeAck(args []any) ([]string, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("empty acknowledgement")
	}
	payload, ok := args[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected acknowledgement payload %T", args[0])
	}
	if msg, ok := payload["error"].(string); ok {
		return nil, fmt.Errorf("%w: %s", ErrRemote, msg)
	}

	raw, ok := payload["items"].([]any)
	if !ok {
		return nil, fmt.Errorf("acknowledgement without items")
	}
	items := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected item %T in acknowledgement", item)
		}
		items = append(items, s)
	}
	return items, nil
}
