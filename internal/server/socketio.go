package server

import (
	"fmt"

	"github.com/vk/kmpgraph/internal/ctxlog"
	"github.com/zishang520/socket.io/v2/socket"
)

// QueryEvent is the socket.io event name clients emit.
const QueryEvent = "query"

// onConnection wires the query event on every new client.
func (s *Server) onConnection(clients ...any) {
	if len(clients) == 0 {
		return
	}
	client, ok := clients[0].(*socket.Socket)
	if !ok {
		return
	}

	logger := ctxlog.FromContext(s.ctx).With("client_id", string(client.Id()))
	logger.Debug("socket.io client connected.")

	client.On(QueryEvent, func(args ...any) {
		s.handleQueryEvent(args...)
	})
	client.On("disconnect", func(reason ...any) {
		logger.Debug("socket.io client disconnected.", "reason", reason)
	})
}

// handleQueryEvent answers `query(kind, name)` through the trailing ack.
// Events without an ack are ignored.
func (s *Server) handleQueryEvent(args ...any) {
	if len(args) == 0 {
		return
	}
	ack, ok := args[len(args)-1].(socket.Ack)
	if !ok {
		ctxlog.FromContext(s.ctx).Debug("Ignoring query event without acknowledgement.")
		return
	}
	args = args[:len(args)-1]

	ack([]any{s.answer(args)}, nil)
}

func (s *Server) answer(args []any) map[string]any {
	if len(args) != 2 {
		return map[string]any{"error": fmt.Sprintf("%v: want (kind, name), got %d arguments", ErrUnknownQuery, len(args))}
	}
	kind, kindOK := args[0].(string)
	name, nameOK := args[1].(string)
	if !kindOK || !nameOK {
		return map[string]any{"error": fmt.Sprintf("%v: kind and name must be strings", ErrUnknownQuery)}
	}

	items, err := s.Query(s.ctx, SourceSocketIO, kind, name)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return map[string]any{"items": items}
}
