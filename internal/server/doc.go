// Package server exposes a loaded build model to diagnostic tooling.
//
// Two transports answer the same queries:
//
//   - HTTP: GET /v1/query?kind=<kind>&name=<name>, GET /v1/snapshot,
//     GET /health and the Prometheus endpoint GET /metrics
//   - socket.io at /socket.io/: event "query" with (kind, name) and an
//     acknowledgement carrying {"items": [...]} or {"error": "..."}
//
// Answers are cached per model generation. The served model can be swapped
// at any time with SetModel, which is how configuration reloads reach
// connected clients.
package server
