// Package introspect is the controller's introspection HTTP surface: a
// read-only view of module lifecycle state and scheduled tasks, a
// POST /api/v1/shutdown endpoint that gives an external caller the same
// stop path as a signal or a critical error, and a named-operation
// invocation endpoint any module can expose one of its
// pkg/channel.Operation handlers through (see RegisterOperation).
//
// The server is a gin engine with a Logger/Recovery middleware stack and
// an /api/v1 router group dispatching to a Handler; gin-contrib/zap routes
// request logging through the same zap sink as the rest of the runtime,
// and golang-jwt/jwt/v5 gates the shutdown endpoint behind an optional
// bearer token.
package introspect
