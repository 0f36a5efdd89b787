// Package ws implements the live-calculation WebSocket hub for
// clotmeter-server.
//
// A client connects to /ws/calculate, receives {"event":"ready"}, then sends
// one JSON frame per recalculation (same schema as POST /api/v1/probability).
// Each frame is answered in order with either
//
//	{"event": "assessment", "data": { /* types.Assessment */ }}
//	{"event": "error",      "error": "Invalid input values. ..."}
//
// New(registry) creates a Hub. Hub.Run(ctx) blocks until ctx is cancelled,
// then closes all active connections. Nothing is shared between clients.
//
// The upgrader accepts all origins. Apply CORS restrictions at the reverse
// proxy level.
package ws
