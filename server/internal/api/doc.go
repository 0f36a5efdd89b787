// Package api implements the HTTP REST API for clotmeter-server.
//
// New(registry) returns an http.Handler that serves:
//
//	GET  /api/v1/health               — liveness, {"status":"ok"}
//	POST /api/v1/probability          — one calculation (types.AssessmentRequest → types.Assessment)
//	GET  /api/v1/gauge.svg?p=0.42     — the gauge for a probability as SVG
//
// Status codes:
//   - 400 for a malformed body or query parameter
//   - 422 with the invalid-input message when the calculator rejects the input
//   - 404 / 405 for unknown routes and wrong methods
//
// JSON responses carry Content-Type: application/json. Routing uses chi with
// request IDs and panic recovery. Assess is shared with the WebSocket hub.
package api
