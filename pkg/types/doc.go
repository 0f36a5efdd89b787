// Package types defines the JSON shapes shared by the server (REST API and
// WebSocket hub) and the clotcalc CLI, plus the display strings every
// surface shows for a result.
//
// AssessmentRequest carries the five lab inputs; Assessment carries the
// calculator output, the gauge colour and three preformatted lines.
package types
