// Package metrics counts calculations served by the server and exposes the
// counts in Prometheus text exposition format.
//
// Registry is safe for concurrent use. It records:
//
//	clotmeter_calculations_total{color}    — successful calculations per gauge tier
//	clotmeter_invalid_inputs_total{surface} — rejected inputs per surface (api|form|ws)
//
// Registry.ServeHTTP writes the families with expfmt, so GET /metrics can be
// scraped by any Prometheus-compatible collector. No lab values are kept.
package metrics
