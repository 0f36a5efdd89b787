// Package config loads and watches the server configuration (config.yaml).
//
// Config fields (under the `server:` key):
//   - HTTPPort     — port for the form, REST API, WebSocket hub and /metrics (default 8080)
//   - LogLevel     — debug | info | warn | error (default info)
//   - Auth.Mode    — "apikey" or "none"
//   - Auth.KeyEnv  — environment variable holding the expected API key
//   - Auth.Header  — HTTP header name (default "x-api-key")
//   - UI           — form title, subtitle and gauge size (default 500×50)
//   - WS.Enabled   — mount /ws/calculate (default true)
//
// Load(path) applies defaults before unmarshalling, then validates.
//
// Watch(ctx, path, onChange) uses fsnotify to detect file changes and calls
// onChange with the newly parsed Config. Only LogLevel and UI are meant to
// take effect without a restart.
package config
