// Package auth provides authentication middleware for the clotmeter server.
//
// APIKey(mode, header, key) returns HTTP middleware that validates the API key
// from the named request header (or the api_key query parameter, for browser
// WebSocket clients). It guards /api/ and /ws/; the HTML form is public.
//
// When mode != "apikey" or key == "", all requests pass through (useful for
// local development with auth disabled). When the key is incorrect or absent,
// the middleware answers 401 immediately.
package auth
