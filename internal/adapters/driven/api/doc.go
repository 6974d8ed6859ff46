// Package api provides driven port implementations backed by a remote
// provo API server over HTTP.
//
// The client speaks the JSON contract of the provo REST API: fragments,
// links, decisions, assumptions and search. One Client implements every
// storage port plus the Searcher, so the service layer cannot tell a
// remote server from the local SQLite store.
//
// # Error Mapping
//
//   - 404 maps to domain.ErrNotFound
//   - 400 and 422 map to domain.ErrValidation
//   - everything else, including network failures, maps to
//     domain.ErrTransport
//
// Requests are throttled client-side with a token bucket so a busy TUI
// does not hammer the server.
package api
