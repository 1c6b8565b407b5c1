// Package docgen provides an HTTP client for the Generation Service.
//
// # Overview
//
// The Generation Service renders branded documents and drafts text. This
// package owns the wire contract and nothing else: the controllers in
// internal/form and internal/draft decide when to call it and what to do
// with the result.
//
// # Endpoints
//
//   - POST /generate: multipart form with parts "logo" (file), "text" and
//     "style". Success returns the document bytes.
//   - POST /ai/generate-text: JSON {"prompt","context"}; returns
//     {"text","success"}.
//   - GET /: service banner {"message","status"}, used as a health check.
//
// # Errors
//
// Any status >= 400 becomes a *ServiceError. The error body is read even on
// the binary endpoint, and its "detail" field is decoded whether the service
// sent a string or a list of validation entries. Transport failures and
// undecodable bodies are wrapped with %w and carry no detail.
//
// Describe maps either kind to the message shown to the user:
//
//	msg := docgen.Describe(err, "The backend may be unreachable.")
//
// # Request Tracing
//
// Every request carries a User-Agent and a fresh X-Request-ID. Both the id
// and the outcome are logged through the configured logrus logger.
//
// # Timeouts
//
// The default client has no timeout. Document rendering can be slow and the
// UI shows a progress indicator for as long as a request is pending; callers
// that want a bound pass WithTimeout.
package docgen
