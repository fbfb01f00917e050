// Package api implements the low-level HTTP client for the FormaMail REST API.
//
// It handles request construction, authentication headers, JSON
// encoding/decoding of the {"data": ..., "meta": ...} response envelope,
// and retries with exponential backoff. The public SDK surface in the
// root package wraps this client and converts its errors into the
// exported error types.
package api
