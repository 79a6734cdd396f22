// Package metrics provides Prometheus collectors for luacene operations.
//
// A Metrics value owns its collectors; call Register once with the
// registry the process exposes. All recording methods are safe on a nil
// *Metrics, so callers that run without metrics pass nil.
//
// # Collectors
//
//   - luacene_operations_total{op,status}: facade operations by outcome
//   - luacene_documents_added_total: documents accepted by writers
//   - luacene_search_duration_seconds: query execution time
//   - luacene_live_handles{kind}: writers, searchers, and hit sets not yet released
//   - luacene_http_requests_total / luacene_http_request_duration_seconds:
//     requests served through Middleware
//
// # Thread Safety
//
// All methods are safe for concurrent use.
package metrics
