// Package mcpserver exposes the facade as MCP tools, for hosts that talk
// JSON-RPC instead of linking Go.
//
// Handles are returned to clients as opaque IDs ("writer-1", "searcher-1",
// "hits-1") and must be passed back to later calls. Failures are returned
// as tool results with IsError set, carrying the facade's error text.
//
// Tools:
//   - open_writer {path}: create an index and return a writer handle
//   - open_searcher {path}: open an index read-only
//   - add_document {handle, fields}: add one document; field values are
//     strings, [value, store, index, termVector] arrays, or
//     {value, store, index, termVector} objects
//   - flush {handle}, optimize {handle}: commit or merge a writer
//   - search {handle, query}: run a query and return a hit set handle
//   - hit {handle, position}: load the stored fields of one hit (1-based)
//   - release {handle}: release any handle
//   - handles {}: list live handle IDs
//
// Example usage:
//
//	srv := mcpserver.New(engine, mcpserver.Config{
//	    ServerInfo: mcpserver.ServerInfo{Name: "luacene", Version: "1.0.0"},
//	})
//	defer srv.Close()
//	err := srv.ServeStdio(ctx)
package mcpserver
