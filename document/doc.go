// Package document converts between host key/value structures and native
// index documents.
//
// A host document maps field names to values. Each value is one of two
// variants:
//
//   - [Plain]: a string indexed with [field.Default]
//     (stored, tokenized, no term vectors)
//   - [Configured]: a string with an explicit [field.Config]
//
// Hosts hand over loosely typed data, so [ParseValue] accepts the shapes a
// dynamic host produces: a string, a positional descriptor
// {value, store, index, termVector}, or a named descriptor with those keys.
// Validation happens once, in [Parse]; everything downstream works on the
// typed variants.
//
// # Building Native Documents
//
// [Builder.Build] turns a parsed [Document] into a bleve document. Unless the
// host supplies a field named after the default search field, the builder
// adds a non-stored composite field under that name which carries the tokens
// of every indexed field, so unqualified queries match any indexed field.
//
// # Reading Back
//
// [FromNative] enumerates the stored fields of a native document into a fresh
// host [Document]. Fields indexed with store=no never come back.
package document
