// Package codec converts scalar strings between the host's character
// encoding and the UTF-8 representation used by the native index.
//
// The host encoding is the process locale charset, derived once from the
// environment (LC_ALL, then LC_CTYPE, then LANG). Locales without a charset,
// the C/POSIX locale, and charsets unknown to the IANA registry all resolve
// to UTF-8.
//
// # Malformed Input
//
// A [Codec] built with default options never fails: invalid byte sequences
// are replaced with U+FFFD and conversion continues. This matches the
// best-effort behavior hosts expect when they hand over arbitrary bytes.
// Pass [Strict] to fail with [ErrEncoding] instead.
//
// # Usage
//
//	c := codec.Process()
//	native, _ := c.Decode(hostBytes) // host -> UTF-8
//	host, _ := c.Encode(native)      // UTF-8 -> host
//
// # Thread Safety
//
// Codec values are immutable and safe for concurrent use.
package codec
