package codec

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// ErrEncoding reports a byte sequence that is not valid in the source
// encoding. Only strict codecs return it.
var ErrEncoding = errors.New("invalid character encoding")

// Option configures a Codec.
type Option func(*options)

type options struct {
	strict bool
}

// Strict makes conversions fail with ErrEncoding on malformed input instead
// of substituting U+FFFD.
func Strict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// Codec converts strings between a host charset and UTF-8.
type Codec struct {
	charset string
	enc     encoding.Encoding
	strict  bool
}

// New returns a codec for the named IANA charset. An empty name selects
// UTF-8.
func New(charset string, opts ...Option) (Codec, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	name := strings.TrimSpace(charset)
	if name == "" || isUTF8(name) {
		return Codec{charset: "UTF-8", enc: unicode.UTF8, strict: o.strict}, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return Codec{}, fmt.Errorf("unknown charset %q: %w", name, err)
	}
	if enc == nil {
		return Codec{}, fmt.Errorf("unsupported charset %q", name)
	}
	return Codec{charset: canonicalName(enc, name), enc: enc, strict: o.strict}, nil
}

// canonicalName prefers the MIME name (ISO-8859-1) over the IANA primary
// name (ISO_8859-1:1987).
func canonicalName(enc encoding.Encoding, fallback string) string {
	for _, idx := range []*ianaindex.Index{ianaindex.MIME, ianaindex.IANA} {
		if name, err := idx.Name(enc); err == nil && name != "" {
			return name
		}
	}
	return fallback
}

// UTF8 returns the identity codec.
func UTF8() Codec {
	return Codec{charset: "UTF-8", enc: unicode.UTF8}
}

// Charset returns the canonical name of the host charset.
func (c Codec) Charset() string {
	if c.charset == "" {
		return "UTF-8"
	}
	return c.charset
}

// Decode converts a host string to its native UTF-8 form.
func (c Codec) Decode(host string) (string, error) {
	if c.enc == nil || c.enc == unicode.UTF8 {
		return c.repairUTF8(host)
	}
	out, err := c.enc.NewDecoder().String(host)
	if err != nil {
		return "", fmt.Errorf("%w: decode from %s: %v", ErrEncoding, c.Charset(), err)
	}
	// Single-byte decoders map undefined bytes to U+FFFD.
	if c.strict && strings.ContainsRune(out, utf8.RuneError) && !strings.ContainsRune(host, utf8.RuneError) {
		return "", fmt.Errorf("%w: undefined byte in %s input", ErrEncoding, c.Charset())
	}
	return out, nil
}

// Encode converts a native UTF-8 string to the host charset. Runes the host
// charset cannot represent are replaced unless the codec is strict.
func (c Codec) Encode(native string) (string, error) {
	if c.enc == nil || c.enc == unicode.UTF8 {
		return c.repairUTF8(native)
	}
	valid, err := c.repairUTF8(native)
	if err != nil {
		return "", err
	}
	enc := c.enc.NewEncoder()
	if !c.strict {
		enc = encoding.ReplaceUnsupported(enc)
	}
	out, err := enc.String(valid)
	if err != nil {
		return "", fmt.Errorf("%w: encode to %s: %v", ErrEncoding, c.Charset(), err)
	}
	return out, nil
}

// MustDecode is Decode for best-effort codecs, which cannot fail.
func (c Codec) MustDecode(host string) string {
	out, err := c.Decode(host)
	if err != nil {
		panic(err)
	}
	return out
}

// MustEncode is Encode for best-effort codecs, which cannot fail.
func (c Codec) MustEncode(native string) string {
	out, err := c.Encode(native)
	if err != nil {
		panic(err)
	}
	return out
}

func (c Codec) repairUTF8(s string) (string, error) {
	if utf8.ValidString(s) {
		return s, nil
	}
	if c.strict {
		return "", fmt.Errorf("%w: malformed UTF-8", ErrEncoding)
	}
	return strings.ToValidUTF8(s, string(utf8.RuneError)), nil
}

var (
	processOnce  sync.Once
	processCodec Codec
)

// Process returns the best-effort codec for the process locale. The locale is
// read from the environment on first use and fixed for the process lifetime.
func Process() Codec {
	processOnce.Do(func() {
		c, err := New(LocaleCharset(os.Getenv))
		if err != nil {
			c = UTF8()
		}
		processCodec = c
	})
	return processCodec
}

// LocaleCharset extracts the charset of the effective locale using the
// POSIX precedence LC_ALL > LC_CTYPE > LANG. It returns "" when the locale
// names no charset.
func LocaleCharset(getenv func(string) string) string {
	var locale string
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := getenv(key); v != "" {
			locale = v
			break
		}
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return ""
	}
	if at := strings.IndexByte(locale, '@'); at >= 0 {
		locale = locale[:at]
	}
	_, charset, ok := strings.Cut(locale, ".")
	if !ok {
		return ""
	}
	return charset
}

func isUTF8(name string) bool {
	switch strings.ToLower(strings.ReplaceAll(name, "-", "")) {
	case "utf8":
		return true
	default:
		return false
	}
}
