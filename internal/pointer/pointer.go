// Package pointer implements RFC 6901 JSON Pointer reference-token
// splitting, joining, and escaping.
package pointer

import "strings"

// Dash is the RFC 6902 array-append marker. It is never escaped or
// unescaped since it carries special meaning rather than literal text.
const Dash = "-"

// Pointer is an ordered sequence of already-unescaped reference tokens. An
// empty Pointer denotes the document root.
type Pointer []string

// Split decodes a JSON Pointer text into reference tokens, unescaping "~1"
// to "/" and "~0" to "~" (order matters: "/" first, then "~"). An empty
// text denotes the root (zero tokens). A
// non-empty text that does not begin with "/" is malformed; callers should
// check that with a leading-slash test before calling Split if they need to
// distinguish it from the legitimate empty-root case.
func Split(text string) Pointer {
	if text == "" {
		return Pointer{}
	}
	trimmed := strings.TrimPrefix(text, "/")
	parts := strings.Split(trimmed, "/")
	tokens := make(Pointer, len(parts))
	for i, p := range parts {
		if p == Dash {
			tokens[i] = p
			continue
		}
		tokens[i] = Unescape(p)
	}
	return tokens
}

// Join encodes a sequence of reference tokens back into JSON Pointer text.
func Join(tokens Pointer) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		if t == Dash {
			b.WriteString(t)
			continue
		}
		b.WriteString(Escape(t))
	}
	return b.String()
}

// Escape encodes a single reference token per RFC 6901: "~" must be escaped
// before "/" to avoid double-escaping the result of the first substitution.
func Escape(tok string) string {
	tok = strings.ReplaceAll(tok, "~", "~0")
	tok = strings.ReplaceAll(tok, "/", "~1")
	return tok
}

// Unescape decodes a single reference token per RFC 6901: "~1" must be
// unescaped to "/" before "~0" is unescaped to "~", the reverse order of
// Escape, or "~01" would decode incorrectly.
func Unescape(tok string) string {
	tok = strings.ReplaceAll(tok, "~1", "/")
	tok = strings.ReplaceAll(tok, "~0", "~")
	return tok
}

// Append returns a new Pointer with tok appended, never mutating base.
func Append(base Pointer, tok string) Pointer {
	next := make(Pointer, len(base)+1)
	copy(next, base)
	next[len(base)] = tok
	return next
}

// HasLeadingSlash reports whether a non-empty raw path text starts with "/",
// the first half of the MalformedPath check.
func HasLeadingSlash(text string) bool {
	return strings.HasPrefix(text, "/")
}
