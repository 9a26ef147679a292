// Package pathexpr compiles the extended path grammar into PathSegments
// and resolves a compiled path against a concrete value.Value document
// into the set of concrete pointers it addresses. A path segment is
// either a literal key/index, a `*` wildcard, or a `[?...]` predicate,
// and resolution expands each segment against every candidate reached so
// far, so one path can address many concrete locations.
package pathexpr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dashpatch/dashpatch/internal/patcherr"
	"github.com/dashpatch/dashpatch/internal/pointer"
	"github.com/dashpatch/dashpatch/internal/selector"
	"github.com/dashpatch/dashpatch/internal/value"
)

// SegmentKind identifies which PathSegment variant is in play.
type SegmentKind int

const (
	Literal SegmentKind = iota
	Wildcard
	Predicate
)

// PathSegment is one compiled component of a path: a literal reference
// token, a `*` wildcard, or a `[?...]` predicate.
type PathSegment struct {
	Kind SegmentKind
	Tok  string                  // Literal only
	Sel  selector.ParsedSelector // Predicate only
}

// Compile parses raw path text into a sequence of
// PathSegments. An empty text compiles to zero segments (the root).
func Compile(raw string) ([]PathSegment, error) {
	if raw == "" {
		return nil, nil
	}
	if !pointer.HasLeadingSlash(raw) {
		return nil, fmt.Errorf("%w: path %q must start with '/'", patcherr.ErrMalformedPath, raw)
	}

	comps, err := splitComponents(raw[1:])
	if err != nil {
		return nil, err
	}

	segments := make([]PathSegment, 0, len(comps))
	for _, c := range comps {
		seg, err := compileComponent(c)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// splitComponents splits the text after the leading "/" on "/", but treats
// a "[?...]" selector body as opaque even if it contains "/", so that a
// predicate literal like [?path=='/a/b'] survives intact. It also detects
// an unterminated "[?" segment.
func splitComponents(rest string) ([]string, error) {
	var comps []string
	var cur strings.Builder
	depth := 0
	for i := 0; i < len(rest); i++ {
		ch := rest[i]
		switch {
		case ch == '[' && i+1 < len(rest) && rest[i+1] == '?':
			depth++
			cur.WriteByte(ch)
		case ch == ']' && depth > 0:
			depth--
			cur.WriteByte(ch)
		case ch == '/' && depth == 0:
			comps = append(comps, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	if depth > 0 {
		return nil, fmt.Errorf("%w: unterminated '[?' segment", patcherr.ErrMalformedPath)
	}
	comps = append(comps, cur.String())
	return comps, nil
}

func compileComponent(c string) (PathSegment, error) {
	switch {
	case c == "*":
		return PathSegment{Kind: Wildcard}, nil
	case strings.HasPrefix(c, "[?") && strings.HasSuffix(c, "]"):
		body := c[2 : len(c)-1]
		sel, err := selector.Parse(body)
		if err != nil {
			return PathSegment{}, err
		}
		return PathSegment{Kind: Predicate, Sel: sel}, nil
	default:
		return PathSegment{Kind: Literal, Tok: pointer.Unescape(c)}, nil
	}
}

// Resolve walks segments against doc and returns the ordered set of
// concrete pointers they address. Pointers produced by wildcard or
// predicate expansion exist in doc at the time Resolve ran; literal
// segments are appended without an existence check, so a pointer ending
// in literal tokens may address a location that does not exist.
func Resolve(doc *value.Value, segments []PathSegment) []pointer.Pointer {
	current := []pointer.Pointer{{}}

	for _, seg := range segments {
		var next []pointer.Pointer
		switch seg.Kind {
		case Literal:
			for _, p := range current {
				next = append(next, pointer.Append(p, seg.Tok))
			}
		case Wildcard:
			for _, p := range current {
				node := nodeAt(doc, p)
				next = append(next, expandWildcard(p, node)...)
			}
		case Predicate:
			for _, p := range current {
				node := nodeAt(doc, p)
				next = append(next, expandPredicate(p, node, seg.Sel)...)
			}
		}
		current = next
	}
	return current
}

// nodeAt returns the node at pointer p in doc, or nil if any intermediate
// segment is missing or addresses a non-container. Resolve uses this only
// to decide wildcard/predicate expansion; PathNotFound/PathTypeError for
// the final traversal is the applicator's job: existence of the final
// segment is checked at application time, not at resolve time.
func nodeAt(doc *value.Value, p pointer.Pointer) *value.Value {
	cur := doc
	for _, tok := range p {
		if cur == nil {
			return nil
		}
		switch cur.Kind() {
		case value.Object:
			cur = cur.Get(tok)
		case value.Array:
			idx, ok := parseIndex(tok, cur.Len())
			if !ok {
				return nil
			}
			cur = cur.ElementAt(idx)
		default:
			return nil
		}
	}
	return cur
}

func expandWildcard(base pointer.Pointer, node *value.Value) []pointer.Pointer {
	if node == nil {
		return nil
	}
	switch node.Kind() {
	case value.Object:
		keys := node.Keys()
		out := make([]pointer.Pointer, len(keys))
		for i, k := range keys {
			out[i] = pointer.Append(base, k)
		}
		return out
	case value.Array:
		n := node.Len()
		out := make([]pointer.Pointer, n)
		for i := 0; i < n; i++ {
			out[i] = pointer.Append(base, strconv.Itoa(i))
		}
		return out
	default:
		return nil
	}
}

func expandPredicate(base pointer.Pointer, node *value.Value, sel selector.ParsedSelector) []pointer.Pointer {
	if node == nil {
		return nil
	}
	switch node.Kind() {
	case value.Array:
		var out []pointer.Pointer
		for i := 0; i < node.Len(); i++ {
			if selector.Evaluate(node.ElementAt(i), sel) {
				out = append(out, pointer.Append(base, strconv.Itoa(i)))
			}
		}
		return out
	case value.Object:
		var out []pointer.Pointer
		for _, k := range node.Keys() {
			if selector.Evaluate(node.Get(k), sel) {
				out = append(out, pointer.Append(base, k))
			}
		}
		return out
	default:
		return nil
	}
}

// parseIndex parses a decimal array index token:
// it must be the decimal representation of a non-negative integer strictly
// less than length. "-" never parses as an index here.
func parseIndex(tok string, length int) (int, bool) {
	if tok == "" || tok == pointer.Dash {
		return 0, false
	}
	n := 0
	for _, r := range tok {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	if tok[0] == '0' && len(tok) > 1 {
		return 0, false // no non-canonical leading zeros
	}
	if n >= length {
		return 0, false
	}
	return n, true
}

