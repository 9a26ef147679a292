package patch

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/dashpatch/dashpatch/internal/patcherr"
	"github.com/dashpatch/dashpatch/internal/pointer"
	"github.com/dashpatch/dashpatch/internal/value"
)

// applyAt applies one operation at a single resolved pointer against
// *working, replacing *working with the mutated tree on success. It never
// mutates *working on failure.
//
// validate classifies the failure mode (PathNotFound, PathTypeError,
// TestFailed) before any mutation is attempted, since a generic
// json-patch library error alone can't be trusted to carry that
// distinction. Once validated, add/remove/replace mutations are
// delegated to evanphx/json-patch by marshaling the whole document,
// building a single-operation RFC 6902 patch at the resolved pointer,
// applying it, and unmarshaling the result back. test is evaluated
// directly against the tree; it never goes through the library since it
// never mutates anything.
func applyAt(working **value.Value, kind string, p pointer.Pointer, val *value.Value, hasValue bool) error {
	doc := *working

	if err := validate(doc, kind, p); err != nil {
		return err
	}

	if kind == OpTest {
		existing := nodeAtPointer(doc, p)
		if !value.Equal(existing, val) {
			return patcherr.ErrTestFailed
		}
		return nil
	}

	docBytes, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal working document: %w", err)
	}

	var valBytes json.RawMessage
	if hasValue {
		valBytes, err = val.MarshalJSON()
		if err != nil {
			return fmt.Errorf("marshal operation value: %w", err)
		}
	}

	opBytes, err := buildSingleOpPatch(kind, pointer.Join(p), valBytes, hasValue)
	if err != nil {
		return fmt.Errorf("build RFC 6902 op: %w", err)
	}

	decoded, err := jsonpatch.DecodePatch(opBytes)
	if err != nil {
		return fmt.Errorf("decode RFC 6902 op: %w", err)
	}
	patchedBytes, err := decoded.Apply(docBytes)
	if err != nil {
		return fmt.Errorf("apply RFC 6902 op: %w", err)
	}

	newDoc, err := value.Parse(patchedBytes)
	if err != nil {
		return fmt.Errorf("unmarshal patched document: %w", err)
	}
	*working = newDoc
	return nil
}

func buildSingleOpPatch(kind, path string, valBytes json.RawMessage, hasValue bool) ([]byte, error) {
	wire := struct {
		Op    string          `json:"op"`
		Path  string          `json:"path"`
		Value json.RawMessage `json:"value,omitempty"`
	}{Op: kind, Path: path}
	if hasValue {
		wire.Value = valBytes
	}
	opBytes, err := json.Marshal(wire)
	if err != nil {
		return nil, err
	}
	return append(append([]byte("["), opBytes...), ']'), nil
}

// validate classifies whether applying kind at pointer p in doc would
// succeed, without mutating doc. It walks every token but the last looking
// for a missing key, an out-of-range index, or a non-container in the
// traversal path; the last token is then checked against the rules for
// kind (add tolerates a new object key or an index up to and including
// len(array); remove/replace require the key or index to already exist).
// For test, a missing key or out-of-range index at the final location is
// not a path error: it means the comparison fails, so it is reported as
// ErrTestFailed rather than ErrPathNotFound.
func validate(doc *value.Value, kind string, p pointer.Pointer) error {
	if len(p) == 0 {
		if kind == OpRemove {
			return fmt.Errorf("%w: cannot remove the document root", patcherr.ErrPathTypeError)
		}
		return nil
	}

	cur := doc
	for _, tok := range p[:len(p)-1] {
		switch cur.Kind() {
		case value.Object:
			if !cur.Has(tok) {
				return fmt.Errorf("%w: %q", patcherr.ErrPathNotFound, tok)
			}
			cur = cur.Get(tok)
		case value.Array:
			idx, ok := parseDecimal(tok)
			if !ok {
				return fmt.Errorf("%w: %q is not an array index", patcherr.ErrPathTypeError, tok)
			}
			if idx < 0 || idx >= cur.Len() {
				return fmt.Errorf("%w: index %d out of range", patcherr.ErrPathNotFound, idx)
			}
			cur = cur.ElementAt(idx)
		default:
			return fmt.Errorf("%w: cannot traverse into a %s", patcherr.ErrPathTypeError, cur.Kind())
		}
	}

	last := p[len(p)-1]
	switch cur.Kind() {
	case value.Object:
		switch kind {
		case OpAdd:
			return nil
		default:
			if !cur.Has(last) {
				if kind == OpTest {
					return fmt.Errorf("%w: %q not present", patcherr.ErrTestFailed, last)
				}
				return fmt.Errorf("%w: %q", patcherr.ErrPathNotFound, last)
			}
			return nil
		}
	case value.Array:
		if last == pointer.Dash {
			if kind == OpAdd {
				return nil
			}
			return fmt.Errorf("%w: \"-\" is only valid for add", patcherr.ErrPathTypeError)
		}
		idx, ok := parseDecimal(last)
		if !ok {
			return fmt.Errorf("%w: %q is not an array index", patcherr.ErrPathTypeError, last)
		}
		limit := cur.Len()
		if kind == OpAdd {
			limit++
		}
		if idx < 0 || idx >= limit {
			if kind == OpTest {
				return fmt.Errorf("%w: index %d out of range", patcherr.ErrTestFailed, idx)
			}
			return fmt.Errorf("%w: index %d out of range", patcherr.ErrPathNotFound, idx)
		}
		return nil
	default:
		return fmt.Errorf("%w: cannot address a member of a %s", patcherr.ErrPathTypeError, cur.Kind())
	}
}

// nodeAtPointer walks p against doc; validate has already confirmed this
// succeeds for test operations, so the traversal here is unconditional.
func nodeAtPointer(doc *value.Value, p pointer.Pointer) *value.Value {
	cur := doc
	for _, tok := range p {
		switch cur.Kind() {
		case value.Object:
			cur = cur.Get(tok)
		case value.Array:
			idx, _ := parseDecimal(tok)
			cur = cur.ElementAt(idx)
		default:
			return nil
		}
	}
	return cur
}

// parseDecimal parses a strict non-negative decimal integer with no leading
// zeros (other than "0" itself). It does not bound-check against any
// array's length; callers do that against the rule appropriate to their
// operation.
func parseDecimal(tok string) (int, bool) {
	if tok == "" {
		return 0, false
	}
	if tok[0] == '0' && len(tok) > 1 {
		return 0, false
	}
	n := 0
	for _, r := range tok {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
