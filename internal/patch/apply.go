package patch

import (
	"github.com/dashpatch/dashpatch/internal/patcherr"
	"github.com/dashpatch/dashpatch/internal/pathexpr"
	"github.com/dashpatch/dashpatch/internal/pointer"
	"github.com/dashpatch/dashpatch/internal/value"
)

// Apply runs a sequence of Operations against doc and returns a new,
// independent document reflecting every one of them. doc is never mutated:
// Apply works against a clone, and on the first failing operation it
// discards that clone and returns the error with no partial result.
//
// Each operation's path is compiled and resolved against the working copy
// as it stands at that point in the sequence, so an earlier operation can
// change what a later wildcard or predicate path matches. A path that
// contains a wildcard or predicate segment and resolves to no pointers at
// all is a silent no-op; a purely literal path always resolves to exactly
// one pointer, whose existence is then checked when the operation is
// applied.
func Apply(doc *value.Value, ops []Operation) (*value.Value, error) {
	working := doc.Clone()

	for i, op := range ops {
		segments, err := pathexpr.Compile(op.Path)
		if err != nil {
			return nil, patcherr.Wrap(i, op.Path, "", err)
		}

		resolved := pathexpr.Resolve(working, segments)
		if len(resolved) == 0 {
			continue
		}
		resolved = reorderForApply(op.Kind, resolved)

		for _, p := range resolved {
			if err := applyAt(&working, op.Kind, p, op.Value, op.HasValue); err != nil {
				return nil, patcherr.Wrap(i, op.Path, pointer.Join(p), err)
			}
		}
	}

	return working, nil
}

// ApplyJSON is the byte-oriented convenience wrapper Apply's callers (the
// CLI's apply command and its dashboard/datasource export commands, which
// fetch and write back through internal/grafana) actually use: it parses both the
// document and the patch, applies the patch, and marshals the result back
// to JSON.
func ApplyJSON(docJSON, patchJSON []byte) ([]byte, error) {
	doc, err := value.Parse(docJSON)
	if err != nil {
		return nil, err
	}
	ops, err := ParsePatch(patchJSON)
	if err != nil {
		return nil, err
	}
	result, err := Apply(doc, ops)
	if err != nil {
		return nil, err
	}
	return result.MarshalJSON()
}

// ResolvePaths is the diagnostic entry point backing the CLI's resolve
// subcommand: it compiles and resolves a single path expression against doc
// without applying any mutation, returning the concrete pointer texts it
// addresses.
func ResolvePaths(doc *value.Value, path string) ([]string, error) {
	segments, err := pathexpr.Compile(path)
	if err != nil {
		return nil, err
	}
	resolved := pathexpr.Resolve(doc, segments)
	out := make([]string, len(resolved))
	for i, p := range resolved {
		out[i] = pointer.Join(p)
	}
	return out, nil
}
