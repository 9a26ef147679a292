// Package patch implements the top-level patch processor and operation
// applicator: it deep-clones the input document, resolves each
// operation's path against the working copy via internal/pathexpr,
// reorders the resolved pointers, and applies the mutation at each one,
// delegating the actual per-pointer mutation to
// github.com/evanphx/json-patch/v5 through a marshal-apply-unmarshal
// boundary.
package patch

import (
	"encoding/json"
	"fmt"

	"github.com/dashpatch/dashpatch/internal/patcherr"
	"github.com/dashpatch/dashpatch/internal/value"
)

// Operation kinds recognized by the wire format. move/copy
// are valid JSON but rejected with ErrUnsupportedOperation: the extended
// path grammar makes move/copy's "from" semantics
// ambiguous.
const (
	OpAdd     = "add"
	OpRemove  = "remove"
	OpReplace = "replace"
	OpTest    = "test"
)

// Operation is one compiled patch entry: the wire op string, the raw
// (uncompiled) text path, and its value (present for add/replace/test,
// absent for remove).
type Operation struct {
	Kind     string
	Path     string
	Value    *value.Value
	HasValue bool
}

// ParsePatch decodes a JSON patch document into Operations, validating
// op/value-shape (InvalidValueShape,
// UnsupportedOperation) before any path resolution happens.
func ParsePatch(data []byte) ([]Operation, error) {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("patch: decode patch document: %w", err)
	}

	ops := make([]Operation, len(raw))
	for i, m := range raw {
		op, err := parseOneOperation(i, m)
		if err != nil {
			return nil, err
		}
		ops[i] = op
	}
	return ops, nil
}

func parseOneOperation(index int, m map[string]json.RawMessage) (Operation, error) {
	opRaw, ok := m["op"]
	if !ok {
		return Operation{}, patcherr.Wrap(index, "", "", fmt.Errorf("%w: missing \"op\"", patcherr.ErrInvalidValueShape))
	}
	var kind string
	if err := json.Unmarshal(opRaw, &kind); err != nil {
		return Operation{}, patcherr.Wrap(index, "", "", fmt.Errorf("%w: \"op\" must be a string", patcherr.ErrInvalidValueShape))
	}

	var path string
	if pathRaw, ok := m["path"]; ok {
		if err := json.Unmarshal(pathRaw, &path); err != nil {
			return Operation{}, patcherr.Wrap(index, "", "", fmt.Errorf("%w: \"path\" must be a string", patcherr.ErrInvalidValueShape))
		}
	}

	switch kind {
	case OpAdd, OpRemove, OpReplace, OpTest:
	default:
		return Operation{}, patcherr.Wrap(index, path, "", fmt.Errorf("%w: %q", patcherr.ErrUnsupportedOperation, kind))
	}

	valRaw, hasValue := m["value"]
	if kind == OpRemove && hasValue {
		return Operation{}, patcherr.Wrap(index, path, "", fmt.Errorf("%w: %q must not carry a value", patcherr.ErrInvalidValueShape, kind))
	}
	if kind != OpRemove && !hasValue {
		return Operation{}, patcherr.Wrap(index, path, "", fmt.Errorf("%w: %q requires a value", patcherr.ErrInvalidValueShape, kind))
	}

	var val *value.Value
	if hasValue {
		v, err := value.Parse(valRaw)
		if err != nil {
			return Operation{}, patcherr.Wrap(index, path, "", fmt.Errorf("%w: invalid value: %v", patcherr.ErrInvalidValueShape, err))
		}
		val = v
	}

	return Operation{Kind: kind, Path: path, Value: val, HasValue: hasValue}, nil
}
