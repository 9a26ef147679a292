package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// jsonMarshalString reuses encoding/json's string escaping rather than
// reimplementing RFC 8259 §7 escaping by hand.
func jsonMarshalString(s string) ([]byte, error) {
	return json.Marshal(s)
}

// Parse decodes JSON bytes into a Value tree. Object member order is
// preserved and numeric literals keep their
// integer/float distinction by decoding through json.Decoder
// with UseNumber rather than json.Unmarshal into interface{}, which would
// collapse every number to float64 and every object to an unordered map.
func Parse(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("value: parse: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("value: parse: trailing data after document")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		case '[':
			elems := []*Value{}
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				elems = append(elems, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return NewArray(elems), nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	case nil:
		return NewNull(), nil
	case bool:
		return NewBool(t), nil
	case string:
		return NewString(t), nil
	case json.Number:
		return numberFromLiteral(string(t))
	default:
		return nil, fmt.Errorf("unexpected token %v (%T)", t, t)
	}
}

// numberFromLiteral classifies a JSON number literal as integer- or
// float-flavored: a literal containing '.', 'e', or 'E' is a float;
// otherwise it is an integer, falling back to float64 if it overflows
// int64.
func numberFromLiteral(lit string) (*Value, error) {
	if !strings.ContainsAny(lit, ".eE") {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return NewInt(i), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number literal %q: %w", lit, err)
	}
	return NewFloat(f), nil
}

// FromGo converts a generic Go value (as produced by encoding/json's default
// interface{} unmarshaling, or passed in from a CLI flag) into a Value tree.
// Numbers arriving as json.Number preserve int/float flavor; numbers arriving
// as plain float64 are always float-flavored, matching encoding/json's own
// collapse of the distinction for untyped decodes.
func FromGo(v any) (*Value, error) {
	switch t := v.(type) {
	case nil:
		return NewNull(), nil
	case bool:
		return NewBool(t), nil
	case string:
		return NewString(t), nil
	case json.Number:
		return numberFromLiteral(string(t))
	case float64:
		return NewFloat(t), nil
	case int:
		return NewInt(int64(t)), nil
	case int64:
		return NewInt(t), nil
	case []any:
		elems := make([]*Value, len(t))
		for i, e := range t {
			ev, err := FromGo(e)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return NewArray(elems), nil
	case map[string]any:
		obj := NewObject()
		for _, k := range sortedMapKeys(t) {
			ev, err := FromGo(t[k])
			if err != nil {
				return nil, err
			}
			obj.Set(k, ev)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("value: cannot convert %T to Value", v)
	}
}

// sortedMapKeys gives FromGo's map[string]any path a deterministic (if not
// necessarily meaningful) insertion order, since a Go map carries none of
// its own. Values arriving this way (e.g. YAML-decoded CLI input) should
// prefer Parse on the original JSON/YAML bytes when source order matters.
func sortedMapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
