// Package selector implements the predicate language used by `[?...]` path
// segments: parsing and evaluation of expressions like
// `type=='row' && title=~'^prod-'`, chained left to right with no operator
// precedence between `&&` and `||`.
package selector

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dashpatch/dashpatch/internal/patcherr"
	"github.com/dashpatch/dashpatch/internal/value"
)

// Comparator identifies a condition's comparison operator.
type Comparator int

const (
	EQ Comparator = iota
	NE
	REGEX
	IN
)

func (c Comparator) String() string {
	switch c {
	case EQ:
		return "=="
	case NE:
		return "!="
	case REGEX:
		return "=~"
	case IN:
		return "in"
	default:
		return "?"
	}
}

// Condition is one `key <cmp> literal` clause.
type Condition struct {
	Key  string
	Cmp  Comparator
	Lit  string
}

// LogicalOp combines two Conditions' results.
type LogicalOp int

const (
	And LogicalOp = iota
	Or
)

// ParsedSelector is a non-empty sequence of Conditions joined by len(Conditions)-1
// LogicalOps, always starting and ending on a Condition by construction:
// there is no representation here for a
// dangling operator.
type ParsedSelector struct {
	Conditions []Condition
	Ops        []LogicalOp
}

var opSplit = regexp.MustCompile(`\s+(&&|\|\|)\s+`)

// comparatorTokens is scanned in priority order: "==", "!=", "=~", then
// the word "in" padded with spaces.
var comparatorTokens = []struct {
	token string
	cmp   Comparator
}{
	{"==", EQ},
	{"!=", NE},
	{"=~", REGEX},
	{" in ", IN},
}

// Parse parses the body of a `[?...]` segment (brackets and leading `?`
// already stripped by the caller) into a ParsedSelector.
func Parse(body string) (ParsedSelector, error) {
	chunks, ops := splitLogical(body)

	sel := ParsedSelector{
		Conditions: make([]Condition, 0, len(chunks)),
		Ops:        ops,
	}
	for _, chunk := range chunks {
		cond, err := parseCondition(chunk)
		if err != nil {
			return ParsedSelector{}, err
		}
		sel.Conditions = append(sel.Conditions, cond)
	}
	if len(sel.Conditions) == 0 {
		return ParsedSelector{}, fmt.Errorf("%w: empty predicate body", patcherr.ErrMalformedSelector)
	}
	return sel, nil
}

// splitLogical splits body on whitespace-surrounded && / ||, preserving
// their order.
func splitLogical(body string) (chunks []string, ops []LogicalOp) {
	locs := opSplit.FindAllStringSubmatchIndex(body, -1)
	prev := 0
	for _, loc := range locs {
		chunks = append(chunks, body[prev:loc[0]])
		opText := body[loc[2]:loc[3]]
		if opText == "&&" {
			ops = append(ops, And)
		} else {
			ops = append(ops, Or)
		}
		prev = loc[1]
	}
	chunks = append(chunks, body[prev:])
	return chunks, ops
}

func parseCondition(chunk string) (Condition, error) {
	for _, ct := range comparatorTokens {
		idx := strings.Index(chunk, ct.token)
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(chunk[:idx])
		lit := strings.TrimSpace(chunk[idx+len(ct.token):])
		lit = stripMatchingQuotes(lit)
		return Condition{Key: key, Cmp: ct.cmp, Lit: lit}, nil
	}
	return Condition{}, fmt.Errorf("%w: %q", patcherr.ErrMalformedCondition, chunk)
}

func stripMatchingQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// Evaluate evaluates sel against candidate: non-Objects are
// rejected (always false), an absent key makes its Condition false, and
// LogicalOps combine strictly left-to-right with no operator precedence.
func Evaluate(candidate *value.Value, sel ParsedSelector) bool {
	if candidate.Kind() != value.Object {
		return false
	}

	result := evalCondition(candidate, sel.Conditions[0])
	for i, op := range sel.Ops {
		next := evalCondition(candidate, sel.Conditions[i+1])
		if op == And {
			result = result && next
		} else {
			result = result || next
		}
	}
	return result
}

func evalCondition(candidate *value.Value, cond Condition) bool {
	if !candidate.Has(cond.Key) {
		return false
	}
	field := candidate.Get(cond.Key)

	text, ok := field.Text()
	if !ok {
		// arrays/objects compare as false for any comparator
		return false
	}

	switch cond.Cmp {
	case EQ:
		return text == cond.Lit
	case NE:
		return text != cond.Lit
	case REGEX:
		return matchesAtStart(cond.Lit, text)
	case IN:
		return strings.Contains(text, cond.Lit)
	default:
		return false
	}
}

// matchesAtStart anchors the match at the candidate text's start instead
// of allowing a match anywhere in the string. An invalid regex literal
// never matches rather than panicking.
func matchesAtStart(pattern, text string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	loc := re.FindStringIndex(text)
	return loc != nil && loc[0] == 0
}
