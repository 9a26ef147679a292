package pathexpr

import (
	"testing"

	"github.com/dashpatch/dashpatch/internal/pointer"
	"github.com/dashpatch/dashpatch/internal/value"
)

func mustCompile(t *testing.T, raw string) []PathSegment {
	t.Helper()
	segs, err := Compile(raw)
	if err != nil {
		t.Fatalf("Compile(%q): %v", raw, err)
	}
	return segs
}

func mustDoc(t *testing.T, text string) *value.Value {
	t.Helper()
	v, err := value.Parse([]byte(text))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return v
}

func pointerTexts(ps []pointer.Pointer) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = pointer.Join(p)
	}
	return out
}

func TestCompileMalformedPath(t *testing.T) {
	t.Parallel()
	if _, err := Compile("a/b"); err == nil {
		t.Fatalf("expected error for path without leading slash")
	}
	if _, err := Compile("/a/[?x=='1'"); err == nil {
		t.Fatalf("expected error for unterminated selector")
	}
}

func TestResolveLiteralPath(t *testing.T) {
	t.Parallel()
	doc := mustDoc(t, `{"a":{"b":1}}`)
	segs := mustCompile(t, "/a/b")
	got := pointerTexts(Resolve(doc, segs))
	want := []string{"/a/b"}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolveWildcardInsertionOrder(t *testing.T) {
	t.Parallel()
	doc := mustDoc(t, `{"a":1,"b":2,"c":3}`)
	segs := mustCompile(t, "/*")
	got := pointerTexts(Resolve(doc, segs))
	want := []string{"/a", "/b", "/c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestResolveSelectorOnArray(t *testing.T) {
	t.Parallel()
	doc := mustDoc(t, `{"panels":[{"type":"row"},{"type":"graph"},{"type":"row"}]}`)
	segs := mustCompile(t, "/panels/[?type=='row']/type")
	got := pointerTexts(Resolve(doc, segs))
	want := []string{"/panels/0/type", "/panels/2/type"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestResolveEmptySelectorIsSilentNoOp(t *testing.T) {
	t.Parallel()
	doc := mustDoc(t, `{"panels":[{"type":"row"}]}`)
	segs := mustCompile(t, "/panels/[?type=='graph']/type")
	got := Resolve(doc, segs)
	if len(got) != 0 {
		t.Fatalf("expected empty resolution, got %v", pointerTexts(got))
	}
}

func TestResolveMixedWildcardAndSelector(t *testing.T) {
	t.Parallel()
	doc := mustDoc(t, `{"panels":[{"type":"row","opts":{"x":1,"y":2}}]}`)
	segs := mustCompile(t, "/panels/[?type=='row']/opts/*")
	got := pointerTexts(Resolve(doc, segs))
	want := []string{"/panels/0/opts/x", "/panels/0/opts/y"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
