package value

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{"object preserves key order", `{"b":1,"a":2,"c":3}`},
		{"array", `[1,2,3]`},
		{"nested", `{"xs":[1,{"a":true,"b":null}]}`},
		{"string escapes", `{"s":"a\nb\"c"}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, err := Parse([]byte(tt.in))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			out, err := v.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON: %v", err)
			}
			v2, err := Parse(out)
			if err != nil {
				t.Fatalf("re-Parse: %v", err)
			}
			if !Equal(v, v2) {
				t.Fatalf("round-trip not equal: %s vs %s", tt.in, out)
			}
			if string(out) != tt.in {
				t.Fatalf("round-trip text changed: %s vs %s", tt.in, out)
			}
		})
	}
}

func TestWildcardEnumeratesInsertionOrder(t *testing.T) {
	t.Parallel()

	v, err := Parse([]byte(`{"a":1,"b":2,"c":3}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := v.Keys()
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Keys() order mismatch (-want +got):\n%s", diff)
	}
}

func TestIntFloatIdentity(t *testing.T) {
	t.Parallel()

	one, err := Parse([]byte(`1`))
	if err != nil {
		t.Fatal(err)
	}
	oneFloat, err := Parse([]byte(`1.0`))
	if err != nil {
		t.Fatal(err)
	}
	if Equal(one, oneFloat) {
		t.Fatalf("expected 1 and 1.0 to differ in integer/float identity")
	}
	if !one.IsInt() || oneFloat.IsInt() {
		t.Fatalf("IsInt flavor mismatch: 1.IsInt=%v 1.0.IsInt=%v", one.IsInt(), oneFloat.IsInt())
	}
}

func TestWholeNumberFloatSurvivesMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	v, err := Parse([]byte(`2.0`))
	if err != nil {
		t.Fatal(err)
	}
	out, err := v.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	v2, err := Parse(out)
	if err != nil {
		t.Fatalf("re-Parse(%s): %v", out, err)
	}
	if v2.IsInt() {
		t.Fatalf("2.0 marshaled to %q, which re-parses as an integer", out)
	}
}

func TestObjectEqualityIsKeySetOrderInsensitive(t *testing.T) {
	t.Parallel()

	a, _ := Parse([]byte(`{"a":1,"b":2}`))
	b, _ := Parse([]byte(`{"b":2,"a":1}`))
	if !Equal(a, b) {
		t.Fatalf("expected objects with same key/value pairs in different order to be equal")
	}
}

func TestArrayEqualityIsOrderSensitive(t *testing.T) {
	t.Parallel()

	a, _ := Parse([]byte(`[1,2]`))
	b, _ := Parse([]byte(`[2,1]`))
	if Equal(a, b) {
		t.Fatalf("expected differently-ordered arrays to be unequal")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	orig, _ := Parse([]byte(`{"xs":[1,2,3]}`))
	clone := orig.Clone()

	clone.Get("xs").Append(NewInt(4))

	if orig.Get("xs").Len() != 3 {
		t.Fatalf("mutating clone affected original: original xs len=%d", orig.Get("xs").Len())
	}
	if clone.Get("xs").Len() != 4 {
		t.Fatalf("clone mutation did not apply: clone xs len=%d", clone.Get("xs").Len())
	}
}

func TestSetPreservesPositionOnReplace(t *testing.T) {
	t.Parallel()

	v, _ := Parse([]byte(`{"a":1,"b":2,"c":3}`))
	v.Set("b", NewInt(99))

	if diff := cmp.Diff([]string{"a", "b", "c"}, v.Keys()); diff != "" {
		t.Fatalf("replacing an existing key changed order (-want +got):\n%s", diff)
	}
	got, _ := v.Get("b").Int64()
	if got != 99 {
		t.Fatalf("Get(b) = %d, want 99", got)
	}
}
