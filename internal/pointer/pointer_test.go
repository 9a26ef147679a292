package pointer

import "testing"

func TestSplitJoinRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []string{
		"",
		"/a",
		"/a/b",
		"/a/b~1c/~0d",
		"/xs/-",
		"/foo~0bar",
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt, func(t *testing.T) {
			t.Parallel()
			got := Join(Split(tt))
			if got != tt {
				t.Fatalf("Join(Split(%q)) = %q", tt, got)
			}
		})
	}
}

func TestSplitDecodesEscapes(t *testing.T) {
	t.Parallel()

	got := Split("/a/b~1c/~0d")
	want := Pointer{"a", "b/c", "~d"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDashNotUnescaped(t *testing.T) {
	t.Parallel()

	got := Split("/xs/-")
	if got[1] != Dash {
		t.Fatalf("expected dash token preserved literally, got %q", got[1])
	}
}
