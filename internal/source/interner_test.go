package source_test

import (
	"testing"

	"cascade/internal/source"
)

func TestInternerRoundtrip(t *testing.T) {
	in := source.NewInterner()

	a := in.Intern("hello")
	b := in.Intern("world")
	if a == b {
		t.Fatal("distinct strings got the same id")
	}
	if again := in.Intern("hello"); again != a {
		t.Errorf("re-intern = %d, want %d", again, a)
	}
	if got := in.MustLookup(a); got != "hello" {
		t.Errorf("lookup = %q", got)
	}
	if _, ok := in.Lookup(source.StringID(999)); ok {
		t.Error("lookup of unknown id must fail")
	}
}

func TestInternerEmptyStringIsNoStringID(t *testing.T) {
	in := source.NewInterner()
	if got := in.Intern(""); got != source.NoStringID {
		t.Errorf("empty string id = %d, want NoStringID", got)
	}
	if in.Len() != 1 {
		t.Errorf("fresh interner Len = %d, want 1", in.Len())
	}
}
