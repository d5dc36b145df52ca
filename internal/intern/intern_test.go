package intern

import (
	"testing"
	"unsafe"
)

func TestInternDeduplicates(t *testing.T) {
	tbl := New()

	a := tbl.Intern("name")
	b := tbl.Intern("name")
	c := tbl.Intern("id")

	if a != "name" || b != "name" {
		t.Fatalf("Intern returned wrong value: a=%q b=%q", a, b)
	}
	if c != "id" {
		t.Fatalf("Intern returned wrong value: c=%q", c)
	}
	if got := tbl.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
}

func TestInternReturnsSameBackingString(t *testing.T) {
	tbl := New()

	first := tbl.Intern(string([]byte("shared")))
	second := tbl.Intern(string([]byte("shared")))

	if first != second {
		t.Fatalf("interned values not equal: %q vs %q", first, second)
	}
	if unsafe.StringData(first) != unsafe.StringData(second) {
		t.Fatalf("second Intern call did not return the retained backing string")
	}
	if tbl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tbl.Len())
	}
}

func TestInternEmptyString(t *testing.T) {
	tbl := New()
	if got := tbl.Intern(""); got != "" {
		t.Fatalf("Intern(\"\") = %q, want empty", got)
	}
	if tbl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tbl.Len())
	}
}
