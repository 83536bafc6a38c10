package strings

import (
	"testing"

	"fixqueue/internal/platform/testkit"
)

func TestMustString(t *testing.T) {
	if got := MustString("ok", "field"); got != "ok" {
		t.Fatalf("MustString passthrough = %q", got)
	}
	testkit.MustPanic(t, func() { MustString("   ", "field") })
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"/repairs/priority":  "/repairs/priority",
		"repairs/priority":   "/repairs/priority",
		" /inventory/ ":      "/inventory",
		"//repairs":          "/repairs",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	testkit.MustPanic(t, func() { MustPrefix("  ") })
	testkit.MustPanic(t, func() { MustPrefix("/") })
}

func TestPtrDeref(t *testing.T) {
	if Ptr("") != nil {
		t.Fatalf("Ptr of empty string should be nil")
	}
	if got := Deref(Ptr("x")); got != "x" {
		t.Fatalf("Deref round trip = %q", got)
	}
	if got := Deref(nil); got != "" {
		t.Fatalf("Deref(nil) = %q", got)
	}
}
