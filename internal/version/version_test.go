package version

import (
	"testing"

	"github.com/fatih/color"
)

func withNoColor(t *testing.T, v bool) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = v
	t.Cleanup(func() { color.NoColor = prev })
}

func withVersion(t *testing.T, v string) {
	t.Helper()
	prev := Version
	Version = v
	t.Cleanup(func() { Version = prev })
}

func TestColoredPlainMatchesVersion(t *testing.T) {
	withNoColor(t, true)
	for _, v := range []string{"0.1.0-dev", "1.2.3", "weird", "1.2"} {
		withVersion(t, v)
		if got := Colored(); got != v {
			t.Errorf("Colored() = %q, want %q", got, v)
		}
	}
}

func TestColoredAddsEscapes(t *testing.T) {
	withNoColor(t, false)
	withVersion(t, "1.2.3-rc1")
	got := Colored()
	if got == Version {
		t.Fatal("expected ANSI escapes")
	}
	if want := "-rc1"; got[len(got)-len(want):] != want {
		t.Errorf("suffix lost: %q", got)
	}
}
