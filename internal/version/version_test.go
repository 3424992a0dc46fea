package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	got := String("codex")
	for _, want := range []string{"codex ", Version, "commit=" + Commit, GoVersion} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}
