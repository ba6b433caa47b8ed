package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	info := Info()
	for _, want := range []string{"Version: " + Version, "Commit: " + CommitSHA, "Go: go"} {
		if !strings.Contains(info, want) {
			t.Errorf("Info() = %q, want it to contain %q", info, want)
		}
	}
	if Short() != Version {
		t.Errorf("Short() = %q, want %q", Short(), Version)
	}
}
