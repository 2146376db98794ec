package version

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if !strings.HasPrefix(String(), Version) {
		t.Errorf("String() = %q, want prefix %q", String(), Version)
	}
	if !strings.Contains(String(), GitCommit) {
		t.Errorf("String() = %q, want commit %q", String(), GitCommit)
	}
}
