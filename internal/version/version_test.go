package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestPretty_PlainWhenColorDisabled(t *testing.T) {
	origNoColor := color.NoColor
	origVersion := Version
	t.Cleanup(func() {
		color.NoColor = origNoColor
		Version = origVersion
	})
	color.NoColor = true

	tests := []struct {
		version string
		want    string
	}{
		{"1.2.3", "1.2.3"},
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.0.0-beta.1", "1.0.0-beta.1"},
		{"nightly", "nightly"},
		{"", "dev"},
	}
	for _, tt := range tests {
		Version = tt.version
		if got := Pretty(); got != tt.want {
			t.Errorf("Pretty() with Version=%q = %q, want %q", tt.version, got, tt.want)
		}
	}
}

func TestPretty_ColoursComponents(t *testing.T) {
	origNoColor := color.NoColor
	origVersion := Version
	t.Cleanup(func() {
		color.NoColor = origNoColor
		Version = origVersion
	})
	color.NoColor = false
	Version = "1.2.3"

	if got := Pretty(); got == "1.2.3" {
		t.Errorf("Pretty() = %q, want ANSI colouring", got)
	}
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})

	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	if Version != "1.2.3" || GitCommit != "abc123def456" || BuildDate != "2024-01-15T10:30:00Z" {
		t.Errorf("override failed: %q %q %q", Version, GitCommit, BuildDate)
	}
}
