package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_PrintsVersion(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "provo version test-version-1.0.0")
}

func TestSetVersion(t *testing.T) {
	originalVersion := version
	defer func() { version = originalVersion }()

	SetVersion("2.0.0")
	assert.Equal(t, "2.0.0", version)

	// Empty string keeps the current value.
	SetVersion("")
	assert.Equal(t, "2.0.0", version)
}

func TestRootCmd_HasExpectedCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{
		"capture", "search", "related", "link", "decisions", "assumptions",
		"show", "edit", "delete", "graph", "browse", "mcp", "settings", "version",
	} {
		assert.True(t, names[want], "expected command %q to be registered", want)
	}
}
