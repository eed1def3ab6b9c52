package cli

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- Command tree tests ----------

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, name := range []string{"consolidate", "validate", "inspect"} {
		assert.Contains(t, names, name, "missing subcommand: %s", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
}

func TestConsolidateCommandFlags(t *testing.T) {
	cmd := newConsolidateCommand()
	flags := []string{
		"output", "manifest-name", "token", "fallback-branch",
		"fetch-delay-ms", "http-timeout", "api-url", "raw-url",
		"report", "on-conflict",
	}
	for _, name := range flags {
		flag := cmd.Flags().Lookup(name)
		assert.NotNil(t, flag, "missing flag: %s", name)
	}
}

// ---------- Exit code tests ----------

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).WithMsg("bad input"), 1},
		{errbuilder.New().WithCode(errbuilder.CodeNotFound).WithMsg("missing"), 1},
		{errbuilder.New().WithCode(errbuilder.CodeFailedPrecondition).WithMsg("conflict without resolution"), 3},
		{errbuilder.New().WithCode(errbuilder.CodeInternal).WithMsg("boom"), 5},
		{errors.New("plain"), 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, exitCodeForError(tt.err), tt.err.Error())
	}
}

// ---------- Helper function tests ----------

func TestResolveStringPrefersChangedFlag(t *testing.T) {
	cmd := newConsolidateCommand()
	require.NoError(t, cmd.Flags().Set("output", "custom.txt"))
	assert.Equal(t, "custom.txt", resolveString(cmd, "custom.txt", "output", "output"))
}

func TestResolveStringNilCommand(t *testing.T) {
	assert.Equal(t, "value", resolveString(nil, "value", "missing_key", ""))
}

func TestFlagChangedNilCommand(t *testing.T) {
	assert.False(t, flagChanged(nil, "output"))
}
