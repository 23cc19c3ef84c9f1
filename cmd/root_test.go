package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	// Collect subcommand names.
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	// Verify expected subcommands are registered.
	expected := []string{"validate", "roles", "attendance", "roster"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "aquanqa", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestValidateCommand_Flags(t *testing.T) {
	for _, name := range []string{"file", "sheet", "person", "document", "date", "ceco", "activity", "code", "rules", "search", "ceco-contains", "activity-contains", "show-neutral", "sort", "desc", "detail", "member", "skip-rows", "output"} {
		require.NotNil(t, validateCmd.Flags().Lookup(name), "validate command should have --%s flag", name)
	}

	filter := validateCmd.Flags().Lookup("filter")
	require.NotNil(t, filter)
	assert.Equal(t, "all", filter.DefValue)

	format := validateCmd.Flags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "table", format.DefValue)
}

func TestRosterCommand_Flags(t *testing.T) {
	require.NotNil(t, rosterCmd.Flags().Lookup("global"))
	require.NotNil(t, rosterCmd.Flags().Lookup("filter"))

	dir := rosterCmd.Flags().Lookup("output-dir")
	require.NotNil(t, dir)
	assert.Equal(t, ".", dir.DefValue)
}

func TestAttendanceCommand_Flags(t *testing.T) {
	require.NotNil(t, attendanceCmd.Flags().Lookup("file"))
	require.NotNil(t, attendanceCmd.Flags().Lookup("output"))
	require.NotNil(t, attendanceCmd.Flags().Lookup("member"))
	require.NotNil(t, rolesCmd.Flags().Lookup("file"))
	require.NotNil(t, rolesCmd.Flags().Lookup("sheet"))

	skip := attendanceCmd.Flags().Lookup("skip-rows")
	require.NotNil(t, skip)
	assert.Equal(t, "-1", skip.DefValue)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "corto", truncate("corto", 10))
	assert.Equal(t, "Cosecha...", truncate("Cosecha de arandano", 10))
	assert.Equal(t, "Peñ...", truncate("Peñaloza Ana", 6))
}
