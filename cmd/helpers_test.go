//go:build !integration

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/aquanqa/aquanqa-cli/internal/attendance"
	"github.com/aquanqa/aquanqa-cli/internal/config"
	"github.com/aquanqa/aquanqa-cli/internal/export"
	"github.com/aquanqa/aquanqa-cli/internal/roster"
	"github.com/aquanqa/aquanqa-cli/internal/validate"
)

// testConfig returns the configuration Load produces with no file or env.
func testConfig() *config.Config {
	rules := validate.DefaultOmissionRules()
	return &config.Config{
		Log: config.LogConfig{Level: "info", Format: "console"},
		Validation: config.ValidateConfig{
			Workers:          2,
			CodeSampleSize:   500,
			CodeMinScore:     0.45,
			OmitKeywords:     rules.Keywords,
			OmitCodePrefixes: rules.CodePrefixes,
			HideNeutral:      true,
		},
		Attendance: attendance.DefaultColumns(),
		Roster:     roster.DefaultColumns(),
	}
}

// useConfig installs c as the command config for the duration of the test.
func useConfig(t *testing.T, c *config.Config) {
	t.Helper()
	old := cfg
	cfg = c
	t.Cleanup(func() { cfg = old })
}

func writeWorkbook(t *testing.T, header []string, rows ...[]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, export.SaveWorkbook(path, export.Sheet{Name: "Hoja1", Header: header, Rows: rows}))
	return path
}

// runCmd executes cmd's RunE with stdout captured.
func runCmd(t *testing.T, cmd *cobra.Command) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	t.Cleanup(func() { cmd.SetOut(nil) })
	err := cmd.RunE(cmd, nil)
	return buf.String(), err
}
