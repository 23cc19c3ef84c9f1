package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 4, cfg.Validation.Workers)
	assert.Equal(t, 500, cfg.Validation.CodeSampleSize)
	assert.InDelta(t, 0.45, cfg.Validation.CodeMinScore, 0.001)
	assert.True(t, cfg.Validation.HideNeutral)
	assert.Contains(t, cfg.Validation.OmitKeywords, "lavado de jarras")
	assert.Contains(t, cfg.Validation.OmitCodePrefixes, "PODA-020-")
	assert.Equal(t, 0, cfg.Input.SheetIndex)
	assert.Equal(t, 0, cfg.Input.SkipRows)
	assert.Empty(t, cfg.Input.CSVComment)
	assert.Equal(t, "DNI", cfg.Attendance.Document)
	assert.Equal(t, "Hr Entrada", cfg.Attendance.CheckIn)
	assert.Len(t, cfg.Attendance.Justifications, 5)
	assert.Equal(t, "NRO. DOCUMENTO", cfg.Roster.Global)
	assert.Equal(t, "DNI", cfg.Roster.Filter)
	assert.NoError(t, cfg.Validate("validate"))
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
  format: json
validate:
  workers: 8
  omit_keywords:
    - riego
  omit_code_prefixes: []
  hide_neutral: false
input:
  csv_delimiter: ";"
  csv_comment: "#"
  skip_rows: 2
attendance:
  name: Trabajador
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8, cfg.Validation.Workers)
	assert.Equal(t, []string{"riego"}, cfg.Validation.OmitKeywords)
	assert.False(t, cfg.Validation.HideNeutral)
	assert.Equal(t, ";", cfg.Input.CSVDelimiter)
	assert.Equal(t, "#", cfg.Input.CSVComment)
	assert.Equal(t, 2, cfg.Input.SkipRows)
	assert.Equal(t, "Trabajador", cfg.Attendance.Name)
	// Defaults still apply for unset values
	assert.Equal(t, "DNI", cfg.Attendance.Document)
	assert.Equal(t, 500, cfg.Validation.CodeSampleSize)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
validate:
  workers: 8
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("AQUANQA_LOG_LEVEL", "warn")
	t.Setenv("AQUANQA_VALIDATE_WORKERS", "2")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 2, cfg.Validation.Workers)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("AQUANQA_ROSTER_GLOBAL", "DOCUMENTO")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "DOCUMENTO", cfg.Roster.Global)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: [unclosed"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestValidateConfig_Options(t *testing.T) {
	c := ValidateConfig{Workers: 3, CodeSampleSize: 50, CodeMinScore: 0.6, OmitKeywords: []string{"acopio"}}
	opts := c.Options()

	assert.Equal(t, 3, opts.Workers)
	assert.Equal(t, 50, opts.Infer.SampleSize)
	assert.InDelta(t, 0.6, opts.Infer.MinScore, 0.001)
	require.NotNil(t, opts.Rules)
	assert.Equal(t, []string{"acopio"}, opts.Rules.Keywords)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Validation.Workers = 4
	cfg.Validation.CodeSampleSize = 500
	cfg.Validation.CodeMinScore = 0.45
	cfg.Attendance.Document = "DNI"
	cfg.Roster.Global = "NRO. DOCUMENTO"
	cfg.Roster.Filter = "DNI"
	return cfg
}

func TestValidate_AllModesPass(t *testing.T) {
	cfg := validDefaults()
	for _, mode := range []string{"validate", "roles", "attendance", "roster"} {
		assert.NoError(t, cfg.Validate(mode), mode)
	}
}

func TestValidate_WorkerBounds(t *testing.T) {
	cfg := validDefaults()

	cfg.Validation.Workers = 0
	err := cfg.Validate("validate")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validate.workers must be between 1 and 64")

	cfg.Validation.Workers = 65
	assert.Error(t, cfg.Validate("validate"))

	cfg.Validation.Workers = 64
	assert.NoError(t, cfg.Validate("validate"))
}

func TestValidate_CodeInference(t *testing.T) {
	cfg := validDefaults()
	cfg.Validation.CodeMinScore = 1.5
	cfg.Validation.CodeSampleSize = 0

	err := cfg.Validate("roles")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code_min_score")
	assert.Contains(t, err.Error(), "code_sample_size")
}

func TestValidate_ColumnsRequired(t *testing.T) {
	cfg := validDefaults()
	cfg.Attendance.Document = " "
	cfg.Roster.Filter = ""

	err := cfg.Validate("attendance")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "attendance.document is required")

	err = cfg.Validate("roster")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "roster.filter is required")
}

func TestValidate_Input(t *testing.T) {
	cfg := validDefaults()
	cfg.Input.CSVDelimiter = ";;"
	cfg.Input.SheetIndex = -1
	cfg.Input.SkipRows = -1
	cfg.Input.CSVComment = "//"

	err := cfg.Validate("validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv_delimiter")
	assert.Contains(t, err.Error(), "sheet_index")
	assert.Contains(t, err.Error(), "skip_rows")
	assert.Contains(t, err.Error(), "csv_comment")
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
