package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	settings, err := LoadSettings(nil, "")
	require.NoError(t, err)

	assert.Equal(t, "warn", settings.Logging.Level)
	assert.Equal(t, "console", settings.Logging.Format)
	assert.Equal(t, "console", settings.Output.Format)
	assert.Equal(t, 0, settings.Batch.Workers)
	assert.Empty(t, settings.TablesFile)
}

func TestLoadSettings_File(t *testing.T) {
	path := writeFile(t, "regimecalc.yaml", `
logging:
  level: debug
  format: json
  output_file: /tmp/regimecalc.log
tables_file: tables/fy2026.yaml
output:
  format: csv
batch:
  workers: 3
`)

	settings, err := LoadSettings(NewViper(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", settings.Logging.Level)
	assert.Equal(t, "json", settings.Logging.Format)
	assert.Equal(t, "/tmp/regimecalc.log", settings.Logging.OutputFile)
	assert.Equal(t, "tables/fy2026.yaml", settings.TablesFile)
	assert.Equal(t, "csv", settings.Output.Format)
	assert.Equal(t, 3, settings.Batch.Workers)
}

func TestLoadSettings_DefaultFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "regimecalc.yaml"), []byte("output:\n  format: json\n"), 0644))
	chdir(t, dir)

	settings, err := LoadSettings(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "json", settings.Output.Format)
}

func TestLoadSettings_EnvOverrides(t *testing.T) {
	path := writeFile(t, "regimecalc.yaml", "logging:\n  level: info\n")
	t.Setenv("REGIMECALC_LOGGING_LEVEL", "error")
	t.Setenv("REGIMECALC_BATCH_WORKERS", "8")

	settings, err := LoadSettings(NewViper(), path)
	require.NoError(t, err)

	assert.Equal(t, "error", settings.Logging.Level)
	assert.Equal(t, 8, settings.Batch.Workers)
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := map[string]string{
		"level":   "logging:\n  level: loud\n",
		"format":  "logging:\n  format: xml\n",
		"workers": "batch:\n  workers: -1\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "regimecalc.yaml", content)
			_, err := LoadSettings(NewViper(), path)
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), "invalid") || strings.Contains(err.Error(), "negative"))
		})
	}

	_, err := LoadSettings(NewViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"", "console", "json"} {
		logger, err := NewLogger(LoggingConfig{Level: "info", Format: format}, "")
		require.NoError(t, err, "format %q", format)
		assert.NotNil(t, logger)
	}

	_, err := NewLogger(LoggingConfig{Format: "xml"}, "")
	assert.Error(t, err)
	_, err = NewLogger(LoggingConfig{Level: "info"}, "chatty")
	assert.Error(t, err)
}

func TestNewLogger_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "regimecalc.log")

	logger, err := NewLogger(LoggingConfig{Level: "warn", Format: "json", OutputFile: path}, "debug")
	require.NoError(t, err)
	logger.Debug("override applied")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "override applied")
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
