package kcmdline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, getDefaultConfig(), config)
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), DefaultConfigFile)

	configContent := `
source: ./cmdline.txt
format: json
log_level: debug
profiles:
  server: "root=/dev/sda1 ro quiet"
  rescue: "single init=/bin/sh"
rules:
  - name: quiet-boot
    expr: "quiet && !debug"
    message: production boots must be quiet
  - name: has-root
    expr: "present.root"
    severity: warning
`

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	assert.NoError(t, err)

	config, err := LoadConfig(configPath)
	assert.NoError(t, err)
	assert.Equal(t, "./cmdline.txt", config.Source)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, []string{"rescue", "server"}, config.ProfileNames())
	assert.Equal(t, []Rule{
		{Name: "quiet-boot", Expr: "quiet && !debug", Severity: SeverityError, Message: "production boots must be quiet"},
		{Name: "has-root", Expr: "present.root", Severity: SeverityWarning},
	}, config.Rules)
}

func TestLoadConfig_StrictMode_UnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), DefaultConfigFile)

	configContent := `
format: text
unknown_key: "should cause error"
`

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	assert.NoError(t, err)

	_, err = LoadConfig(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestParseConfig_AppliesDefaults(t *testing.T) {
	config, err := ParseConfig([]byte("profiles:\n  a: quiet\n"))
	assert.NoError(t, err)
	assert.Equal(t, "proc", config.Source)
	assert.Equal(t, "text", config.Format)
	assert.Equal(t, "warn", config.LogLevel)
	assert.Equal(t, []Rule{}, config.Rules)
}

func TestParseConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{
			name:    "unknown format",
			content: "format: xml\n",
			message: "invalid format 'xml'",
		},
		{
			name:    "unknown log level",
			content: "log_level: trace\n",
			message: "invalid log_level 'trace'",
		},
		{
			name:    "rule without name",
			content: "rules:\n  - expr: quiet\n",
			message: "rules[0].name is required",
		},
		{
			name:    "rule without expression",
			content: "rules:\n  - name: empty\n",
			message: "rules[0].expr is required",
		},
		{
			name:    "duplicate rule",
			content: "rules:\n  - name: a\n    expr: quiet\n  - name: a\n    expr: ro\n",
			message: "rule 'a' is defined more than once",
		},
		{
			name:    "unknown severity",
			content: "rules:\n  - name: a\n    expr: quiet\n    severity: fatal\n",
			message: "invalid rules[0].severity 'fatal': must be one of error, warning",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.content))
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfigValidation))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestParseConfig_ExpandsEnvironment(t *testing.T) {
	t.Setenv("KCMDLINE_ROOT", "/dev/nvme0n1p2")
	t.Setenv("KCMDLINE_LEVEL", "4")

	content := `
source: ${KCMDLINE_ROOT}
profiles:
  server: "root=${KCMDLINE_ROOT} loglevel=$KCMDLINE_LEVEL ro"
rules:
  - name: level
    expr: "loglevel == ${KCMDLINE_LEVEL}u"
`

	config, err := ParseConfig([]byte(content))
	assert.NoError(t, err)
	assert.Equal(t, "/dev/nvme0n1p2", config.Source)
	assert.Equal(t, "root=/dev/nvme0n1p2 loglevel=4 ro", config.Profiles["server"])
	assert.Equal(t, "loglevel == 4u", config.Rules[0].Expr)
}

func TestConfig_Profile(t *testing.T) {
	config := getDefaultConfig()
	config.Profiles["server"] = "ro quiet"

	line, err := config.Profile("server")
	assert.NoError(t, err)
	assert.Equal(t, "ro quiet", line)

	_, err = config.Profile("desktop")
	assert.True(t, errors.Is(err, ErrProfileNotFound))
	assert.Contains(t, err.Error(), "'desktop'")
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("KCMDLINE_TEST_VAR", "value")

	tests := []struct {
		input    string
		expected string
	}{
		{"${KCMDLINE_TEST_VAR}", "value"},
		{"$KCMDLINE_TEST_VAR", "value"},
		{"prefix-${KCMDLINE_TEST_VAR}-suffix", "prefix-value-suffix"},
		{"no variables", "no variables"},
		{"${KCMDLINE_TEST_UNSET}", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}
