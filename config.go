// Package kcmdline holds the project configuration shared by the kcmdline
// command and its rule engine.
package kcmdline

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// DefaultConfigFile is the configuration file looked up when none is given
const DefaultConfigFile = "kcmdline.yaml"

// Config represents the kcmdline configuration
type Config struct {
	Source   string            `yaml:"source"`
	Format   string            `yaml:"format" validate:"oneof=text json yaml cmdline markdown"`
	LogLevel string            `yaml:"log_level" validate:"oneof=debug info warn error"`
	Profiles map[string]string `yaml:"profiles"`
	Rules    []Rule            `yaml:"rules" validate:"dive"`
}

// Rule is a named CEL expression that parsed options must satisfy
type Rule struct {
	Name     string   `yaml:"name" validate:"required"`
	Expr     string   `yaml:"expr" validate:"required"`
	Severity Severity `yaml:"severity" validate:"oneof=error warning"`
	Message  string   `yaml:"message,omitempty"`
}

// Severity decides whether a failing rule fails the check
type Severity string

const (
	// SeverityError fails the check
	SeverityError Severity = "error"

	// SeverityWarning is reported but does not fail the check
	SeverityWarning Severity = "warning"
)

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Check if config file exists
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML configuration content. Unknown keys are errors.
func ParseConfig(data []byte) (*Config, error) {
	var config Config

	err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	// Expand before validating so that rule expressions are checked as used
	expandConfigEnvVars(&config)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

var validate = newValidator()

// newValidator reports fields by their YAML names
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	if err := validate.Struct(config); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			return fmt.Errorf("%w: %s", ErrConfigValidation, describeFieldError(fieldErrors[0]))
		}

		return fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}

	for name := range config.Profiles {
		if name == "" {
			return fmt.Errorf("%w: profile name must not be empty", ErrConfigValidation)
		}
	}

	seen := make(map[string]bool, len(config.Rules))
	for _, rule := range config.Rules {
		if seen[rule.Name] {
			return fmt.Errorf("%w: rule '%s' is defined more than once", ErrConfigValidation, rule.Name)
		}
		seen[rule.Name] = true
	}

	return nil
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("invalid %s '%v': must be one of %s", field, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed '%s' validation", field, fe.Tag())
	}
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Source:   "proc",
		Format:   "text",
		LogLevel: "warn",
		Profiles: make(map[string]string),
		Rules:    []Rule{},
	}
}

// applyDefaults applies default values to missing configuration fields
func applyDefaults(config *Config) {
	defaults := getDefaultConfig()

	if config.Source == "" {
		config.Source = defaults.Source
	}

	if config.Format == "" {
		config.Format = defaults.Format
	}

	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}

	if config.Profiles == nil {
		config.Profiles = defaults.Profiles
	}

	if config.Rules == nil {
		config.Rules = defaults.Rules
	}

	for i := range config.Rules {
		if config.Rules[i].Severity == "" {
			config.Rules[i].Severity = SeverityError
		}
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1] // Remove ${ and }
		return os.Getenv(varName)
	})

	s = plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:] // Remove $
		return os.Getenv(varName)
	})

	return s
}

// expandConfigEnvVars expands environment variables in config
func expandConfigEnvVars(config *Config) {
	config.Source = expandEnvVars(config.Source)

	for name, line := range config.Profiles {
		config.Profiles[name] = expandEnvVars(line)
	}

	for i := range config.Rules {
		config.Rules[i].Expr = expandEnvVars(config.Rules[i].Expr)
	}
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// Profile returns the command line stored under name
func (c *Config) Profile(name string) (string, error) {
	line, ok := c.Profiles[name]
	if !ok {
		return "", fmt.Errorf("%w: '%s'", ErrProfileNotFound, name)
	}

	return line, nil
}

// ProfileNames returns the configured profile names in sorted order
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}
