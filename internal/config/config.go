// Package config loads and serves the ghgcalc configuration: a YAML file
// under the user's config directory, shallow-merged over built-in defaults,
// with environment variables taking precedence over the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Default configuration values.
const (
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "auto"
	DefaultOutputFormat = "table"
	DefaultPrecision    = 2
	DefaultAssessment   = "ar5"
	DefaultReportFormat = "ghg_protocol"
)

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	// DefaultFormat is "table" or "json".
	DefaultFormat string `yaml:"default_format"`
	// Precision is the number of decimal places for tonne values.
	Precision int `yaml:"precision"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// CalculationConfig carries engine defaults.
type CalculationConfig struct {
	// Assessment is the default GWP assessment report, "ar5" or "ar6".
	Assessment string `yaml:"assessment"`
}

// ReportConfig carries report generation defaults.
type ReportConfig struct {
	Title              string `yaml:"title"`
	Format             string `yaml:"format"`
	IncludeMethodology *bool  `yaml:"include_methodology"`
}

// Config is the full ghgcalc configuration tree.
type Config struct {
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
	Calculation CalculationConfig `yaml:"calculation"`
	Report      ReportConfig      `yaml:"report"`
}

// New returns a Config populated with defaults and, when present,
// shallow-merged with the user's config file. A missing or unreadable file
// silently yields defaults; a present but malformed file does too, since
// startup must not fail on a bad config.
func New() *Config {
	cfg := &Config{
		Output: OutputConfig{
			DefaultFormat: DefaultOutputFormat,
			Precision:     DefaultPrecision,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Calculation: CalculationConfig{
			Assessment: DefaultAssessment,
		},
		Report: ReportConfig{
			Format: DefaultReportFormat,
		},
	}

	path, err := GetConfigFile()
	if err != nil {
		return cfg
	}
	if _, statErr := os.Stat(path); statErr != nil {
		return cfg
	}
	_ = ShallowMergeYAML(cfg, path)
	return cfg
}

// GetConfigDir returns the ghgcalc configuration directory. GHGCALC_HOME
// overrides the default ~/.ghgcalc.
func GetConfigDir() (string, error) {
	if home := os.Getenv("GHGCALC_HOME"); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".ghgcalc"), nil
}

// GetConfigFile returns the path of the user's config file.
func GetConfigFile() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// EnsureConfigDir creates the configuration directory if needed.
func EnsureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// EnsureLogDir creates the parent directory of the configured log file.
// A config without a log file is a no-op.
func (c *Config) EnsureLogDir() error {
	if c.Logging.File == "" {
		return nil
	}
	logDir := filepath.Dir(c.Logging.File)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}
	return nil
}

// LogLevel returns the effective log level: GHGCALC_LOG_LEVEL wins over the
// config file.
func (c *Config) LogLevel() string {
	if env := os.Getenv("GHGCALC_LOG_LEVEL"); env != "" {
		return env
	}
	return c.Logging.Level
}

// LogFormat returns the effective log format ("auto", "json", "console"):
// GHGCALC_LOG_FORMAT wins over the config file.
func (c *Config) LogFormat() string {
	if env := os.Getenv("GHGCALC_LOG_FORMAT"); env != "" {
		return env
	}
	return c.Logging.Format
}
