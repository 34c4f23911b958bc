package config

import "github.com/rshade/ghgcalc/internal/logging"

// ToLoggingConfig bridges the configuration tree to the logging package,
// applying the environment-variable overrides for level and format.
func (c *Config) ToLoggingConfig() logging.Config {
	return logging.Config{
		Level:  c.LogLevel(),
		Format: c.LogFormat(),
		File:   c.Logging.File,
	}
}
