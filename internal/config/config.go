package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	LogLevel        string        `mapstructure:"log_level" yaml:"log_level"`
	MaxConns        int           `mapstructure:"max_conns" yaml:"max_conns"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Default returns configuration with reasonable starter defaults.
// MaxConns of zero means the accept loop does not cap concurrent connections.
func Default() Config {
	return Config{
		Addr:            ":5005",
		LogLevel:        "info",
		MaxConns:        0,
		ShutdownTimeout: 5 * time.Second,
	}
}
