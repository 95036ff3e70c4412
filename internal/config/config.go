// Package config holds the handful of environment-driven knobs engine
// construction cares about: log level and whether a stall should be
// treated as fatal by the caller. There is no file-based configuration or
// validation library here; two optional knobs don't warrant one.
package config

import "os"

// Config is populated from environment variables using the
// string-pointer-or-default convention: each field falls back to a
// sensible default when its environment variable is unset.
type Config struct {
	// LogLevel is passed straight through to logger.Init.
	LogLevel string

	// StallIsFatal tells a caller's supervisor loop whether to treat
	// TickResult Stalled as a fatal condition (true) or as a recoverable
	// "attach more observers" signal (false, the default).
	StallIsFatal bool
}

// Load reads ENGINE_LOG_LEVEL and ENGINE_STALL_IS_FATAL, falling back to
// "info" and false respectively.
func Load() Config {
	return Config{
		LogLevel:     stringOrDefault("ENGINE_LOG_LEVEL", "info"),
		StallIsFatal: os.Getenv("ENGINE_STALL_IS_FATAL") == "true",
	}
}

func stringOrDefault(env, fallback string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return fallback
}
