package config

import (
	"log/slog"
	"os"

	"github.com/microsoft/teams-sdk/internal/foundation/normalization"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer("log level", map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

// NormalizeLogLevel maps raw to a LogLevel, defaulting to info.
func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}

// SlogLevel converts l to a slog level.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer("log format", map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

// NormalizeLogFormat maps raw to a LogFormat, defaulting to text.
func NormalizeLogFormat(raw string) LogFormat {
	return logFormatNormalizer.Normalize(raw)
}

// Environment variables overriding LoggingConfig.
const (
	LogLevelEnv  = "DOCSGEN_LOG_LEVEL"
	LogFormatEnv = "DOCSGEN_LOG_FORMAT"
)

// WithEnv returns l with DOCSGEN_LOG_LEVEL and DOCSGEN_LOG_FORMAT applied.
func (l LoggingConfig) WithEnv() LoggingConfig {
	if v := os.Getenv(LogLevelEnv); v != "" {
		l.Level = NormalizeLogLevel(v)
	}
	if v := os.Getenv(LogFormatEnv); v != "" {
		l.Format = NormalizeLogFormat(v)
	}
	return l
}
