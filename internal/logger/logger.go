// Package logger builds the process logger and carries per-request loggers
// through context.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName is attached to every log line.
const ServiceName = "folio"

// NewLogger creates a zap logger for env. prod writes JSON with ISO-8601
// timestamps; local, dev and test write colored console output.
// A non-empty level (debug, info, warn, error) overrides the env default.
func NewLogger(env string, level ...string) (*zap.Logger, error) {
	cfg, err := configFor(env)
	if err != nil {
		return nil, err
	}

	if len(level) > 0 && level[0] != "" {
		lvl, err := zapcore.ParseLevel(level[0])
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level[0], err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build(
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("service", ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}

func configFor(env string) (zap.Config, error) {
	switch env {
	case "prod":
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg, nil
	case "local", "dev", "test":
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg, nil
	default:
		return zap.Config{}, fmt.Errorf("unknown environment %q for logger", env)
	}
}
