package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the logger's encoding and level.
type Config struct {
	// Env is prod (JSON, info) or local, dev, test (console, debug).
	Env string
	// Level overrides the environment's level when set.
	Level string
	// Version is attached to every entry.
	Version string
}

// New builds the process logger. Entries go to stderr; stdout carries the
// MCP stdio transport.
func New(cfg Config) (*zap.Logger, error) {
	var zc zap.Config
	switch cfg.Env {
	case "prod":
		zc = zap.NewProductionConfig()
		// Native failures are rare and each one matters.
		zc.Sampling = nil
	case "local", "dev", "test":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown environment %q for logger", cfg.Env)
	}
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}

	zc.InitialFields = map[string]any{"service": "luacene"}
	if cfg.Version != "" {
		zc.InitialFields["version"] = cfg.Version
	}

	l, err := zc.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}
