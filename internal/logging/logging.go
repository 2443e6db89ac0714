// Package logging builds the zap logger used for diagnostics. Diagnostics go
// to stderr so rendered output on stdout stays machine readable.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a sugared logger at the given level ("debug", "info", ...)
// using either the "console" or "json" encoding.
func New(level, format string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var logCfg zap.Config
	switch format {
	case "", "console":
		logCfg = zap.NewDevelopmentConfig()
		logCfg.Development = false
		logCfg.DisableStacktrace = true
	case "json":
		logCfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("log format %q: want console or json", format)
	}
	logCfg.Level = zap.NewAtomicLevelAt(lvl)
	logCfg.OutputPaths = []string{"stderr"}
	logCfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := logCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Sugar(), nil
}
