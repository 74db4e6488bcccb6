// Package mbellog configures the zap logger shared by the CLI and server
// entry points.
package mbellog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-configured logger, switched to debug level when
// verbose is set.
func New(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.EncoderConfig.TimeKey = "ts"
	return config.Build()
}

// Nop returns a logger that discards everything, for tests and library
// callers that never configured one.
func Nop() *zap.Logger {
	return zap.NewNop()
}
