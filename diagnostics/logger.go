// Package diagnostics centralizes structured logging for the rest of the
// module. Every other package logs through a *zap.Logger obtained here
// rather than the standard library's log package.
package diagnostics

import "go.uber.org/zap"

// New builds a production-profile zap.Logger (JSON encoding, info level
// and above) tagged with component=name.
func New(name string) *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger.With(zap.String("component", name))
}

// NewDevelopment builds a development-profile zap.Logger (human-readable
// console encoding, debug level and above), intended for local CLI runs.
func NewDevelopment(name string) *zap.Logger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger.With(zap.String("component", name))
}

// Nop returns a logger that discards everything, used in tests.
func Nop() *zap.Logger { return zap.NewNop() }
