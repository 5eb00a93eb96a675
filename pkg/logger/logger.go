// Package logger builds the structured logger shared by every recordstore
// subsystem. It wraps zap so that internal/logstore and internal/engine can
// both log through the same *zap.SugaredLogger contract their Config
// structs already expect.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a development-flavored, human-readable logger named after the
// calling service. Stacktraces and caller info are disabled for the same
// reason the teacher repo's server binaries disable them: this store logs
// at a rate where every entry is already actionable on its own.
func New(service string) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true

	log := zap.Must(cfg.Build())
	return log.Named(service).Sugar()
}

// Noop returns a logger that discards everything. Useful for tests that
// don't want engine/log-store chatter in their output.
func Noop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
