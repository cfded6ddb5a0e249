package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the JSON production logger. Unknown levels fall back to info.
// A non-empty service name is attached to every entry.
func New(level, service string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"
	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if service = strings.TrimSpace(service); service != "" {
		log = log.With(zap.String("service", service))
	}
	return log, nil
}

func ParseLevel(level string) zapcore.Level {
	lvl := zapcore.InfoLevel
	if err := lvl.Set(strings.ToLower(strings.TrimSpace(level))); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Nop is for tests and for components constructed without a logger.
func Nop() *zap.Logger { return zap.NewNop() }
