package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger builds a JSON logger writing to stderr, tagged with the service name.
func NewZapLogger(service string, level zapcore.Level) *zap.SugaredLogger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		zap.NewAtomicLevelAt(level),
	)

	return zap.New(core, zap.AddCaller()).
		Named(service).
		Sugar()
}

// ParseLevel maps a textual level to a zap level. Unknown or empty values fall back to def.
func ParseLevel(text string, def zapcore.Level) zapcore.Level {
	if text == "" {
		return def
	}
	lvl, err := zapcore.ParseLevel(text)
	if err != nil {
		return def
	}
	return lvl
}
