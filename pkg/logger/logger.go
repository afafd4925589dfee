// pkg/logger/logger.go
package logger

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joeydtaylor/steeze-dispatch/pkg/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLog builds a JSON logger writing to a rotated file under cfg.Dir and,
// when cfg.Console is set, to stdout.
func NewLog(cfg config.Log) *zap.Logger {
	dir := cfg.Dir
	if dir == "" {
		dir = "log"
	}
	_ = os.MkdirAll(dir, 0o755)

	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder

	lvl := ParseLevel(cfg.Level)

	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(dir, cfg.File),
		MaxSize:    cfg.MaxSizeMB, // MB
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays, // days
	})

	cores := []zapcore.Core{zapcore.NewCore(zapcore.NewJSONEncoder(enc), w, lvl)}
	if cfg.Console {
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(os.Stdout), lvl))
	}
	return zap.New(zapcore.NewTee(cores...))
}

// ParseLevel maps a config level name to a zap level, defaulting to info.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// ProvideLogger is the Fx provider; the service name is attached to every entry.
func ProvideLogger(cfg config.Config) *zap.Logger {
	return NewLog(cfg.Log).With(zap.String("service", cfg.Service))
}

var Module = fx.Options(
	fx.Provide(ProvideLogger),
)
