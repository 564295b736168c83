package logger

import (
	"os"
	"path/filepath"

	"github.com/joeydtaylor/authdelegate/pkg/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	SystemLog = "system.log"
	AccessLog = "http-access.log"
)

// NewLog writes JSON lines to a rotating file under cfg.Dir and, unless
// cfg.Quiet is set, to stdout as well.
func NewLog(cfg config.Log, name string) *zap.Logger {
	dir := cfg.Dir
	if dir == "" {
		dir = "log"
	}
	_ = os.MkdirAll(dir, 0o755)

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	level := ParseLevel(cfg.Level)

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(dir, name),
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}), level),
	}
	if !cfg.Quiet {
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(os.Stdout), level))
	}
	return zap.New(zapcore.NewTee(cores...))
}

// ParseLevel falls back to info for anything zap does not recognise.
func ParseLevel(s string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
