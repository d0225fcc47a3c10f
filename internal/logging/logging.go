package logging

import (
	"io"
	"os"

	"github.com/snnyvrz/book-catalog/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger. Release mode writes JSON, debug mode
// writes console lines. Every entry carries the build version.
func New(cfg *config.Config, version string) *zap.Logger {
	return NewWithWriter(cfg, version, os.Stdout)
}

func NewWithWriter(cfg *config.Config, version string, w io.Writer) *zap.Logger {
	var encCfg zapcore.EncoderConfig
	if cfg.IsRelease() {
		encCfg = zap.NewProductionEncoderConfig()
	} else {
		encCfg = zap.NewDevelopmentEncoderConfig()
	}
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.LevelKey = "level"
	encCfg.NameKey = "name"
	encCfg.MessageKey = "msg"
	encCfg.CallerKey = "caller"
	encCfg.StacktraceKey = "stacktrace"

	var enc zapcore.Encoder
	if cfg.IsRelease() {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), cfg.LogLevel)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return logger.With(zap.String("version", version))
}
