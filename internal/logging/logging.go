// Package logging builds the process logger: the log/slog API on top of a zap core.
package logging

import (
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON logger in production and a colored console logger
// otherwise. sync flushes buffered entries and should run before exit.
func New(env, level string) (logger *slog.Logger, sync func() error, err error) {
	const op = "logging.New"

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: invalid LOG_LEVEL %q: %w", op, level, err)
	}

	core := newCore(zapcore.Lock(os.Stdout), env == "production", lvl)
	return fromCore(core), core.Sync, nil
}

func newCore(ws zapcore.WriteSyncer, production bool, lvl zapcore.Level) zapcore.Core {
	var enc zapcore.Encoder
	if production {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	}
	return zapcore.NewCore(enc, ws, zap.NewAtomicLevelAt(lvl))
}

func fromCore(core zapcore.Core) *slog.Logger {
	return slog.New(zapslog.NewHandler(core, zapslog.WithCaller(true)))
}

// Discard drops everything; used by tests and the CLI.
func Discard() *slog.Logger {
	return fromCore(zapcore.NewNopCore())
}
