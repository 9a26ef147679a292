// Package journal sets up the two loggers the CLI uses: an internal,
// structured diagnostic log and a plain stdout log reserved for command
// results a user is meant to read. Callers depend on go-logr/logr's
// interface rather than zap directly; go.uber.org/zap and go-logr/zapr
// provide the concrete backend for both loggers.
package journal

import (
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level selects the verbosity of the internal logger. The stdout logger
// always runs at info level regardless of Level, since it only ever
// carries command results.
type Level int

const (
	LevelInfo Level = iota
	LevelDebug
)

// Loggers bundles the internal diagnostic logger and the user-facing
// stdout logger built for one process invocation.
type Loggers struct {
	Internal logr.Logger
	Stdout   logr.Logger
}

// New builds the two loggers at the given level and stamps the internal
// one with a fresh request ID, so every line from one invocation of the CLI
// can be correlated.
func New(level Level) Loggers {
	requestID := uuid.NewString()

	internalCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(internalEncoderConfig()),
		zapcore.AddSync(os.Stdout),
		zapLevel(level),
	)
	stdoutCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(stdoutEncoderConfig()),
		zapcore.AddSync(os.Stdout),
		zapcore.InfoLevel,
	)

	internalZap := zap.New(internalCore).Named("dashpatch")
	stdoutZap := zap.New(stdoutCore)

	internal := zapr.NewLogger(internalZap).WithValues("request_id", requestID)
	stdoutLog := zapr.NewLogger(stdoutZap)

	return Loggers{Internal: internal, Stdout: stdoutLog}
}

// internalEncoderConfig renders "<time> <level> <name> <message> <fields>".
func internalEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.LevelKey = "level"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.NameKey = "logger"
	cfg.CallerKey = ""
	cfg.StacktraceKey = ""
	return cfg
}

// stdoutEncoderConfig renders only the message: this is the channel
// command output (list/resolve results) goes to.
func stdoutEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = ""
	cfg.LevelKey = ""
	cfg.NameKey = ""
	cfg.CallerKey = ""
	cfg.StacktraceKey = ""
	return cfg
}

func zapLevel(l Level) zapcore.Level {
	if l == LevelDebug {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}
