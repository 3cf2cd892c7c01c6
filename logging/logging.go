package logging

import (
	"context"
	"fmt"
	"io"
	"os"

	"bitbucket.org/kleinnic74/lsgmap/consts"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerKeyType string

const (
	loggerKey = loggerKeyType("logger")

	memoryLogSize = 1000
	logFileEnv    = "LSGMAP_LOG_FILE"
)

var (
	rootLogger *zap.Logger
	level      zap.AtomicLevel
	memory     *ringSink
)

func init() {
	devmode := consts.IsDevMode()
	if devmode {
		level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	var jsonEncoder zapcore.Encoder
	if devmode {
		jsonEncoder = zapcore.NewJSONEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		jsonEncoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	var cores []zapcore.Core
	if devmode {
		consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), level))
	} else {
		cores = append(cores, zapcore.NewCore(jsonEncoder, zapcore.Lock(os.Stderr), level))
	}

	if path := os.Getenv(logFileEnv); path != "" {
		logfile, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
		if err != nil {
			panic(fmt.Sprintf("Failed to open log file: %s", err))
		}
		cores = append(cores, zapcore.NewCore(jsonEncoder, zapcore.Lock(logfile), level))
	}

	memory = newRingSink(memoryLogSize)
	cores = append(cores, zapcore.NewCore(jsonEncoder, memory, level))

	rootLogger = zap.New(zapcore.NewTee(cores...))
	rootLogger.With(zap.Bool("devmode", devmode)).Debug("Logging initialized")
}

// SetLevel changes the minimum level of all loggers derived from the root logger.
func SetLevel(l zapcore.Level) {
	level.SetLevel(l)
}

// Dump writes the most recent log lines kept in memory to w, newest first when reverse is set.
func Dump(w io.Writer, reverse bool) error {
	return memory.WriteTo(w, reverse)
}

// From returns the logger of the current context, if no logger is available, returns the root logger
func From(ctx context.Context) *zap.Logger {
	l := ctx.Value(loggerKey)
	if l == nil {
		return rootLogger
	}
	return l.(*zap.Logger)
}

func SubFrom(ctx context.Context, name string) (*zap.Logger, context.Context) {
	logger := From(ctx).Named(name)
	return logger, Context(ctx, logger)
}

func Context(ctx context.Context, logger *zap.Logger) context.Context {
	if logger == nil {
		logger = rootLogger
	}
	return context.WithValue(ctx, loggerKey, logger)
}

func FromWithNameAndFields(ctx context.Context, name string, fields ...zapcore.Field) (*zap.Logger, context.Context) {
	logger := From(ctx).With(fields...).Named(name)
	ctx = Context(ctx, logger)
	return logger, ctx
}

func FromWithFields(ctx context.Context, fields ...zapcore.Field) (*zap.Logger, context.Context) {
	logger := From(ctx).With(fields...)
	ctx = Context(ctx, logger)
	return logger, ctx
}
