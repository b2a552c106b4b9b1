// Package logger provides the process-wide zap logger.
package logger

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger so call sites depend on this package only
type Logger struct {
	*zap.Logger
}

// Config holds logger settings
type Config struct {
	Level       string
	ServiceName string
	Development bool
}

var (
	global = &Logger{Logger: zap.NewNop()}
	mu     sync.RWMutex
)

// Init builds the global logger. Development mode writes colored console
// output, otherwise JSON.
func Init(cfg *Config) error {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return err
		}
	}

	var zcfg zap.Config
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.TimeKey = "timestamp"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	zl, err := zcfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	if cfg.ServiceName != "" {
		zl = zl.With(zap.String("service", cfg.ServiceName))
	}

	mu.Lock()
	global = &Logger{Logger: zl}
	mu.Unlock()
	return nil
}

// Get returns the global logger
func Get() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Sync flushes buffered entries
func Sync() error {
	return Get().Sync()
}

// With returns a child logger carrying fields
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}

// WithContext attaches the trace and span ids found in ctx, if any
func (l *Logger) WithContext(ctx context.Context) *Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return l
	}
	return l.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}

func Debug(msg string, fields ...zap.Field) { Get().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { Get().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { Get().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { Get().Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { Get().Fatal(msg, fields...) }

// ErrorContext logs at error level with the trace id from ctx
func ErrorContext(ctx context.Context, msg string, fields ...zap.Field) {
	Get().WithContext(ctx).Error(msg, fields...)
}

// WarnContext logs at warn level with the trace id from ctx
func WarnContext(ctx context.Context, msg string, fields ...zap.Field) {
	Get().WithContext(ctx).Warn(msg, fields...)
}
