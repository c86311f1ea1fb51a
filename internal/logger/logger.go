package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a structured logger tagged with the service name.
type Logger struct {
	*zap.SugaredLogger
	serviceName string
}

// New builds a logger for env ("production" gets JSON at info level,
// anything else console output at debug level).
func New(serviceName, env string) *Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	level := zap.DebugLevel
	if env == "production" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
		level = zap.InfoLevel
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zap.NewAtomicLevelAt(level))
	return wrap(zap.New(core, zap.AddCaller()), serviceName)
}

// Nop discards everything. For tests.
func Nop() *Logger { return wrap(zap.NewNop(), "nop") }

// fromZap wraps an existing core; tests use it to observe output.
func fromZap(z *zap.Logger, serviceName string) *Logger { return wrap(z, serviceName) }

func wrap(z *zap.Logger, serviceName string) *Logger {
	return &Logger{SugaredLogger: z.Sugar().With("service", serviceName), serviceName: serviceName}
}

// WithActor returns a logger carrying the acting user.
func (l *Logger) WithActor(actorID, role string) *Logger {
	return &Logger{SugaredLogger: l.With("actor_id", actorID, "role", role), serviceName: l.serviceName}
}

// WithFields returns a logger with additional fields
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Logger{SugaredLogger: l.With(args...), serviceName: l.serviceName}
}

// Audit logs a state-changing event at info level with audit=true.
func (l *Logger) Audit(msg string, keysAndValues ...interface{}) {
	l.With("audit", true).Infow(msg, keysAndValues...)
}
