// Package logx builds the process logger: human-readable lines on a console
// writer plus an optional JSON log file, exposed as a logr.Logger.
package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLevel sets the console level when --verbosity is not given.
const EnvLevel = "GDSCRIPT_FORMATTER_MCP_LOG_LEVEL"

// Logger couples a logr.Logger with the zap level it is filtered by.
type Logger struct {
	logr.Logger
	atomicLevel   zap.AtomicLevel
	encoderConfig zapcore.EncoderConfig
	console       zapcore.Core
	zap           *zap.Logger
	file          *os.File
}

// New creates a logger writing console-formatted entries to w at info level.
// The console must not be the protocol channel, so callers pass stderr.
func New(w io.Writer) *Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	atomicLevel := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	console := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(zapcore.AddSync(w)), atomicLevel)

	l := &Logger{
		atomicLevel:   atomicLevel,
		encoderConfig: encoderConfig,
		console:       console,
	}
	l.build(console)
	return l
}

func (l *Logger) build(core zapcore.Core) {
	l.zap = zap.New(core)
	l.Logger = zapr.NewLogger(l.zap)
}

func (l *Logger) SetLevel(level zapcore.Level) {
	l.atomicLevel.SetLevel(level)
}

func (l *Logger) Level() zapcore.Level {
	return l.atomicLevel.Level()
}

// EnableFileOutput tees every entry, regardless of the console level, into a
// timestamped JSON file inside dir. It returns the file path.
func (l *Logger) EnableFileOutput(dir string) (string, error) {
	if l.file != nil {
		return l.file.Name(), nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure logs directory: %w", err)
	}

	filename := time.Now().Format("20060102-150405") + ".log"
	filePath := filepath.Join(dir, filename)
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("open log file: %w", err)
	}

	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(l.encoderConfig), zapcore.AddSync(file), zap.NewAtomicLevelAt(zapcore.Level(-127)))
	l.file = file
	l.build(zapcore.NewTee(l.console, fileCore))
	return filePath, nil
}

// Close flushes buffered entries and closes the log file, if any.
func (l *Logger) Close() error {
	_ = l.zap.Sync()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.build(l.console)
	return err
}
