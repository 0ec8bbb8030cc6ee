package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger printf-совместимый логгер поверх zap
type Logger struct {
	base      *zap.Logger
	sugar     *zap.SugaredLogger
	closeFile func()
}

// New создает логгер.
// file - путь к файлу логов (пустая строка = только stdout),
// level - debug/info/warn/error, development - человекочитаемый консольный формат.
// Цветные уровни пишутся только в stdout, в файл всегда без ANSI-последовательностей.
func New(file, level string, development bool) (*Logger, error) {
	atomicLevel := zap.NewAtomicLevelAt(parseLevel(level))

	cores := []zapcore.Core{
		zapcore.NewCore(newEncoder(development, true), zapcore.Lock(os.Stdout), atomicLevel),
	}

	closeFile := func() {}
	if file != "" {
		sink, closeSink, err := zap.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", file, err)
		}
		cores = append(cores, zapcore.NewCore(newEncoder(development, false), sink, atomicLevel))
		closeFile = closeSink
	}

	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
	}
	if development {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}

	base := zap.New(zapcore.NewTee(cores...), opts...)

	return &Logger{base: base, sugar: base.Sugar(), closeFile: closeFile}, nil
}

// NewNop логгер, который ничего не пишет (для тестов)
func NewNop() *Logger {
	base := zap.NewNop()
	return &Logger{base: base, sugar: base.Sugar(), closeFile: func() {}}
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

// Fatal пишет сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
	l.Close()
	os.Exit(1)
}

// Close сбрасывает буферы и закрывает файл логов
func (l *Logger) Close() {
	// Sync на stdout возвращает EINVAL на некоторых платформах - игнорируем
	_ = l.base.Sync()
	l.closeFile()
}

func newEncoder(development, color bool) zapcore.Encoder {
	if !development {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(cfg)
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	if color {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(cfg)
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zap.DebugLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
