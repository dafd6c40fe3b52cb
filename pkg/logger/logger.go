package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level уровень логирования
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel парсит уровень логирования из строки конфигурации
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level: %q", s)
	}
}

// Logger простой уровневый логгер поверх стандартного log.
// Пишет одновременно в stdout и в файл (если файл указан).
type Logger struct {
	level Level
	out   *log.Logger
	file  *os.File
}

// New создает логгер. Если path пустой, пишет только в stdout.
func New(path string, levelStr string) (*Logger, error) {
	level, err := ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}

	var writer io.Writer = os.Stdout
	var file *os.File

	if path != "" {
		file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		writer = io.MultiWriter(os.Stdout, file)
	}

	return &Logger{
		level: level,
		out:   log.New(writer, "", log.LstdFlags),
		file:  file,
	}, nil
}

// Close закрывает файл логов, если он был открыт
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Debug логирует сообщение уровня DEBUG
func (l *Logger) Debug(format string, v ...interface{}) {
	l.logf(LevelDebug, "DEBUG", format, v...)
}

// Info логирует сообщение уровня INFO
func (l *Logger) Info(format string, v ...interface{}) {
	l.logf(LevelInfo, "INFO", format, v...)
}

// Warn логирует сообщение уровня WARN
func (l *Logger) Warn(format string, v ...interface{}) {
	l.logf(LevelWarn, "WARN", format, v...)
}

// Error логирует сообщение уровня ERROR
func (l *Logger) Error(format string, v ...interface{}) {
	l.logf(LevelError, "ERROR", format, v...)
}

// Fatal логирует сообщение уровня ERROR и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.logf(LevelError, "FATAL", format, v...)
	os.Exit(1)
}

func (l *Logger) logf(level Level, tag string, format string, v ...interface{}) {
	if level < l.level {
		return
	}
	l.out.Printf("[%s] %s", tag, fmt.Sprintf(format, v...))
}
