// Package common provides shared utilities for the YouTube138 MCP server.
package common

import (
	"io"
	"os"

	"github.com/phuslu/log"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
	"github.com/ternarybob/arbor/writers"

	"github.com/bobmcallan/youtube138-mcp/internal/config"
)

const (
	timeFormat      = "2006-01-02T15:04:05Z07:00"
	defaultLogFile  = "logs/youtube138-mcp.log"
	defaultMaxBytes = 100 * 1024 * 1024
	defaultBackups  = 3
)

// Logger wraps arbor.ILogger so packages depend on one logging type.
type Logger struct {
	arbor.ILogger
}

// discardWriter satisfies writers.IWriter and drops everything.
type discardWriter struct{}

func (w *discardWriter) Write(p []byte) (int, error)           { return len(p), nil }
func (w *discardWriter) WithLevel(_ log.Level) writers.IWriter { return w }
func (w *discardWriter) GetFilePath() string                   { return "" }
func (w *discardWriter) Close() error                          { return nil }

// NewLoggerFromConfig builds a logger from the logging section.
//
// Console lines go to console, or os.Stderr when nil. Never pass os.Stdout
// while serving stdio: stdout carries the MCP stream.
func NewLoggerFromConfig(cfg config.LoggingConfig, console io.Writer) *Logger {
	if console == nil {
		console = os.Stderr
	}
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	outputs := cfg.Outputs
	if len(outputs) == 0 {
		outputs = []string{"console"}
	}

	l := arbor.NewLogger()
	for _, out := range outputs {
		switch out {
		case "console":
			l = l.WithConsoleWriter(models.WriterConfiguration{
				Type:       models.LogWriterTypeConsole,
				Writer:     console,
				TimeFormat: timeFormat,
			})
		case "file":
			l = l.WithFileWriter(fileWriterConfig(cfg))
		}
	}

	return &Logger{ILogger: l.WithLevelFromString(level)}
}

// fileWriterConfig fills in rotation defaults for unset file settings.
func fileWriterConfig(cfg config.LoggingConfig) models.WriterConfiguration {
	wc := models.WriterConfiguration{
		Type:       models.LogWriterTypeFile,
		FileName:   cfg.FilePath,
		MaxSize:    int64(cfg.MaxSizeMB) * 1024 * 1024,
		MaxBackups: cfg.MaxBackups,
		TimeFormat: timeFormat,
	}
	if wc.FileName == "" {
		wc.FileName = defaultLogFile
	}
	if wc.MaxSize <= 0 {
		wc.MaxSize = defaultMaxBytes
	}
	if wc.MaxBackups <= 0 {
		wc.MaxBackups = defaultBackups
	}
	return wc
}

// NewSilentLogger creates a logger that discards all output.
func NewSilentLogger() *Logger {
	return &Logger{ILogger: arbor.NewLogger().WithWriters([]writers.IWriter{&discardWriter{}})}
}

// WithCorrelationId returns a child logger tagged with id.
func (l *Logger) WithCorrelationId(id string) *Logger {
	return &Logger{ILogger: l.ILogger.WithCorrelationId(id)}
}
