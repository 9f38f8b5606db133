package telemetry

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the process logger.
type Options struct {
	// Level is a logrus level name; empty means info.
	Level string
	// File enables rotating file output when non-empty.
	File string
}

var (
	mu        sync.Mutex
	logger    = newLogger()
	logWriter *lumberjack.Logger
)

func newLogger() *log.Logger {
	l := log.New()
	l.SetOutput(stdout{})
	l.SetLevel(log.InfoLevel)
	l.SetFormatter(&log.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: log.FieldMap{
			log.FieldKeyTime:  "ts",
			log.FieldKeyLevel: "level",
			log.FieldKeyMsg:   "msg",
		},
	})
	return l
}

// Configure applies level and output settings. It is safe to call more than once.
func Configure(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	level := log.InfoLevel
	if raw := strings.TrimSpace(opts.Level); raw != "" {
		parsed, err := log.ParseLevel(raw)
		if err != nil {
			return err
		}
		level = parsed
	}
	logger.SetLevel(level)

	if logWriter != nil {
		_ = logWriter.Close()
		logWriter = nil
	}
	if path := strings.TrimSpace(opts.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		logWriter = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     14,
		}
		logger.SetOutput(io.MultiWriter(stdout{}, logWriter))
		return nil
	}
	logger.SetOutput(stdout{})
	return nil
}

// Close flushes and closes the rotating file, if any.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logWriter != nil {
		_ = logWriter.Close()
		logWriter = nil
		logger.SetOutput(stdout{})
	}
}

// Logger exposes the underlying logrus logger for libraries that need an io.Writer.
func Logger() *log.Logger {
	return logger
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	logger.WithFields(log.Fields(fields)).Info(msg)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	logger.WithFields(log.Fields(fields)).Warn(msg)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	logger.WithFields(log.Fields(fields)).Error(msg)
}

// stdout resolves os.Stdout on every write so redirection after init is honoured.
type stdout struct{}

func (stdout) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}
