// Package logging provides config-driven categorized file logging for the
// accountability client. Logs are JSON lines under <state dir>/logs/, one file
// per category. When logging.debug_mode is false nothing is written: the TUI
// owns the terminal and there is nowhere else to print.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"accountability/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, config resolution
	CategoryAPI    Category = "api"    // Requests to the analysis service
	CategoryTUI    Category = "tui"    // View state transitions, key handling
	CategoryReport Category = "report" // Markdown/JSON report generation
)

var (
	loggers  = make(map[Category]*zap.Logger)
	files    []*os.File
	mu       sync.RWMutex
	logsDir  string
	settings config.LoggingConfig
	level    = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Initialize records the logging config and, in debug mode, creates dir.
// Calling it again replaces the previous configuration and closes open files.
func Initialize(lc config.LoggingConfig, dir string) error {
	CloseAll()

	mu.Lock()
	settings = lc
	logsDir = dir
	if lc.Level != "" {
		lvl, err := zapcore.ParseLevel(lc.Level)
		if err != nil {
			mu.Unlock()
			return fmt.Errorf("invalid log level %q: %w", lc.Level, err)
		}
		level.SetLevel(lvl)
	}
	mu.Unlock()

	if !lc.DebugMode {
		return nil
	}
	if dir == "" {
		return fmt.Errorf("logs directory required in debug mode")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	boot := Get(CategoryBoot)
	boot.Info("logging initialized",
		zap.String("dir", dir),
		zap.String("level", level.Level().String()),
		zap.Int("category_filters", len(lc.Categories)),
	)
	return nil
}

// IsDebugMode returns whether debug logging is enabled
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return settings.DebugMode
}

// Get returns (or creates) the logger for a category. It returns a no-op
// logger if debug mode or the category is disabled, or the file cannot be
// opened.
func Get(category Category) *zap.Logger {
	mu.RLock()
	enabled := settings.IsCategoryEnabled(string(category)) && logsDir != ""
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	if !enabled {
		return zap.NewNop()
	}

	mu.Lock()
	defer mu.Unlock()

	// Double-check after acquiring write lock
	if l, ok := loggers[category]; ok {
		return l
	}

	logPath := filepath.Join(logsDir, string(category)+".log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", logPath, err)
		return zap.NewNop()
	}
	files = append(files, file)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(file), level)

	l := zap.New(core).With(zap.String("category", string(category)))
	loggers[category] = l
	return l
}

// CloseAll flushes and closes every category file.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()

	for _, l := range loggers {
		_ = l.Sync()
	}
	for _, f := range files {
		_ = f.Close()
	}
	loggers = make(map[Category]*zap.Logger)
	files = nil
}

// WithRequestID returns the category logger annotated with a correlation ID.
func WithRequestID(category Category, requestID string) *zap.Logger {
	return Get(category).With(zap.String("request_id", requestID))
}

// Timer helps measure operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{
		category: category,
		op:       operation,
		start:    time.Now(),
	}
}

// Stop ends the timer and logs the duration at debug level.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("operation completed", zap.String("op", t.op), zap.Duration("elapsed", elapsed))
	return elapsed
}

// StopWithThreshold logs a warning if the duration exceeds threshold.
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn("operation slow",
			zap.String("op", t.op),
			zap.Duration("elapsed", elapsed),
			zap.Duration("threshold", threshold),
		)
	} else {
		Get(t.category).Debug("operation completed", zap.String("op", t.op), zap.Duration("elapsed", elapsed))
	}
	return elapsed
}
