package log

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// SlogProvider is the default LoggerProvider backed by log/slog.
// Loggers it creates share a single leveled JSON handler wrapped by
// ErrFmtHandler so that cockroachdb error stacktraces are emitted.
type SlogProvider struct {
	mu     sync.RWMutex
	level  *slog.LevelVar
	logger *slog.Logger
}

// NewSlogProvider creates a SlogProvider emitting JSON records to stderr.
func NewSlogProvider(level Level) *SlogProvider {
	levelVar := &slog.LevelVar{}
	levelVar.Set(slog.Level(level))

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar})
	return &SlogProvider{
		level:  levelVar,
		logger: slog.New(WrapByErrFmtHandler(handler)),
	}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *SlogProvider) GetLogger() Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &slogLogger{logger: p.logger}
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *SlogProvider) GetLoggerWithName(name string) Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &slogLogger{logger: p.logger.With(ComponentKey, name)}
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *SlogProvider) SetLevel(level Level) {
	p.level.Set(slog.Level(level))
}

// slogLogger adapts *slog.Logger to the Logger interface.
type slogLogger struct {
	logger *slog.Logger
}

func (l *slogLogger) Debug(msg string, fields ...any) { l.logger.Debug(msg, fields...) }
func (l *slogLogger) Info(msg string, fields ...any)  { l.logger.Info(msg, fields...) }
func (l *slogLogger) Warn(msg string, fields ...any)  { l.logger.Warn(msg, fields...) }
func (l *slogLogger) Error(msg string, fields ...any) { l.logger.Error(msg, fields...) }

func (l *slogLogger) With(fields ...any) Logger {
	return &slogLogger{logger: l.logger.With(fields...)}
}

func (l *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return l.logger.Enabled(ctx, slog.Level(level))
}

var (
	providerMu      sync.RWMutex
	defaultProvider LoggerProvider = NewSlogProvider(LevelWarn)
)

// SetProvider replaces the package-level LoggerProvider.
// Passing a TestLoggerProvider makes library log output observable in tests.
func SetProvider(provider LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	defaultProvider = provider
}

// GetLogger returns the default logger from the current provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return defaultProvider.GetLogger()
}

// GetLoggerWithName returns a named component logger from the current provider.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return defaultProvider.GetLoggerWithName(name)
}
