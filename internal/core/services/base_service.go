package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/backoffice/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// now is the service clock; tests replace it to pin dates.
	now func() time.Time
}

func newBaseService() BaseService {
	return BaseService{now: func() time.Time { return time.Now().UTC() }}
}

// Now returns the current instant in UTC.
func (s *BaseService) Now() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now()
}

// SetClock replaces the service clock.
func (s *BaseService) SetClock(now func() time.Time) {
	s.now = now
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// today is the current date at midnight UTC.
func (s *BaseService) today() time.Time {
	n := s.Now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// resolveDate parses an optional entry date, defaulting to today.
func (s *BaseService) resolveDate(raw string) (time.Time, error) {
	if raw == "" {
		return s.today(), nil
	}
	return parseDate(raw)
}
