package loom

import (
	"fmt"

	"go.uber.org/zap"
)

// LoggingMiddleware logs every top-level resolution through a zap
// logger. Successful resolutions log at Debug, failures at Warn. The
// container core itself never logs; attach this middleware where
// resolution visibility is wanted.
type LoggingMiddleware struct {
	logger *zap.Logger
}

// NewLoggingMiddleware creates logging middleware. A nil logger is
// replaced with a no-op logger.
//
// Example:
//
//	c := loom.New()
//	c.Use(loom.NewLoggingMiddleware(logger))
func NewLoggingMiddleware(logger *zap.Logger) *LoggingMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &LoggingMiddleware{logger: logger}
}

// BeforeResolve implements Middleware.
func (m *LoggingMiddleware) BeforeResolve(key Key) error {
	m.logger.Debug("resolving", zap.Stringer("key", key))

	return nil
}

// AfterResolve implements Middleware.
func (m *LoggingMiddleware) AfterResolve(key Key, instance any, err error) error {
	if err != nil {
		m.logger.Warn("resolution failed", zap.Stringer("key", key), zap.Error(err))

		return nil
	}

	m.logger.Debug("resolved",
		zap.Stringer("key", key),
		zap.String("type", fmt.Sprintf("%T", instance)))

	return nil
}
