package common

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RateLimitedLogger lets through at most one message per period, and counts
// the messages it swallowed so the next one that passes can report them.
// Each diagnostic category should get its own RateLimitedLogger.
type RateLimitedLogger struct {
	logger  *logrus.Entry
	limiter *rate.Limiter
	dropped int
}

// NewRateLimitedLogger creates a RateLimitedLogger. A non-positive period
// disables rate-limiting.
func NewRateLimitedLogger(logger *logrus.Entry, period time.Duration) *RateLimitedLogger {
	limit := rate.Inf
	if period > 0 {
		limit = rate.Every(period)
	}
	return &RateLimitedLogger{
		logger:  logger,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Log writes msg at the given level with fields, unless the limiter says it is
// too soon.
func (l *RateLimitedLogger) Log(level logrus.Level, fields logrus.Fields, msg string) {
	if !l.logger.Logger.IsLevelEnabled(level) {
		return
	}

	if !l.limiter.Allow() {
		l.dropped++
		return
	}

	entry := l.logger.WithFields(fields)
	if l.dropped > 0 {
		entry = entry.WithField("suppressed", l.dropped)
		l.dropped = 0
	}
	entry.Log(level, msg)
}

// Dropped returns the number of messages swallowed since the last one that
// went through.
func (l *RateLimitedLogger) Dropped() int {
	return l.dropped
}
