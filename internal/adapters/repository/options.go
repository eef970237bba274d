package repository

import "time"

// Option applies a configuration option to the CSVLedger.
type Option func(*CSVLedger)

// WithLockTimeout bounds how long a writer waits for the cross-process
// lock before giving up with ErrBusy.
func WithLockTimeout(timeout time.Duration) Option {
	return func(l *CSVLedger) {
		if timeout > 0 {
			l.lockTimeout = timeout
		}
	}
}

// WithLockRetryInterval sets how often lock acquisition is retried while
// waiting.
func WithLockRetryInterval(interval time.Duration) Option {
	return func(l *CSVLedger) {
		if interval > 0 {
			l.lockRetry = interval
		}
	}
}

// WithClock replaces the wall clock, for deterministic timestamps in tests.
func WithClock(clock func() time.Time) Option {
	return func(l *CSVLedger) {
		if clock != nil {
			l.clock = clock
		}
	}
}
