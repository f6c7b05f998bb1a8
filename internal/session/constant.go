package session

import "time"

// Log prefixes
const (
	LogPrefixSweep = "internal.session.sweep"
)

// Log messages
const (
	LogMsgSessionsEvicted = "Cleaned up %d expired sessions"
)

// Configuration
const (
	DefaultTTL           = time.Hour
	DefaultSweepInterval = 5 * time.Minute
	DefaultHistoryLimit  = 10 // Last 5 turns (10 messages)
)
