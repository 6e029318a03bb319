package lotto

import "context"

// RandomGenerator supplies uniform integers for number sampling
type RandomGenerator interface {
	// IntN returns a uniform integer in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// RoundRecorder stores settled rounds
type RoundRecorder interface {
	// Record stores one settled round
	Record(ctx context.Context, summary *RoundSummary) error
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}
