package clock

import "time"

// SystemClock implements usecase.Clock with the wall clock.
type SystemClock struct{}

// New creates a new SystemClock.
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
