package seed

import "time"

// Clock supplies the CreatedAt timestamp for newly derived seeds.
// CreatedAt is the only wall-clock value in a DailySeed.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
