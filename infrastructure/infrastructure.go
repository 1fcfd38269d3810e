package infrastructure

import "time"

type Clock struct{}

func (c Clock) UtcNow() time.Time {
	return time.Now().UTC()
}

// FixedClock always reports the same instant.
type FixedClock struct {
	Now time.Time
}

func (c FixedClock) UtcNow() time.Time {
	return c.Now.UTC()
}
