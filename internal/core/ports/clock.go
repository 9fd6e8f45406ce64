package ports

import "time"

// Clock supplies the timestamps recorded by engine mutations. Injected so
// tests can pin time and so every timestamp in a single operation comes from
// one reading.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return ClockFunc(time.Now)
}
