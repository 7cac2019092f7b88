package domain

import "github.com/jonboulle/clockwork"

// orRealClock returns c, or the wall clock when c is nil. Callers inject a
// fake clock in tests and fixture generation for deterministic timestamps.
func orRealClock(c clockwork.Clock) clockwork.Clock {
	if c == nil {
		return clockwork.NewRealClock()
	}
	return c
}
