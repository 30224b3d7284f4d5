// Package clock supplies the current time so that expiry rules and
// message timers can be driven deterministically in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// SystemClock returns the wall-clock time in UTC.
type SystemClock struct{}

func NewSystemClock() SystemClock { return SystemClock{} }

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Func adapts a function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// Fixed returns a Clock stuck at t.
func Fixed(t time.Time) Clock { return Func(func() time.Time { return t }) }
