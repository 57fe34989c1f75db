// Package clock abstracts wall-clock access so timer and reminder logic can
// run against simulated time in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System reads the real wall clock in local time. Reminder rules are keyed
// by the local calendar (hour-of-day, minute-of-day), so no UTC conversion
// happens here.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}
