// Package reminder decides, once a minute, whether the user should hear from
// the app: the on-the-hour nudge, the 03:00 step advancement, and the
// randomized daily practice reminder. All three share the quiet-hours window
// and each carries its own dedup key, so polling cadence affects latency
// only, never duplicate delivery.
package reminder

import (
	"fmt"
	"time"

	"github.com/nvaleckas/stepwise/internal/config"
)

// ParseClock converts "HH:MM" into minutes past midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(config.ClockFormat, s)
	if err != nil {
		return 0, fmt.Errorf("parsing clock %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// InQuietHours reports whether the instant falls inside the sleep window,
// boundaries included. A start after its end wraps midnight: 22:00-07:00
// covers 23:30 and 05:00 but not 12:00. Unparseable bounds fall back to the
// default window for this evaluation only.
func InQuietHours(now time.Time, sleepStart, sleepEnd string) bool {
	start, err := ParseClock(sleepStart)
	if err != nil {
		start, _ = ParseClock(config.DefaultSleepStart)
	}
	end, err := ParseClock(sleepEnd)
	if err != nil {
		end, _ = ParseClock(config.DefaultSleepEnd)
	}
	minute := now.Hour()*60 + now.Minute()
	if start > end {
		return minute >= start || minute <= end
	}
	return minute >= start && minute <= end
}
