package config

import "time"

// Timer behavior.
const (
	// TickInterval drives countdown refresh. Keep at or above MinTickInterval;
	// anything faster only burns renders without changing the wall-clock math.
	TickInterval    = 500 * time.Millisecond
	MinTickInterval = 100 * time.Millisecond

	// RestartDebounce gates resetAndStart/resumeFromTime so a duplicated UI
	// event cannot spin up two overlapping countdowns.
	RestartDebounce = 500 * time.Millisecond

	// MaxPracticeSeconds bounds a persisted timer duration. Values outside
	// (0, MaxPracticeSeconds] mark the stored descriptor as corrupted.
	MaxPracticeSeconds = 3600
)

// Reminder scheduling.
const (
	ReminderPoll = time.Minute

	// AdvanceHour is the local hour at which the daily step advancement runs.
	AdvanceHour = 3

	// Practice-reminder window, minutes of day. A random minute inside
	// [WindowStart, WindowEnd) is picked once per day.
	ReminderWindowStart = 10*60 + 30
	ReminderWindowEnd   = 14 * 60
)

// Reminder preference defaults.
const (
	DefaultSleepStart = "22:00"
	DefaultSleepEnd   = "07:00"
)

// Step program.
const (
	FirstStep = 1
	MaxStep   = 365
)

// Date and dedup key layouts.
const (
	DateFormat    = "2006-01-02"
	HourKeyFormat = "2006-01-02-15"
	ClockFormat   = "15:04"
)

// Database/application settings.
const (
	AppName    = "stepwise"
	DBFileName = "stepwise.db"
)
