package models

import "fmt"

// Step is one numbered unit of the daily program: instructional text plus a
// list of timed practice exercises. Reference data only; the catalog owns it
// and nothing in the app mutates it.
type Step struct {
	ID           int
	Title        string
	Instructions string
	Practices    []string
	Durations    []int // seconds, positional with Practices; 0 = manual-complete only
	Hourly       bool
}

// Duration returns the countdown seconds for practice idx, 0 when the
// practice is untimed or idx is out of range.
func (s Step) Duration(idx int) int {
	if idx < 0 || idx >= len(s.Durations) {
		return 0
	}
	return s.Durations[idx]
}

// Label is the step's display name: "Step N" alone, or "Step N: Title" when
// the step carries a real title.
func (s Step) Label() string {
	plain := fmt.Sprintf("Step %d", s.ID)
	if s.Title == "" || s.Title == plain {
		return plain
	}
	return fmt.Sprintf("Step %d: %s", s.ID, s.Title)
}

// ActiveTimerDescriptor is the single persisted countdown. EndTimestamp is an
// absolute instant (Unix milliseconds) so a restarted process can rebuild the
// remaining time; while IsPaused it holds the end frozen at pause time, and a
// restore re-derives the paused remainder from it.
type ActiveTimerDescriptor struct {
	StepID          int   `json:"step_id"`
	PracticeIndex   int   `json:"practice_index"`
	EndTimestamp    int64 `json:"end_timestamp"`
	DurationSeconds int   `json:"duration_seconds"`
	IsPaused        bool  `json:"is_paused"`
}

// DailyState tracks which step today belongs to. Dates use 2006-01-02.
type DailyState struct {
	CurrentStepID   int
	StartDate       string
	LastAdvanceDate string
}

// ReminderPrefs holds user-facing reminder settings. SleepStart/SleepEnd
// ("HH:MM") form a quiet-hours window that may wrap past midnight.
// PracticeReminderTime is the randomized once-a-day pick, valid only while
// PracticeReminderDate matches the current day.
type ReminderPrefs struct {
	AlwaysHourly            bool
	SleepStart              string
	SleepEnd                string
	PracticeReminderEnabled bool
	PracticeReminderTime    string
	PracticeReminderDate    string
}
