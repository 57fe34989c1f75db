// Package testutil provides fluent builders for test fixtures shared across
// packages.
package testutil

import (
	"time"

	"github.com/nvaleckas/stepwise/internal/config"
	"github.com/nvaleckas/stepwise/internal/models"
)

// TimerBuilder provides a fluent API for creating timer descriptors.
type TimerBuilder struct {
	desc models.ActiveTimerDescriptor
}

func NewTimer() *TimerBuilder {
	return &TimerBuilder{
		desc: models.ActiveTimerDescriptor{
			StepID:          1,
			PracticeIndex:   0,
			DurationSeconds: 600,
		},
	}
}

func (b *TimerBuilder) ForPractice(stepID, idx int) *TimerBuilder {
	b.desc.StepID = stepID
	b.desc.PracticeIndex = idx
	return b
}

func (b *TimerBuilder) WithDuration(seconds int) *TimerBuilder {
	b.desc.DurationSeconds = seconds
	return b
}

func (b *TimerBuilder) EndingAt(t time.Time) *TimerBuilder {
	b.desc.EndTimestamp = t.UnixMilli()
	return b
}

func (b *TimerBuilder) Paused() *TimerBuilder {
	b.desc.IsPaused = true
	return b
}

func (b *TimerBuilder) Build() models.ActiveTimerDescriptor {
	return b.desc
}

// PrefsBuilder provides a fluent API for creating reminder preferences.
type PrefsBuilder struct {
	prefs models.ReminderPrefs
}

func NewPrefs() *PrefsBuilder {
	return &PrefsBuilder{
		prefs: models.ReminderPrefs{
			SleepStart:              config.DefaultSleepStart,
			SleepEnd:                config.DefaultSleepEnd,
			PracticeReminderEnabled: true,
		},
	}
}

func (b *PrefsBuilder) WithQuietHours(start, end string) *PrefsBuilder {
	b.prefs.SleepStart = start
	b.prefs.SleepEnd = end
	return b
}

func (b *PrefsBuilder) AlwaysHourly() *PrefsBuilder {
	b.prefs.AlwaysHourly = true
	return b
}

func (b *PrefsBuilder) WithPracticeReminder(clock, date string) *PrefsBuilder {
	b.prefs.PracticeReminderTime = clock
	b.prefs.PracticeReminderDate = date
	return b
}

func (b *PrefsBuilder) PracticeReminderOff() *PrefsBuilder {
	b.prefs.PracticeReminderEnabled = false
	return b
}

func (b *PrefsBuilder) Build() models.ReminderPrefs {
	return b.prefs
}

// StateBuilder provides a fluent API for creating daily advancement state.
type StateBuilder struct {
	state models.DailyState
}

func NewDailyState() *StateBuilder {
	return &StateBuilder{state: models.DailyState{CurrentStepID: config.FirstStep}}
}

func (b *StateBuilder) AtStep(id int) *StateBuilder {
	b.state.CurrentStepID = id
	return b
}

func (b *StateBuilder) StartedOn(date string) *StateBuilder {
	b.state.StartDate = date
	return b
}

func (b *StateBuilder) LastAdvancedOn(date string) *StateBuilder {
	b.state.LastAdvanceDate = date
	return b
}

func (b *StateBuilder) Build() models.DailyState {
	return b.state
}
