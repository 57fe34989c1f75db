package reminder

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/nvaleckas/stepwise/internal/clock"
	"github.com/nvaleckas/stepwise/internal/config"
	"github.com/nvaleckas/stepwise/internal/database"
	"github.com/nvaleckas/stepwise/internal/models"
	"github.com/nvaleckas/stepwise/internal/steps"
	"github.com/nvaleckas/stepwise/internal/util"
)

//go:generate mockgen -source=scheduler.go -destination=mock_scheduler_test.go -package=reminder

// Store is the slice of the settings store the scheduler reads and writes.
type Store interface {
	GetSetting(ctx context.Context, key string) (string, bool)
	SetSetting(ctx context.Context, key, value string) error
	DailyState(ctx context.Context) (*models.DailyState, error)
	SaveDailyState(ctx context.Context, st models.DailyState) error
	ReminderPrefs(ctx context.Context) models.ReminderPrefs
}

// Notifier delivers the reminders the scheduler decides to send.
type Notifier interface {
	Send(title, body string, sound bool) bool
	PlaySound()
}

var practiceReminderBodies = []string{
	"Today's practice is still open.",
	"A few quiet minutes are waiting for you.",
	"There is still time to sit with today's step.",
	"Your step for today has not been started yet.",
}

// Scheduler evaluates the reminder rules against the current instant. It
// holds no timers of its own; the host loop polls Evaluate roughly once a
// minute and once at startup.
type Scheduler struct {
	store    Store
	catalog  *steps.Catalog
	notifier Notifier
	clk      clock.Clock

	randInt func(n int) int
}

func NewScheduler(store Store, catalog *steps.Catalog, notifier Notifier, clk clock.Clock) *Scheduler {
	return &Scheduler{store: store, catalog: catalog, notifier: notifier, clk: clk, randInt: rand.IntN}
}

// Evaluate runs the three rules in order: advancement first so the hourly
// nudge already speaks for the new step on advancement mornings. Each rule
// isolates its own failures; a broken read skips that rule for this pass and
// nothing else.
func (s *Scheduler) Evaluate(ctx context.Context) {
	now := s.clk.Now()
	prefs := s.store.ReminderPrefs(ctx)
	s.evaluateAdvancement(ctx, now, prefs)
	s.evaluateHourly(ctx, now, prefs)
	s.evaluatePracticeReminder(ctx, now, prefs)
}

// evaluateHourly sends the on-the-hour nudge when the current step asks for
// it (or the always-hourly override is set). The dedup key is the local
// calendar hour: on the repeated hour of a fall-back clock change the second
// pass shares the key and stays silent, and a spring-forward skips that
// hour's nudge entirely.
func (s *Scheduler) evaluateHourly(ctx context.Context, now time.Time, prefs models.ReminderPrefs) {
	if now.Minute() != 0 {
		return
	}
	key := now.Format(config.HourKeyFormat)
	if last, _ := s.store.GetSetting(ctx, database.KeyLastHourlyKey); last == key {
		return
	}
	if InQuietHours(now, prefs.SleepStart, prefs.SleepEnd) {
		return
	}
	step, ok := s.currentStep(ctx)
	if !ok {
		return
	}
	if !step.Hourly && !prefs.AlwaysHourly {
		return
	}
	if err := s.store.SetSetting(ctx, database.KeyLastHourlyKey, key); err != nil {
		util.LogError("record hourly key", err)
		return
	}
	s.notifier.Send("Hourly reminder", step.Label(), true)
}

// evaluateAdvancement moves the program forward at 03:00. The step change
// itself always happens; only the notification is subject to quiet hours.
func (s *Scheduler) evaluateAdvancement(ctx context.Context, now time.Time, prefs models.ReminderPrefs) {
	if now.Hour() != config.AdvanceHour {
		return
	}
	today := now.Format(config.DateFormat)
	if last, _ := s.store.GetSetting(ctx, database.KeyLastAdvanceKey); last == today {
		return
	}

	st, err := s.store.DailyState(ctx)
	if err != nil {
		util.LogError("load daily state", err)
		return
	}
	if st == nil {
		fresh := models.DailyState{CurrentStepID: config.FirstStep, StartDate: today, LastAdvanceDate: today}
		if err := s.store.SaveDailyState(ctx, fresh); err != nil {
			util.LogError("initialize daily state", err)
			return
		}
		s.recordAdvanceKey(ctx, today)
		return
	}

	days := daysSince(st.LastAdvanceDate, now)
	if days <= 0 {
		s.recordAdvanceKey(ctx, today)
		return
	}
	next := min(st.CurrentStepID+days, config.MaxStep)
	updated := *st
	updated.CurrentStepID = next
	updated.LastAdvanceDate = today
	if err := s.store.SaveDailyState(ctx, updated); err != nil {
		util.LogError("advance daily state", err)
		return
	}
	s.recordAdvanceKey(ctx, today)
	util.Logf("reminder: advanced %d day(s) to step %d", days, next)
	if InQuietHours(now, prefs.SleepStart, prefs.SleepEnd) {
		return
	}
	if step, err := s.catalog.Get(next); err == nil {
		s.notifier.Send("New step", step.Label(), false)
	}
}

// evaluatePracticeReminder nudges once a day, at a minute chosen at random
// inside the reminder window, if the user has not started practicing yet.
// A nudge whose minute lands in quiet hours is consumed, not deferred to the
// end of the window.
func (s *Scheduler) evaluatePracticeReminder(ctx context.Context, now time.Time, prefs models.ReminderPrefs) {
	chosen, ok := s.chosenMinute(ctx, now, prefs)
	if !ok || !prefs.PracticeReminderEnabled {
		return
	}
	minute := now.Hour()*60 + now.Minute()
	if minute < chosen || minute > config.ReminderWindowEnd {
		return
	}
	today := now.Format(config.DateFormat)
	if last, _ := s.store.GetSetting(ctx, database.KeyLastPracticeReminderKey); last == today {
		return
	}
	if started, _ := s.store.GetSetting(ctx, database.KeyLastPracticeStartDate); started == today {
		return
	}
	if err := s.store.SetSetting(ctx, database.KeyLastPracticeReminderKey, today); err != nil {
		util.LogError("record practice reminder key", err)
		return
	}
	if InQuietHours(now, prefs.SleepStart, prefs.SleepEnd) {
		util.Logf("reminder: practice nudge suppressed by quiet hours")
		return
	}
	body := practiceReminderBodies[s.randInt(len(practiceReminderBodies))]
	s.notifier.Send("Practice reminder", body, true)
}

// chosenMinute returns today's reminder minute, drawing a fresh one when the
// stored pick belongs to an earlier day or does not parse.
func (s *Scheduler) chosenMinute(ctx context.Context, now time.Time, prefs models.ReminderPrefs) (int, bool) {
	today := now.Format(config.DateFormat)
	if prefs.PracticeReminderDate == today {
		if m, err := ParseClock(prefs.PracticeReminderTime); err == nil {
			return m, true
		}
	}
	m := config.ReminderWindowStart + s.randInt(config.ReminderWindowEnd-config.ReminderWindowStart)
	clockStr := fmt.Sprintf("%02d:%02d", m/60, m%60)
	if err := s.store.SetSetting(ctx, database.KeyPracticeReminderTime, clockStr); err != nil {
		util.LogError("store practice reminder time", err)
		return 0, false
	}
	if err := s.store.SetSetting(ctx, database.KeyPracticeReminderDate, today); err != nil {
		util.LogError("store practice reminder date", err)
		return 0, false
	}
	util.Logf("reminder: practice nudge scheduled for %s", clockStr)
	return m, true
}

func (s *Scheduler) currentStep(ctx context.Context) (models.Step, bool) {
	st, err := s.store.DailyState(ctx)
	if err != nil || st == nil {
		return models.Step{}, false
	}
	step, err := s.catalog.Get(st.CurrentStepID)
	if err != nil {
		return models.Step{}, false
	}
	return step, true
}

func (s *Scheduler) recordAdvanceKey(ctx context.Context, today string) {
	if err := s.store.SetSetting(ctx, database.KeyLastAdvanceKey, today); err != nil {
		util.LogError("record advancement key", err)
	}
}

// daysSince counts whole days from the stored date's midnight to now,
// flooring. An unparseable or future date counts as zero, which skips the
// advancement instead of guessing.
func daysSince(date string, now time.Time) int {
	past, err := time.ParseInLocation(config.DateFormat, date, now.Location())
	if err != nil {
		return 0
	}
	d := now.Sub(past)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
