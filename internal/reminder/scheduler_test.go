package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/nvaleckas/stepwise/internal/database"
	"github.com/nvaleckas/stepwise/internal/models"
	"github.com/nvaleckas/stepwise/internal/steps"
	"github.com/nvaleckas/stepwise/internal/testutil"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newScheduler(t *testing.T, now time.Time) (*Scheduler, *MockStore, *MockNotifier) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	notifier := NewMockNotifier(ctrl)
	catalog, err := steps.Load()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	return NewScheduler(store, catalog, notifier, &fakeClock{now: now}), store, notifier
}

// quietPrefs returns preferences that keep the practice-reminder rule inert
// for tests aimed at the other rules: the daily pick already exists for
// `date` and the reminder itself is switched off.
func quietPrefs(date string) models.ReminderPrefs {
	return testutil.NewPrefs().WithPracticeReminder("10:30", date).PracticeReminderOff().Build()
}

func TestEvaluateHourly_FiresForHourlyStep(t *testing.T) {
	now := time.Date(2026, 3, 1, 11, 0, 0, 0, time.Local)
	s, store, notifier := newScheduler(t, now)
	state := testutil.NewDailyState().AtStep(61).StartedOn("2026-01-01").LastAdvancedOn("2026-03-01").Build()

	store.EXPECT().ReminderPrefs(gomock.Any()).Return(quietPrefs("2026-03-01"))
	store.EXPECT().GetSetting(gomock.Any(), database.KeyLastHourlyKey).Return("", false)
	store.EXPECT().DailyState(gomock.Any()).Return(&state, nil)
	store.EXPECT().SetSetting(gomock.Any(), database.KeyLastHourlyKey, "2026-03-01-11").Return(nil)
	notifier.EXPECT().Send("Hourly reminder", gomock.Any(), true).Return(true)

	s.Evaluate(context.Background())
}

func TestEvaluateHourly_DedupWithinHour(t *testing.T) {
	now := time.Date(2026, 3, 1, 11, 0, 30, 0, time.Local)
	s, store, _ := newScheduler(t, now)

	store.EXPECT().ReminderPrefs(gomock.Any()).Return(quietPrefs("2026-03-01"))
	store.EXPECT().GetSetting(gomock.Any(), database.KeyLastHourlyKey).Return("2026-03-01-11", true)

	s.Evaluate(context.Background())
}

func TestEvaluateHourly_QuietHoursSuppress(t *testing.T) {
	now := time.Date(2026, 3, 1, 23, 0, 0, 0, time.Local)
	s, store, _ := newScheduler(t, now)

	store.EXPECT().ReminderPrefs(gomock.Any()).Return(quietPrefs("2026-03-01"))
	store.EXPECT().GetSetting(gomock.Any(), database.KeyLastHourlyKey).Return("", false)

	s.Evaluate(context.Background())
}

func TestEvaluateHourly_NeedsHourlyStepOrOverride(t *testing.T) {
	now := time.Date(2026, 3, 1, 11, 0, 0, 0, time.Local)
	state := testutil.NewDailyState().AtStep(1).StartedOn("2026-03-01").LastAdvancedOn("2026-03-01").Build()

	t.Run("plain step stays silent", func(t *testing.T) {
		s, store, _ := newScheduler(t, now)
		store.EXPECT().ReminderPrefs(gomock.Any()).Return(quietPrefs("2026-03-01"))
		store.EXPECT().GetSetting(gomock.Any(), database.KeyLastHourlyKey).Return("", false)
		store.EXPECT().DailyState(gomock.Any()).Return(&state, nil)

		s.Evaluate(context.Background())
	})

	t.Run("always-hourly override fires", func(t *testing.T) {
		s, store, notifier := newScheduler(t, now)
		prefs := testutil.NewPrefs().AlwaysHourly().
			WithPracticeReminder("10:30", "2026-03-01").PracticeReminderOff().Build()
		store.EXPECT().ReminderPrefs(gomock.Any()).Return(prefs)
		store.EXPECT().GetSetting(gomock.Any(), database.KeyLastHourlyKey).Return("", false)
		store.EXPECT().DailyState(gomock.Any()).Return(&state, nil)
		store.EXPECT().SetSetting(gomock.Any(), database.KeyLastHourlyKey, "2026-03-01-11").Return(nil)
		notifier.EXPECT().Send("Hourly reminder", gomock.Any(), true).Return(true)

		s.Evaluate(context.Background())
	})
}

func TestEvaluateHourly_OffMinuteDoesNothing(t *testing.T) {
	now := time.Date(2026, 3, 1, 11, 7, 0, 0, time.Local)
	s, store, _ := newScheduler(t, now)

	store.EXPECT().ReminderPrefs(gomock.Any()).Return(quietPrefs("2026-03-01"))

	s.Evaluate(context.Background())
}

func TestEvaluateHourly_RepeatedLocalHour(t *testing.T) {
	// On a fall-back clock change the local hour repeats. The dedup key is
	// the local calendar hour, so the replayed hour shares its key with the
	// first pass and stays silent; serving the same wall instant twice is
	// exactly what the key sees in that case. The mirror image holds for
	// spring-forward: the skipped hour's nudge never fires at all.
	now := time.Date(2026, 10, 25, 2, 0, 0, 0, time.Local)
	s, store, notifier := newScheduler(t, now)
	prefs := testutil.NewPrefs().WithQuietHours("23:00", "01:00").
		WithPracticeReminder("10:30", "2026-10-25").PracticeReminderOff().Build()
	state := testutil.NewDailyState().AtStep(61).StartedOn("2026-01-01").LastAdvancedOn("2026-10-25").Build()

	store.EXPECT().ReminderPrefs(gomock.Any()).Return(prefs).Times(2)
	store.EXPECT().GetSetting(gomock.Any(), database.KeyLastHourlyKey).Return("", false)
	store.EXPECT().DailyState(gomock.Any()).Return(&state, nil)
	store.EXPECT().SetSetting(gomock.Any(), database.KeyLastHourlyKey, "2026-10-25-02").Return(nil)
	notifier.EXPECT().Send("Hourly reminder", gomock.Any(), true).Return(true)
	store.EXPECT().GetSetting(gomock.Any(), database.KeyLastHourlyKey).Return("2026-10-25-02", true)

	s.Evaluate(context.Background())
	s.Evaluate(context.Background())
}

func TestEvaluateAdvancement_FirstRunInitializes(t *testing.T) {
	now := time.Date(2026, 3, 1, 3, 7, 0, 0, time.Local)
	s, store, _ := newScheduler(t, now)

	store.EXPECT().ReminderPrefs(gomock.Any()).Return(quietPrefs("2026-03-01"))
	store.EXPECT().GetSetting(gomock.Any(), database.KeyLastAdvanceKey).Return("", false)
	store.EXPECT().DailyState(gomock.Any()).Return(nil, nil)
	store.EXPECT().SaveDailyState(gomock.Any(), models.DailyState{
		CurrentStepID:   1,
		StartDate:       "2026-03-01",
		LastAdvanceDate: "2026-03-01",
	}).Return(nil)
	store.EXPECT().SetSetting(gomock.Any(), database.KeyLastAdvanceKey, "2026-03-01").Return(nil)

	s.Evaluate(context.Background())
}

func TestEvaluateAdvancement_CapsAtFinalStep(t *testing.T) {
	// Ten days away at step 360 lands on 365, not 370.
	now := time.Date(2026, 3, 1, 3, 7, 0, 0, time.Local)
	state := testutil.NewDailyState().AtStep(360).StartedOn("2025-09-01").LastAdvancedOn("2026-02-19").Build()

	t.Run("silent inside quiet hours", func(t *testing.T) {
		s, store, _ := newScheduler(t, now)
		store.EXPECT().ReminderPrefs(gomock.Any()).Return(quietPrefs("2026-03-01"))
		store.EXPECT().GetSetting(gomock.Any(), database.KeyLastAdvanceKey).Return("", false)
		store.EXPECT().DailyState(gomock.Any()).Return(&state, nil)
		store.EXPECT().SaveDailyState(gomock.Any(), models.DailyState{
			CurrentStepID:   365,
			StartDate:       "2025-09-01",
			LastAdvanceDate: "2026-03-01",
		}).Return(nil)
		store.EXPECT().SetSetting(gomock.Any(), database.KeyLastAdvanceKey, "2026-03-01").Return(nil)

		s.Evaluate(context.Background())
	})

	t.Run("notifies outside quiet hours", func(t *testing.T) {
		s, store, notifier := newScheduler(t, now)
		prefs := testutil.NewPrefs().WithQuietHours("23:00", "02:00").
			WithPracticeReminder("10:30", "2026-03-01").PracticeReminderOff().Build()
		store.EXPECT().ReminderPrefs(gomock.Any()).Return(prefs)
		store.EXPECT().GetSetting(gomock.Any(), database.KeyLastAdvanceKey).Return("", false)
		store.EXPECT().DailyState(gomock.Any()).Return(&state, nil)
		store.EXPECT().SaveDailyState(gomock.Any(), gomock.Any()).Return(nil)
		store.EXPECT().SetSetting(gomock.Any(), database.KeyLastAdvanceKey, "2026-03-01").Return(nil)
		notifier.EXPECT().Send("New step", "Step 365: Completion", false).Return(true)

		s.Evaluate(context.Background())
	})
}

func TestEvaluateAdvancement_SingleDay(t *testing.T) {
	now := time.Date(2026, 3, 1, 3, 7, 0, 0, time.Local)
	s, store, _ := newScheduler(t, now)
	state := testutil.NewDailyState().AtStep(5).StartedOn("2026-02-25").LastAdvancedOn("2026-02-28").Build()

	store.EXPECT().ReminderPrefs(gomock.Any()).Return(quietPrefs("2026-03-01"))
	store.EXPECT().GetSetting(gomock.Any(), database.KeyLastAdvanceKey).Return("", false)
	store.EXPECT().DailyState(gomock.Any()).Return(&state, nil)
	store.EXPECT().SaveDailyState(gomock.Any(), models.DailyState{
		CurrentStepID:   6,
		StartDate:       "2026-02-25",
		LastAdvanceDate: "2026-03-01",
	}).Return(nil)
	store.EXPECT().SetSetting(gomock.Any(), database.KeyLastAdvanceKey, "2026-03-01").Return(nil)

	s.Evaluate(context.Background())
}

func TestEvaluateAdvancement_DedupedForToday(t *testing.T) {
	now := time.Date(2026, 3, 1, 3, 7, 0, 0, time.Local)
	s, store, _ := newScheduler(t, now)

	store.EXPECT().ReminderPrefs(gomock.Any()).Return(quietPrefs("2026-03-01"))
	store.EXPECT().GetSetting(gomock.Any(), database.KeyLastAdvanceKey).Return("2026-03-01", true)

	s.Evaluate(context.Background())
}

func TestEvaluateAdvancement_SameDayNoAdvance(t *testing.T) {
	now := time.Date(2026, 3, 1, 3, 7, 0, 0, time.Local)
	s, store, _ := newScheduler(t, now)
	state := testutil.NewDailyState().AtStep(12).StartedOn("2026-02-18").LastAdvancedOn("2026-03-01").Build()

	store.EXPECT().ReminderPrefs(gomock.Any()).Return(quietPrefs("2026-03-01"))
	store.EXPECT().GetSetting(gomock.Any(), database.KeyLastAdvanceKey).Return("", false)
	store.EXPECT().DailyState(gomock.Any()).Return(&state, nil)
	store.EXPECT().SetSetting(gomock.Any(), database.KeyLastAdvanceKey, "2026-03-01").Return(nil)

	s.Evaluate(context.Background())
}

func TestEvaluatePractice_PicksMinuteOncePerDay(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 7, 0, 0, time.Local)
	s, store, _ := newScheduler(t, now)
	s.randInt = func(int) int { return 17 } // 10:30 + 17 minutes
	prefs := testutil.NewPrefs().WithPracticeReminder("11:11", "2026-02-28").Build()

	store.EXPECT().ReminderPrefs(gomock.Any()).Return(prefs)
	store.EXPECT().SetSetting(gomock.Any(), database.KeyPracticeReminderTime, "10:47").Return(nil)
	store.EXPECT().SetSetting(gomock.Any(), database.KeyPracticeReminderDate, "2026-03-01").Return(nil)

	s.Evaluate(context.Background())
}

func TestEvaluatePractice_FiresAtChosenMinute(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 47, 0, 0, time.Local)
	s, store, notifier := newScheduler(t, now)
	prefs := testutil.NewPrefs().WithPracticeReminder("10:47", "2026-03-01").Build()

	store.EXPECT().ReminderPrefs(gomock.Any()).Return(prefs)
	store.EXPECT().GetSetting(gomock.Any(), database.KeyLastPracticeReminderKey).Return("", false)
	store.EXPECT().GetSetting(gomock.Any(), database.KeyLastPracticeStartDate).Return("", false)
	store.EXPECT().SetSetting(gomock.Any(), database.KeyLastPracticeReminderKey, "2026-03-01").Return(nil)
	notifier.EXPECT().Send("Practice reminder", gomock.Any(), true).Return(true)

	s.Evaluate(context.Background())
}

func TestEvaluatePractice_FiresLateWithinWindow(t *testing.T) {
	// The poll that should have landed on the chosen minute never ran; the
	// nudge still goes out on the next pass inside the window.
	now := time.Date(2026, 3, 1, 12, 30, 0, 0, time.Local)
	s, store, notifier := newScheduler(t, now)
	prefs := testutil.NewPrefs().WithPracticeReminder("10:47", "2026-03-01").Build()

	store.EXPECT().ReminderPrefs(gomock.Any()).Return(prefs)
	store.EXPECT().GetSetting(gomock.Any(), database.KeyLastPracticeReminderKey).Return("", false)
	store.EXPECT().GetSetting(gomock.Any(), database.KeyLastPracticeStartDate).Return("", false)
	store.EXPECT().SetSetting(gomock.Any(), database.KeyLastPracticeReminderKey, "2026-03-01").Return(nil)
	notifier.EXPECT().Send("Practice reminder", gomock.Any(), true).Return(true)

	s.Evaluate(context.Background())
}

func TestEvaluatePractice_SuppressedWhenPracticeStarted(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 47, 0, 0, time.Local)
	s, store, _ := newScheduler(t, now)
	prefs := testutil.NewPrefs().WithPracticeReminder("10:47", "2026-03-01").Build()

	store.EXPECT().ReminderPrefs(gomock.Any()).Return(prefs)
	store.EXPECT().GetSetting(gomock.Any(), database.KeyLastPracticeReminderKey).Return("", false)
	store.EXPECT().GetSetting(gomock.Any(), database.KeyLastPracticeStartDate).Return("2026-03-01", true)

	s.Evaluate(context.Background())
}

func TestEvaluatePractice_OncePerDay(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 48, 0, 0, time.Local)
	s, store, _ := newScheduler(t, now)
	prefs := testutil.NewPrefs().WithPracticeReminder("10:47", "2026-03-01").Build()

	store.EXPECT().ReminderPrefs(gomock.Any()).Return(prefs)
	store.EXPECT().GetSetting(gomock.Any(), database.KeyLastPracticeReminderKey).Return("2026-03-01", true)

	s.Evaluate(context.Background())
}

func TestEvaluatePractice_PastWindowNoFire(t *testing.T) {
	now := time.Date(2026, 3, 1, 15, 7, 0, 0, time.Local)
	s, store, _ := newScheduler(t, now)
	prefs := testutil.NewPrefs().WithPracticeReminder("10:47", "2026-03-01").Build()

	store.EXPECT().ReminderPrefs(gomock.Any()).Return(prefs)

	s.Evaluate(context.Background())
}

func TestEvaluatePractice_QuietHoursConsumeNudge(t *testing.T) {
	// A nudge landing inside quiet hours is recorded as spent, so it does
	// not pop up the moment quiet hours end.
	now := time.Date(2026, 3, 1, 10, 47, 0, 0, time.Local)
	s, store, _ := newScheduler(t, now)
	prefs := testutil.NewPrefs().WithQuietHours("10:00", "16:00").
		WithPracticeReminder("10:47", "2026-03-01").Build()

	store.EXPECT().ReminderPrefs(gomock.Any()).Return(prefs)
	store.EXPECT().GetSetting(gomock.Any(), database.KeyLastPracticeReminderKey).Return("", false)
	store.EXPECT().GetSetting(gomock.Any(), database.KeyLastPracticeStartDate).Return("", false)
	store.EXPECT().SetSetting(gomock.Any(), database.KeyLastPracticeReminderKey, "2026-03-01").Return(nil)

	s.Evaluate(context.Background())
}

func TestEvaluatePractice_DisabledDoesNothing(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 47, 0, 0, time.Local)
	s, store, _ := newScheduler(t, now)

	store.EXPECT().ReminderPrefs(gomock.Any()).Return(quietPrefs("2026-03-01"))

	s.Evaluate(context.Background())
}
