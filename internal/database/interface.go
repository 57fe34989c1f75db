package database

import (
	"context"
	"time"

	"github.com/nvaleckas/stepwise/internal/models"
)

// SettingsRepository is the raw key/value surface.
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, bool)
	SetSetting(ctx context.Context, key, value string) error
	DeleteSetting(ctx context.Context, key string) error
}

// ChecklistRepository defines per-step practice completion operations.
type ChecklistRepository interface {
	Checklist(ctx context.Context, stepID, practiceCount int) ([]bool, error)
	SetChecklistItem(ctx context.Context, stepID, practiceCount, idx int, done bool) error
	AllChecklists(ctx context.Context) (map[int][]bool, error)
	ResetAllChecklists(ctx context.Context) error
}

// TimerStateRepository persists the singleton countdown descriptor.
type TimerStateRepository interface {
	ActiveTimer(ctx context.Context, now time.Time) (*models.ActiveTimerDescriptor, error)
	SaveActiveTimer(ctx context.Context, desc models.ActiveTimerDescriptor) error
	ClearActiveTimer(ctx context.Context) error
}

// DailyStateRepository persists step advancement bookkeeping.
type DailyStateRepository interface {
	DailyState(ctx context.Context) (*models.DailyState, error)
	SaveDailyState(ctx context.Context, st models.DailyState) error
}

// PrefsRepository persists reminder preferences.
type PrefsRepository interface {
	ReminderPrefs(ctx context.Context) models.ReminderPrefs
	SaveReminderPrefs(ctx context.Context, p models.ReminderPrefs) error
}

// Repository combines all repository interfaces.
type Repository interface {
	SettingsRepository
	ChecklistRepository
	TimerStateRepository
	DailyStateRepository
	PrefsRepository

	ResetAll(ctx context.Context) error
}

var _ Repository = (*Database)(nil)
