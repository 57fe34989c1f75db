package database

import "context"

// Settings key constants. Composite state (the timer descriptor) is stored
// as JSON under a single key so corruption invalidates it atomically;
// everything else is one scalar per key.
const (
	KeyActiveTimer = "active_timer"

	KeyCurrentStep     = "current_step"
	KeyStartDate       = "start_date"
	KeyLastAdvanceDate = "last_advance_date"

	KeyAlwaysHourly            = "always_hourly"
	KeySleepStart              = "sleep_start"
	KeySleepEnd                = "sleep_end"
	KeyPracticeReminderEnabled = "practice_reminder_enabled"
	KeyPracticeReminderTime    = "practice_reminder_time"
	KeyPracticeReminderDate    = "practice_reminder_date"

	KeyLastHourlyKey           = "last_hourly_key"
	KeyLastAdvanceKey          = "last_advance_key"
	KeyLastPracticeReminderKey = "last_practice_reminder_key"
	KeyLastPracticeStartDate   = "last_practice_start_date"

	KeyTheme = "theme"
)

func (d *Database) GetSetting(ctx context.Context, key string) (string, bool) {
	var value *string
	err := d.DB.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		return "", false
	}
	if value != nil {
		return *value, true
	}
	return "", false
}

func (d *Database) SetSetting(ctx context.Context, key, value string) error {
	_, err := d.DB.ExecContext(ctx,
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	return wrapSettingErr("set", err)
}

func (d *Database) DeleteSetting(ctx context.Context, key string) error {
	_, err := d.DB.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key)
	return wrapSettingErr("delete", err)
}
