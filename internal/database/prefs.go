package database

import (
	"context"
	"strconv"

	"github.com/nvaleckas/stepwise/internal/config"
	"github.com/nvaleckas/stepwise/internal/models"
	"github.com/nvaleckas/stepwise/internal/util"
)

// ReminderPrefs loads preferences, substituting defaults for anything
// missing or unreadable. It never fails; a broken row degrades to the
// default for that field only.
func (d *Database) ReminderPrefs(ctx context.Context) models.ReminderPrefs {
	p := models.ReminderPrefs{
		AlwaysHourly:            d.boolSetting(ctx, KeyAlwaysHourly, false),
		SleepStart:              d.stringSetting(ctx, KeySleepStart, config.DefaultSleepStart),
		SleepEnd:                d.stringSetting(ctx, KeySleepEnd, config.DefaultSleepEnd),
		PracticeReminderEnabled: d.boolSetting(ctx, KeyPracticeReminderEnabled, true),
	}
	p.PracticeReminderTime, _ = d.GetSetting(ctx, KeyPracticeReminderTime)
	p.PracticeReminderDate, _ = d.GetSetting(ctx, KeyPracticeReminderDate)
	return p
}

// SaveReminderPrefs writes every field in one transaction.
func (d *Database) SaveReminderPrefs(ctx context.Context, p models.ReminderPrefs) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return wrapPrefsErr("save", err)
	}
	upsert := func(key, value string) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			key, value)
		return err
	}
	fields := []struct {
		key   string
		value string
	}{
		{KeyAlwaysHourly, strconv.Itoa(util.BoolToInt(p.AlwaysHourly))},
		{KeySleepStart, p.SleepStart},
		{KeySleepEnd, p.SleepEnd},
		{KeyPracticeReminderEnabled, strconv.Itoa(util.BoolToInt(p.PracticeReminderEnabled))},
		{KeyPracticeReminderTime, p.PracticeReminderTime},
		{KeyPracticeReminderDate, p.PracticeReminderDate},
	}
	for _, f := range fields {
		if err := upsert(f.key, f.value); err != nil {
			return wrapPrefsErr("save", rollbackWithLog(tx, err))
		}
	}
	if err := tx.Commit(); err != nil {
		return wrapPrefsErr("save", err)
	}
	return nil
}

func (d *Database) boolSetting(ctx context.Context, key string, def bool) bool {
	raw, ok := d.GetSetting(ctx, key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return util.IntToBool(n)
}

func (d *Database) stringSetting(ctx context.Context, key, def string) string {
	raw, ok := d.GetSetting(ctx, key)
	if !ok || raw == "" {
		return def
	}
	return raw
}
