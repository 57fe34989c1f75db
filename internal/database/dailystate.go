package database

import (
	"context"
	"log"
	"strconv"

	"github.com/nvaleckas/stepwise/internal/config"
	"github.com/nvaleckas/stepwise/internal/models"
	"github.com/nvaleckas/stepwise/internal/util"
)

// DailyState returns the advancement bookkeeping, or nil when the store has
// never been initialized. An unreadable current_step counts as uninitialized;
// an out-of-program value is clamped rather than discarded.
func (d *Database) DailyState(ctx context.Context) (*models.DailyState, error) {
	raw, ok := d.GetSetting(ctx, KeyCurrentStep)
	if !ok {
		return nil, nil
	}
	cur, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("treating unreadable current step %q as uninitialized", raw)
		return nil, nil
	}
	cur = util.Clamp(cur, config.FirstStep, config.MaxStep)

	start, _ := d.GetSetting(ctx, KeyStartDate)
	lastAdvance, _ := d.GetSetting(ctx, KeyLastAdvanceDate)
	return &models.DailyState{
		CurrentStepID:   cur,
		StartDate:       start,
		LastAdvanceDate: lastAdvance,
	}, nil
}

// SaveDailyState writes all three fields in one transaction so a crash
// cannot leave the step and its dates disagreeing.
func (d *Database) SaveDailyState(ctx context.Context, st models.DailyState) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return wrapStateErr("save", err)
	}
	upsert := func(key, value string) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			key, value)
		return err
	}
	if err := upsert(KeyCurrentStep, strconv.Itoa(st.CurrentStepID)); err != nil {
		return wrapStateErr("save", rollbackWithLog(tx, err))
	}
	if err := upsert(KeyStartDate, st.StartDate); err != nil {
		return wrapStateErr("save", rollbackWithLog(tx, err))
	}
	if err := upsert(KeyLastAdvanceDate, st.LastAdvanceDate); err != nil {
		return wrapStateErr("save", rollbackWithLog(tx, err))
	}
	if err := tx.Commit(); err != nil {
		return wrapStateErr("save", err)
	}
	return nil
}
