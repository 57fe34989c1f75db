package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nvaleckas/stepwise/internal/config"
	"github.com/nvaleckas/stepwise/internal/models"
)

// storedTimer decodes with pointer fields so an absent key is
// distinguishable from a zero value; any absent field invalidates the whole
// descriptor.
type storedTimer struct {
	StepID          *int   `json:"step_id"`
	PracticeIndex   *int   `json:"practice_index"`
	EndTimestamp    *int64 `json:"end_timestamp"`
	DurationSeconds *int   `json:"duration_seconds"`
	IsPaused        *bool  `json:"is_paused"`
}

// ActiveTimer loads and validates the persisted countdown descriptor. Stale
// or corrupted state (missing field, end instant already past, duration
// outside (0, MaxPracticeSeconds]) clears the stored value and returns nil.
// There is no partial recovery.
func (d *Database) ActiveTimer(ctx context.Context, now time.Time) (*models.ActiveTimerDescriptor, error) {
	raw, ok := d.GetSetting(ctx, KeyActiveTimer)
	if !ok {
		return nil, nil
	}
	var st storedTimer
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		log.Printf("clearing unreadable active timer: %v", err)
		return nil, d.ClearActiveTimer(ctx)
	}
	if reason := validateStoredTimer(st, now); reason != "" {
		log.Printf("clearing invalid active timer: %s", reason)
		return nil, d.ClearActiveTimer(ctx)
	}
	return &models.ActiveTimerDescriptor{
		StepID:          *st.StepID,
		PracticeIndex:   *st.PracticeIndex,
		EndTimestamp:    *st.EndTimestamp,
		DurationSeconds: *st.DurationSeconds,
		IsPaused:        *st.IsPaused,
	}, nil
}

func validateStoredTimer(st storedTimer, now time.Time) string {
	if st.StepID == nil || st.PracticeIndex == nil || st.EndTimestamp == nil || st.DurationSeconds == nil || st.IsPaused == nil {
		return "missing field"
	}
	if *st.StepID < 1 || *st.PracticeIndex < 0 {
		return fmt.Sprintf("bad practice reference %d/%d", *st.StepID, *st.PracticeIndex)
	}
	if *st.DurationSeconds <= 0 || *st.DurationSeconds > config.MaxPracticeSeconds {
		return fmt.Sprintf("duration %ds out of range", *st.DurationSeconds)
	}
	if *st.EndTimestamp <= now.UnixMilli() {
		return "end timestamp already past"
	}
	return ""
}

func (d *Database) SaveActiveTimer(ctx context.Context, desc models.ActiveTimerDescriptor) error {
	buf, err := json.Marshal(desc)
	if err != nil {
		return wrapTimerErr("save", err)
	}
	if err := d.SetSetting(ctx, KeyActiveTimer, string(buf)); err != nil {
		return wrapTimerErr("save", err)
	}
	return nil
}

func (d *Database) ClearActiveTimer(ctx context.Context) error {
	if err := d.DeleteSetting(ctx, KeyActiveTimer); err != nil {
		return wrapTimerErr("clear", err)
	}
	return nil
}
