package database

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func TestConcurrentSettingWrites(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("probe_%d", i%3)
			if err := db.SetSetting(ctx, key, fmt.Sprintf("value %d", i)); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent write failed: %v", err)
	}
	if _, ok := db.GetSetting(ctx, "probe_0"); !ok {
		t.Fatalf("expected probe_0 to survive concurrent writes")
	}
}

func TestConcurrentChecklistWrites(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)

	// One step per goroutine; marks on the same step go through a
	// read-modify-write and are not safe to race.
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(step int) {
			defer wg.Done()
			if err := db.SetChecklistItem(ctx, step, 4, step%4, true); err != nil {
				errs <- err
			}
		}(i + 1)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent checklist write failed: %v", err)
	}
	all, err := db.AllChecklists(ctx)
	if err != nil {
		t.Fatalf("AllChecklists failed: %v", err)
	}
	if len(all) != 8 {
		t.Fatalf("expected 8 checklists, got %d", len(all))
	}
}
