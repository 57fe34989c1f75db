// Package report assembles progress summaries from the store and renders
// them as styled text, PDF, or a JSON export.
package report

import (
	"context"
	"sort"
	"time"

	"github.com/nvaleckas/stepwise/internal/config"
	"github.com/nvaleckas/stepwise/internal/models"
	"github.com/nvaleckas/stepwise/internal/steps"
)

// Store is the slice of the settings store the report reads.
type Store interface {
	DailyState(ctx context.Context) (*models.DailyState, error)
	AllChecklists(ctx context.Context) (map[int][]bool, error)
	ReminderPrefs(ctx context.Context) models.ReminderPrefs
}

// Summary is a snapshot of program progress.
type Summary struct {
	GeneratedAt  time.Time
	CurrentStep  int
	CurrentLabel string
	StartDate    string
	DaysIn       int
	Marked       int
	FullSteps    int
	Steps        []StepSummary
	Prefs        models.ReminderPrefs
}

// StepSummary is one step's checklist tally.
type StepSummary struct {
	ID    int
	Title string
	Done  int
	Total int
}

// Label renders the step heading, with or without a title.
func (s StepSummary) Label() string {
	return models.Step{ID: s.ID, Title: s.Title}.Label()
}

// Complete reports whether every practice of the step is marked.
func (s StepSummary) Complete() bool {
	return s.Total > 0 && s.Done == s.Total
}

// Build reads the store once and tallies per-step completion. A program
// that was never started produces an empty summary rather than an error.
func Build(ctx context.Context, store Store, catalog *steps.Catalog, now time.Time) (*Summary, error) {
	s := &Summary{GeneratedAt: now}

	state, err := store.DailyState(ctx)
	if err != nil {
		return nil, err
	}
	if state != nil {
		s.CurrentStep = state.CurrentStepID
		s.StartDate = state.StartDate
		s.DaysIn = daysIn(state.StartDate, now)
		if step, err := catalog.Get(state.CurrentStepID); err == nil {
			s.CurrentLabel = step.Label()
		}
	}
	s.Prefs = store.ReminderPrefs(ctx)

	all, err := store.AllChecklists(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		step, err := catalog.Get(id)
		if err != nil {
			continue
		}
		entry := StepSummary{ID: id, Title: step.Title, Total: len(step.Practices)}
		for i, done := range all[id] {
			if done && i < entry.Total {
				entry.Done++
			}
		}
		s.Marked += entry.Done
		if entry.Total > 0 && entry.Done == entry.Total {
			s.FullSteps++
		}
		s.Steps = append(s.Steps, entry)
	}
	return s, nil
}

// daysIn counts calendar days since the start date, inclusive: the start
// day itself is day 1.
func daysIn(startDate string, now time.Time) int {
	start, err := time.ParseInLocation(config.DateFormat, startDate, now.Location())
	if err != nil {
		return 0
	}
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d/(24*time.Hour)) + 1
}
