package steps

import (
	"errors"
	"testing"

	"github.com/nvaleckas/stepwise/internal/config"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return c
}

func TestLoad_CoversWholeProgram(t *testing.T) {
	c := loadTestCatalog(t)
	if c.MaxStep() != 365 {
		t.Fatalf("MaxStep = %d, want 365", c.MaxStep())
	}
	for _, id := range []int{1, 61, 182, 365} {
		step, err := c.Get(id)
		if err != nil {
			t.Fatalf("Get(%d) failed: %v", id, err)
		}
		if len(step.Practices) == 0 {
			t.Errorf("step %d has no practices", id)
		}
		if len(step.Practices) != len(step.Durations) {
			t.Errorf("step %d: %d practices vs %d durations", id, len(step.Practices), len(step.Durations))
		}
	}
}

func TestGet_TitleResolution(t *testing.T) {
	c := loadTestCatalog(t)
	tests := []struct {
		id    int
		title string
	}{
		{id: 1, title: "Arriving"},
		{id: 45, title: "Step 45"},
		{id: 365, title: "Completion"},
	}
	for _, tt := range tests {
		step, err := c.Get(tt.id)
		if err != nil {
			t.Fatalf("Get(%d) failed: %v", tt.id, err)
		}
		if step.Title != tt.title {
			t.Errorf("Get(%d).Title = %q, want %q", tt.id, step.Title, tt.title)
		}
	}
}

func TestGet_OutOfRange(t *testing.T) {
	c := loadTestCatalog(t)
	for _, id := range []int{0, -3, 366} {
		if _, err := c.Get(id); !errors.Is(err, ErrStepNotFound) {
			t.Errorf("Get(%d) err = %v, want ErrStepNotFound", id, err)
		}
	}
}

func TestGet_UntimedPractice(t *testing.T) {
	c := loadTestCatalog(t)
	step, err := c.Get(1)
	if err != nil {
		t.Fatalf("Get(1) failed: %v", err)
	}
	if got := step.Duration(0); got != 0 {
		t.Errorf("step 1 practice 0 duration = %d, want 0 (untimed)", got)
	}
	if got := step.Duration(1); got != 600 {
		t.Errorf("step 1 practice 1 duration = %d, want 600", got)
	}
	if got := step.Duration(99); got != 0 {
		t.Errorf("out-of-range practice duration = %d, want 0", got)
	}
}

func TestGet_HourlyFlagPerPhase(t *testing.T) {
	c := loadTestCatalog(t)
	tests := []struct {
		id     int
		hourly bool
	}{
		{id: 5, hourly: false},
		{id: 61, hourly: true},
		{id: 171, hourly: false},
		{id: 320, hourly: true},
	}
	for _, tt := range tests {
		step, err := c.Get(tt.id)
		if err != nil {
			t.Fatalf("Get(%d) failed: %v", tt.id, err)
		}
		if step.Hourly != tt.hourly {
			t.Errorf("Get(%d).Hourly = %v, want %v", tt.id, step.Hourly, tt.hourly)
		}
	}
}

func TestRange_SpansPhaseBoundary(t *testing.T) {
	c := loadTestCatalog(t)
	got := c.Range(29, 32)
	if len(got) != 4 {
		t.Fatalf("Range(29,32) returned %d steps, want 4", len(got))
	}
	if len(got[1].Practices) == len(got[2].Practices) {
		t.Errorf("expected practice structure to change between step 30 and 31")
	}
}

func TestRange_ClippedToProgram(t *testing.T) {
	c := loadTestCatalog(t)
	got := c.Range(360, 400)
	if len(got) != 6 {
		t.Fatalf("Range(360,400) returned %d steps, want 6", len(got))
	}
	if got[len(got)-1].ID != 365 {
		t.Errorf("last step = %d, want 365", got[len(got)-1].ID)
	}
}

func TestSearch(t *testing.T) {
	c := loadTestCatalog(t)
	hits := c.Search("ARRIV")
	if len(hits) == 0 || hits[0].ID != 1 {
		t.Fatalf("Search(ARRIV) = %v, want step 1 first", hits)
	}
	if got := c.Search(""); got != nil {
		t.Errorf("empty query returned %d hits, want none", len(got))
	}
	if got := c.Search("review"); len(got) == 0 {
		t.Errorf("Search(review) found nothing")
	}
}

func TestParse_MalformedDataDegrades(t *testing.T) {
	raw := []byte(`
max_step: 10
phases:
  - from: 1
    to: 3
  - from: 4
    to: 6
    practices:
      - { name: "Sit" }
      - { name: "Too long", duration: 7200 }
  - from: 9
    to: 7
    practices:
      - { name: "Never used", duration: 60 }
steps:
  - id: 99
    title: Out of program
`)
	c, err := parse(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	step, err := c.Get(2)
	if err != nil {
		t.Fatalf("Get(2) failed: %v", err)
	}
	if len(step.Practices) != 0 {
		t.Errorf("phase without practices yielded %d practices, want 0", len(step.Practices))
	}

	step, err = c.Get(5)
	if err != nil {
		t.Fatalf("Get(5) failed: %v", err)
	}
	if got := step.Duration(0); got != 0 {
		t.Errorf("missing duration = %d, want 0", got)
	}
	if got := step.Duration(1); got != 0 {
		t.Errorf("over-limit duration = %d, want 0", got)
	}

	// Inverted phase is dropped; step 8 falls through to a bare step.
	step, err = c.Get(8)
	if err != nil {
		t.Fatalf("Get(8) failed: %v", err)
	}
	if len(step.Practices) != 0 {
		t.Errorf("inverted phase leaked practices into step 8")
	}

	if hits := c.Search("out of program"); len(hits) != 0 {
		t.Errorf("override beyond max_step was not discarded")
	}
}

func TestParse_MissingMaxStepDefaults(t *testing.T) {
	c, err := parse([]byte("phases: []"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if c.MaxStep() != config.MaxStep {
		t.Errorf("MaxStep = %d, want config default %d", c.MaxStep(), config.MaxStep)
	}
}
