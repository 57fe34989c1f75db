// Package steps serves the read-only practice program: 365 numbered steps,
// each with instructions and a list of timed practice exercises. The catalog
// is compiled in; nothing at runtime mutates it.
package steps

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nvaleckas/stepwise/internal/config"
	"github.com/nvaleckas/stepwise/internal/models"
)

//go:embed steps.yaml
var rawCatalog []byte

// ErrStepNotFound is returned by Get for ids outside [1, MaxStep].
var ErrStepNotFound = fmt.Errorf("step not found")

type practiceSpec struct {
	Name     string `yaml:"name"`
	Duration int    `yaml:"duration"`
}

// phaseSpec describes a contiguous run of steps sharing the same practice
// structure. Individual steps inside a phase may still override title and
// instructions via stepSpec.
type phaseSpec struct {
	Name         string         `yaml:"name"`
	From         int            `yaml:"from"`
	To           int            `yaml:"to"`
	Hourly       bool           `yaml:"hourly"`
	Instructions string         `yaml:"instructions"`
	Practices    []practiceSpec `yaml:"practices"`
}

type stepSpec struct {
	ID           int    `yaml:"id"`
	Title        string `yaml:"title"`
	Instructions string `yaml:"instructions"`
}

type catalogSpec struct {
	MaxStep int         `yaml:"max_step"`
	Phases  []phaseSpec `yaml:"phases"`
	Steps   []stepSpec  `yaml:"steps"`
}

// Catalog resolves step ids to fully populated models.Step values.
type Catalog struct {
	maxStep   int
	phases    []phaseSpec
	overrides map[int]stepSpec
}

// Load parses the embedded program data.
func Load() (*Catalog, error) {
	return parse(rawCatalog)
}

func parse(data []byte) (*Catalog, error) {
	var spec catalogSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse step catalog: %w", err)
	}
	c := &Catalog{
		maxStep:   spec.MaxStep,
		overrides: make(map[int]stepSpec, len(spec.Steps)),
	}
	if c.maxStep <= 0 {
		c.maxStep = config.MaxStep
	}
	for _, p := range spec.Phases {
		if p.To < p.From || p.To < 1 || p.From > c.maxStep {
			continue
		}
		c.phases = append(c.phases, p)
	}
	sort.SliceStable(c.phases, func(i, j int) bool { return c.phases[i].From < c.phases[j].From })
	for _, s := range spec.Steps {
		if s.ID < 1 || s.ID > c.maxStep {
			continue
		}
		c.overrides[s.ID] = s
	}
	return c, nil
}

// MaxStep is the last step id of the program.
func (c *Catalog) MaxStep() int {
	return c.maxStep
}

// Get returns the step for id. A step whose phase data is incomplete still
// comes back usable: practices default to empty, durations are zero-filled to
// the practice count, untimed rather than broken.
func (c *Catalog) Get(id int) (models.Step, error) {
	if id < 1 || id > c.maxStep {
		return models.Step{}, fmt.Errorf("get step %d: %w", id, ErrStepNotFound)
	}
	step := models.Step{
		ID:        id,
		Title:     fmt.Sprintf("Step %d", id),
		Practices: []string{},
		Durations: []int{},
	}
	if phase, ok := c.phaseFor(id); ok {
		step.Hourly = phase.Hourly
		step.Instructions = phase.Instructions
		for _, p := range phase.Practices {
			name := p.Name
			if name == "" {
				name = fmt.Sprintf("Practice %d", len(step.Practices)+1)
			}
			d := p.Duration
			if d < 0 || d > config.MaxPracticeSeconds {
				d = 0
			}
			step.Practices = append(step.Practices, name)
			step.Durations = append(step.Durations, d)
		}
	}
	if ov, ok := c.overrides[id]; ok {
		if ov.Title != "" {
			step.Title = ov.Title
		}
		if ov.Instructions != "" {
			step.Instructions = ov.Instructions
		}
	}
	return step, nil
}

// Range returns steps from..to inclusive, clipped to the program bounds.
func (c *Catalog) Range(from, to int) []models.Step {
	if from < 1 {
		from = 1
	}
	if to > c.maxStep {
		to = c.maxStep
	}
	var out []models.Step
	for id := from; id <= to; id++ {
		step, err := c.Get(id)
		if err != nil {
			continue
		}
		out = append(out, step)
	}
	return out
}

// Search returns steps whose title contains query, case-insensitive. An empty
// query matches nothing.
func (c *Catalog) Search(query string) []models.Step {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var out []models.Step
	for id := 1; id <= c.maxStep; id++ {
		step, err := c.Get(id)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(step.Title), query) {
			out = append(out, step)
		}
	}
	return out
}

func (c *Catalog) phaseFor(id int) (phaseSpec, bool) {
	for _, p := range c.phases {
		if id >= p.From && id <= p.To {
			return p, true
		}
	}
	return phaseSpec{}, false
}
