// Package timer holds the countdown engine, the single-active-run
// coordinator, and the background reconciler. Everything here runs on the
// program's single event loop; nothing spawns goroutines or takes locks.
package timer

import (
	"time"

	"github.com/nvaleckas/stepwise/internal/clock"
	"github.com/nvaleckas/stepwise/internal/config"
)

// RunState is the engine's lifecycle position.
type RunState int

const (
	StateIdle RunState = iota
	StateRunning
	StatePaused
	StateDone
)

func (s RunState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateDone:
		return "done"
	default:
		return "idle"
	}
}

// Engine is a wall-clock countdown. It stores the absolute end instant and
// derives the remaining time from the clock on every Sync, so late, missed,
// or duplicated ticks cannot drift the count. The engine is passive: the
// caller drives it by invoking Sync at whatever cadence it renders at.
type Engine struct {
	clk clock.Clock

	state           RunState
	durationSeconds int
	endTime         time.Time
	pausedRemaining int
	lastRestart     time.Time
	completed       bool

	// OnTick fires from Sync while running, with the remaining whole seconds
	// and progress in [0,1]. OnComplete fires exactly once when the deadline
	// is reached. Both are optional.
	OnTick     func(timeLeft int, progress float64)
	OnComplete func()
}

func NewEngine(clk clock.Clock) *Engine {
	return &Engine{clk: clk}
}

// Start begins a countdown of durationSeconds. A non-positive duration falls
// back to the engine's previous duration; with no previous duration to fall
// back to, Start does nothing and reports false.
func (e *Engine) Start(durationSeconds int) bool {
	if durationSeconds <= 0 {
		if e.durationSeconds <= 0 {
			return false
		}
		durationSeconds = e.durationSeconds
	}
	e.begin(durationSeconds, e.clk.Now().Add(time.Duration(durationSeconds)*time.Second))
	return true
}

// ResetAndStart is the stop-then-start compound. Successive compound calls
// within the restart gate are rejected so a duplicated UI event cannot spin
// up two overlapping runs.
func (e *Engine) ResetAndStart(durationSeconds int) bool {
	if durationSeconds <= 0 || !e.gateRestart() {
		return false
	}
	e.begin(durationSeconds, e.clk.Now().Add(time.Duration(durationSeconds)*time.Second))
	return true
}

// ResumeFrom restarts the countdown with the given remaining seconds while
// keeping the original duration for progress. Subject to the same restart
// gate as ResetAndStart.
func (e *Engine) ResumeFrom(seconds int) bool {
	return e.resumeWithin(e.durationSeconds, seconds)
}

func (e *Engine) resumeWithin(durationSeconds, remainingSeconds int) bool {
	if remainingSeconds <= 0 || !e.gateRestart() {
		return false
	}
	if durationSeconds < remainingSeconds {
		durationSeconds = remainingSeconds
	}
	e.begin(durationSeconds, e.clk.Now().Add(time.Duration(remainingSeconds)*time.Second))
	return true
}

// Pause freezes the countdown, capturing the remaining whole seconds.
func (e *Engine) Pause() {
	if e.state != StateRunning {
		return
	}
	e.pausedRemaining = e.TimeLeft()
	e.state = StatePaused
}

// Resume computes a fresh end instant from the paused remainder. Rebasing on
// the clock rather than un-freezing the old end is what keeps a paused
// minute a full minute no matter how long the pause lasted.
func (e *Engine) Resume() {
	if e.state != StatePaused {
		return
	}
	e.endTime = e.clk.Now().Add(time.Duration(e.pausedRemaining) * time.Second)
	e.pausedRemaining = 0
	e.state = StateRunning
}

// Stop abandons the run. A tick already queued behind a Stop finds an idle
// engine and does nothing.
func (e *Engine) Stop() {
	e.state = StateIdle
	e.endTime = time.Time{}
	e.pausedRemaining = 0
}

// Sync re-derives the remaining time from the clock, firing OnTick or, when
// the deadline has passed, the one-shot OnComplete.
func (e *Engine) Sync() {
	if e.state != StateRunning {
		return
	}
	left := ceilSeconds(e.endTime.Sub(e.clk.Now()))
	if left <= 0 {
		e.complete()
		return
	}
	if e.OnTick != nil {
		e.OnTick(left, e.Progress())
	}
}

// TimeLeft reports the remaining whole seconds, rounded up so a run never
// shows 0 before it has actually finished.
func (e *Engine) TimeLeft() int {
	switch e.state {
	case StateRunning:
		return ceilSeconds(e.endTime.Sub(e.clk.Now()))
	case StatePaused:
		return e.pausedRemaining
	default:
		return 0
	}
}

// Progress reports completion in [0,1]. A zero duration reports 0.
func (e *Engine) Progress() float64 {
	if e.state == StateIdle || e.durationSeconds <= 0 {
		return 0
	}
	p := 1 - float64(e.TimeLeft())/float64(e.durationSeconds)
	return min(1, max(0, p))
}

func (e *Engine) State() RunState {
	return e.state
}

func (e *Engine) Duration() int {
	return e.durationSeconds
}

func (e *Engine) begin(durationSeconds int, end time.Time) {
	e.durationSeconds = durationSeconds
	e.endTime = end
	e.pausedRemaining = 0
	e.completed = false
	e.state = StateRunning
}

func (e *Engine) beginPaused(durationSeconds, remaining int) {
	e.durationSeconds = durationSeconds
	e.endTime = time.Time{}
	e.pausedRemaining = remaining
	e.completed = false
	e.state = StatePaused
}

func (e *Engine) complete() {
	if e.completed {
		return
	}
	e.completed = true
	e.state = StateDone
	if e.OnComplete != nil {
		e.OnComplete()
	}
}

func (e *Engine) gateRestart() bool {
	now := e.clk.Now()
	if !e.lastRestart.IsZero() && now.Sub(e.lastRestart) < config.RestartDebounce {
		return false
	}
	e.lastRestart = now
	return true
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
