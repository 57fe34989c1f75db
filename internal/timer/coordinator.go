package timer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nvaleckas/stepwise/internal/clock"
	"github.com/nvaleckas/stepwise/internal/config"
	"github.com/nvaleckas/stepwise/internal/database"
	"github.com/nvaleckas/stepwise/internal/models"
	"github.com/nvaleckas/stepwise/internal/notify"
	"github.com/nvaleckas/stepwise/internal/steps"
	"github.com/nvaleckas/stepwise/internal/util"
)

// Store is the slice of the settings store the coordinator persists through.
type Store interface {
	ActiveTimer(ctx context.Context, now time.Time) (*models.ActiveTimerDescriptor, error)
	SaveActiveTimer(ctx context.Context, desc models.ActiveTimerDescriptor) error
	ClearActiveTimer(ctx context.Context) error
	SetChecklistItem(ctx context.Context, stepID, practiceCount, idx int, done bool) error
	SetSetting(ctx context.Context, key, value string) error
}

// Coordinator enforces the one-running-practice rule. Views that can run a
// timer Register an Instance; whichever instance starts first owns the
// active slot until its run completes, is stopped, or the view unmounts.
// The coordinator also owns write-back: descriptors are persisted at
// transitions (start, pause, resume, stop, complete), never per tick.
type Coordinator struct {
	store    Store
	catalog  *steps.Catalog
	clk      clock.Clock
	notifier notify.Notifier

	holder *Instance
	run    activeRun
}

// activeRun is what the coordinator remembers about the practice behind the
// slot. It outlives the holder so a remount in the same process can resume
// a paused practice without a round trip to the store.
type activeRun struct {
	stepID          int
	practiceIndex   int
	durationSeconds int
}

func NewCoordinator(store Store, catalog *steps.Catalog, clk clock.Clock, notifier notify.Notifier) *Coordinator {
	return &Coordinator{store: store, catalog: catalog, clk: clk, notifier: notifier}
}

// Register hands out a fresh mount token with its own engine. A view
// registers once when it mounts and calls Unmount when it is torn down.
func (c *Coordinator) Register() *Instance {
	return &Instance{token: uuid.New(), coord: c, eng: NewEngine(c.clk)}
}

// Active reports the step and practice of the run currently holding the slot.
func (c *Coordinator) Active() (stepID, practiceIndex int, ok bool) {
	if c.holder == nil {
		return 0, 0, false
	}
	return c.run.stepID, c.run.practiceIndex, true
}

// Instance is one mounted view's handle on the coordinator. Start-class
// calls are gated on the active slot; everything else only acts when this
// instance is the holder.
type Instance struct {
	token uuid.UUID
	coord *Coordinator
	eng   *Engine
}

// Engine exposes the instance's countdown for rendering and callbacks.
func (in *Instance) Engine() *Engine {
	return in.eng
}

// Holds reports whether this instance owns the active slot.
func (in *Instance) Holds() bool {
	return in.coord.holder == in
}

// Start begins the given practice. When another mounted view already owns a
// run the call is rejected: nothing changes, no error is raised, one log
// line records the conflict.
func (in *Instance) Start(ctx context.Context, stepID, practiceIndex, durationSeconds int) bool {
	if !in.claim("start") {
		return false
	}
	if !in.eng.Start(durationSeconds) {
		return false
	}
	in.coord.beginRun(ctx, in, stepID, practiceIndex)
	return true
}

// ResetAndStart restarts the practice from its full duration, subject to the
// slot gate and the engine's restart gate.
func (in *Instance) ResetAndStart(ctx context.Context, stepID, practiceIndex, durationSeconds int) bool {
	if !in.claim("restart") {
		return false
	}
	if !in.eng.ResetAndStart(durationSeconds) {
		return false
	}
	in.coord.beginRun(ctx, in, stepID, practiceIndex)
	return true
}

// ResumeFrom continues the coordinator's last run with an explicit number of
// remaining seconds. The slot may have been freed in between (a paused
// practice whose view unmounted); the run context is retained for exactly
// this case.
func (in *Instance) ResumeFrom(ctx context.Context, seconds int) bool {
	if !in.claim("resume") {
		return false
	}
	run := in.coord.run
	if run.stepID == 0 {
		util.Logf("timer: resume-from with no run to continue")
		return false
	}
	if !in.eng.resumeWithin(run.durationSeconds, seconds) {
		return false
	}
	in.coord.beginRun(ctx, in, run.stepID, run.practiceIndex)
	return true
}

// Pause freezes the countdown without giving up the slot. The descriptor is
// rewritten with the frozen end and the paused flag so the remaining time
// survives a view switch or restart inside the window.
func (in *Instance) Pause(ctx context.Context) {
	if !in.Holds() || in.eng.State() != StateRunning {
		return
	}
	in.eng.Pause()
	c := in.coord
	frozenEnd := c.clk.Now().Add(time.Duration(in.eng.TimeLeft()) * time.Second)
	c.persist(ctx, frozenEnd, true)
}

// Resume continues a paused run from its captured remainder.
func (in *Instance) Resume(ctx context.Context) {
	if !in.Holds() || in.eng.State() != StatePaused {
		return
	}
	in.eng.Resume()
	in.coord.persist(ctx, in.eng.endTime, false)
	in.coord.markStarted(ctx)
}

// Stop abandons the run and frees the slot. The persisted descriptor is
// cleared; the practice keeps whatever checklist marks it already had.
func (in *Instance) Stop(ctx context.Context) {
	wasHolder := in.Holds()
	in.eng.Stop()
	if wasHolder {
		in.coord.release(ctx, true)
	}
}

// Unmount withdraws this instance. If it owns the slot the slot is freed so
// a later mount can take over; the persisted descriptor is left in place,
// which is what lets a running practice survive a view switch.
func (in *Instance) Unmount() {
	if in.Holds() {
		in.coord.holder = nil
	}
	in.eng.Stop()
}

// Sync drives the countdown and, when the deadline has been reached, runs
// the completion side effects: checklist mark, descriptor clear,
// notification with sound, slot release.
func (in *Instance) Sync(ctx context.Context) {
	if in.eng.State() != StateRunning {
		return
	}
	in.eng.Sync()
	if in.eng.State() == StateDone && in.Holds() {
		in.coord.finishRun(ctx)
	}
}

// Restore re-arms a persisted timer after program start or a view remount.
// The store has already validated the descriptor, so anything returned here
// is in range with a future end. Returns the descriptor the view should
// render, or nil when there is nothing to restore.
func (in *Instance) Restore(ctx context.Context) (*models.ActiveTimerDescriptor, error) {
	if !in.claim("restore") {
		return nil, nil
	}
	c := in.coord
	desc, err := c.store.ActiveTimer(ctx, c.clk.Now())
	if err != nil || desc == nil {
		return nil, err
	}
	end := time.UnixMilli(desc.EndTimestamp)
	if desc.IsPaused {
		in.eng.beginPaused(desc.DurationSeconds, ceilSeconds(end.Sub(c.clk.Now())))
	} else {
		in.eng.begin(desc.DurationSeconds, end)
	}
	c.holder = in
	c.run = activeRun{stepID: desc.StepID, practiceIndex: desc.PracticeIndex, durationSeconds: desc.DurationSeconds}
	return desc, nil
}

func (in *Instance) claim(op string) bool {
	c := in.coord
	if c.holder != nil && c.holder != in {
		util.Logf("timer: %s from %s rejected, slot held by %s", op, in.token, c.holder.token)
		return false
	}
	return true
}

func (c *Coordinator) beginRun(ctx context.Context, in *Instance, stepID, practiceIndex int) {
	c.holder = in
	c.run = activeRun{stepID: stepID, practiceIndex: practiceIndex, durationSeconds: in.eng.Duration()}
	c.persist(ctx, in.eng.endTime, false)
	c.markStarted(ctx)
}

func (c *Coordinator) persist(ctx context.Context, end time.Time, paused bool) {
	err := c.store.SaveActiveTimer(ctx, models.ActiveTimerDescriptor{
		StepID:          c.run.stepID,
		PracticeIndex:   c.run.practiceIndex,
		EndTimestamp:    end.UnixMilli(),
		DurationSeconds: c.run.durationSeconds,
		IsPaused:        paused,
	})
	if err != nil {
		util.LogError("persist active timer", err)
	}
}

func (c *Coordinator) markStarted(ctx context.Context) {
	today := c.clk.Now().Format(config.DateFormat)
	if err := c.store.SetSetting(ctx, database.KeyLastPracticeStartDate, today); err != nil {
		util.LogError("record practice start", err)
	}
}

func (c *Coordinator) release(ctx context.Context, clear bool) {
	c.holder = nil
	if clear {
		if err := c.store.ClearActiveTimer(ctx); err != nil {
			util.LogError("clear active timer", err)
		}
	}
}

func (c *Coordinator) finishRun(ctx context.Context) {
	run := c.run
	c.release(ctx, true)
	body := "Timer finished."
	if st, err := c.catalog.Get(run.stepID); err == nil {
		if err := c.store.SetChecklistItem(ctx, run.stepID, len(st.Practices), run.practiceIndex, true); err != nil {
			util.LogError("mark practice complete", err)
		}
		if run.practiceIndex >= 0 && run.practiceIndex < len(st.Practices) {
			body = st.Practices[run.practiceIndex]
		}
	} else {
		util.LogError("look up completed step", err)
	}
	c.notifier.Send("Practice complete", body, true)
}
