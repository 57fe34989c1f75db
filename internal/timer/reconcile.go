package timer

import (
	"context"
	"time"

	"github.com/nvaleckas/stepwise/internal/clock"
	"github.com/nvaleckas/stepwise/internal/util"
)

// Reconciler folds wall time spent backgrounded (terminal blurred, process
// suspended) back into the running countdown. The engine derives remaining
// time from its absolute end instant, so the fold is a forced Sync; the
// reconciler's job is bookkeeping the background window and making sure it
// is consumed exactly once.
type Reconciler struct {
	coord   *Coordinator
	clk     clock.Clock
	entered time.Time
}

func NewReconciler(coord *Coordinator, clk clock.Clock) *Reconciler {
	return &Reconciler{coord: coord, clk: clk}
}

// EnterBackground records the instant the app lost the foreground, but only
// while a timer is actually running; paused and idle timers have nothing to
// reconcile. Repeated blur events keep the first recorded instant.
func (r *Reconciler) EnterBackground() {
	if !r.entered.IsZero() {
		return
	}
	in := r.coord.holder
	if in == nil || in.eng.State() != StateRunning {
		return
	}
	r.entered = r.clk.Now()
}

// ExitBackground consumes and clears the recorded instant, then forces a
// Sync so the backgrounded time lands in the countdown exactly once: a
// spurious second foreground event finds no recorded instant and changes
// nothing. A deadline that passed while backgrounded completes through the
// normal path, sound included, even though no tick ran in between. Returns
// the elapsed seconds that were reconciled.
func (r *Reconciler) ExitBackground(ctx context.Context) int {
	if r.entered.IsZero() {
		return 0
	}
	entered := r.entered
	r.entered = time.Time{}
	in := r.coord.holder
	if in == nil || in.eng.State() != StateRunning {
		return 0
	}
	elapsed := int(r.clk.Now().Sub(entered) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	in.Sync(ctx)
	if elapsed > 0 {
		util.Logf("timer: reconciled %ds spent in background", elapsed)
	}
	return elapsed
}
