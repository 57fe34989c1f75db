package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvaleckas/stepwise/internal/config"
	"github.com/nvaleckas/stepwise/internal/timer"
	"github.com/nvaleckas/stepwise/internal/util"
)

func (m MainModel) handleWindowSize(msg tea.WindowSizeMsg) MainModel {
	m.width, m.height = msg.Width, msg.Height
	m.dashboard.width, m.dashboard.height = msg.Width, msg.Height
	m.browser.width, m.browser.height = msg.Width, msg.Height
	m.settings.width, m.settings.height = msg.Width, msg.Height
	if m.width > 0 {
		target := config.TargetProgressWidth
		if m.width < config.CompactModeThreshold {
			target = m.width / 2
		}
		m.dashboard.progress.Width = util.Clamp(target, config.MinProgressWidth, config.TargetProgressWidth)
	}
	return m
}

// handleTick drives the countdown. The engine re-derives remaining time from
// its absolute deadline, so a late or missed tick costs nothing; completion
// side effects run inside Sync.
func (m MainModel) handleTick(TickMsg) (MainModel, tea.Cmd) {
	wasRunning := m.instance.Engine().State() == timer.StateRunning
	m.instance.Sync(m.app.Ctx)
	if wasRunning && m.instance.Engine().State() == timer.StateDone {
		m.dashboard.noteCompletion()
	}
	return m, tickCmd()
}

// handleReminderTick runs one scheduler pass. Evaluate never panics the
// loop; a failed evaluation is logged and retried on the next poll.
func (m MainModel) handleReminderTick(ReminderTickMsg) (MainModel, tea.Cmd) {
	m.app.Scheduler.Evaluate(m.app.Ctx)
	return m, reminderTickCmd()
}

// handleForeground folds backgrounded wall time into the countdown once.
func (m MainModel) handleForeground() (MainModel, tea.Cmd) {
	wasRunning := m.instance.Engine().State() == timer.StateRunning
	reclaimed := m.app.Reconciler.ExitBackground(m.app.Ctx)
	if wasRunning && m.instance.Engine().State() == timer.StateDone {
		m.dashboard.noteCompletion()
	} else if reclaimed > 0 {
		m.dashboard.message = fmt.Sprintf("%s passed while away", util.FormatClock(reclaimed))
	}
	return m, nil
}

func (m MainModel) handleSuspend() (MainModel, tea.Cmd) {
	m.app.Reconciler.EnterBackground()
	return m, tea.Suspend
}
