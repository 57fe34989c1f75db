package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvaleckas/stepwise/internal/config"
	"github.com/nvaleckas/stepwise/internal/models"
	"github.com/nvaleckas/stepwise/internal/timer"
	"github.com/nvaleckas/stepwise/internal/util"
)

// DashboardModel shows today's step: instructions, the practice checklist,
// and the live countdown for whichever practice is running.
type DashboardModel struct {
	app      App
	instance *timer.Instance
	step     models.Step
	marks    []bool
	cursor   int
	message  string
	progress progress.Model
	width    int
	height   int
}

func NewDashboardModel(app App, instance *timer.Instance) DashboardModel {
	m := DashboardModel{
		app:      app,
		instance: instance,
		progress: progress.New(progress.WithDefaultGradient()),
	}
	m.progress.Width = config.TargetProgressWidth
	m.refresh()
	// A restored run pre-selects its own practice.
	if stepID, practiceIdx, ok := app.Coordinator.Active(); ok && stepID == m.step.ID {
		m.cursor = practiceIdx
		m.clampCursor()
	}
	return m
}

// refresh reloads today's step and its checklist from the store. Load
// failures surface on the status line and keep the previous data visible.
func (m *DashboardModel) refresh() {
	ctx := m.app.Ctx
	state, err := m.app.DB.DailyState(ctx)
	if err != nil {
		m.message = fmt.Sprintf("Could not load today's step: %v", err)
		return
	}
	stepID := config.FirstStep
	if state != nil {
		stepID = state.CurrentStepID
	}
	step, err := m.app.Catalog.Get(stepID)
	if err != nil {
		m.message = fmt.Sprintf("Could not load step %d: %v", stepID, err)
		return
	}
	m.step = step
	marks, err := m.app.DB.Checklist(ctx, step.ID, len(step.Practices))
	if err != nil {
		m.message = fmt.Sprintf("Could not load the checklist: %v", err)
		return
	}
	m.marks = marks
	m.clampCursor()
}

func (m *DashboardModel) noteCompletion() {
	m.message = "Practice complete."
	m.refresh()
}

func (m *DashboardModel) clampCursor() {
	if len(m.step.Practices) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = util.Clamp(m.cursor, 0, len(m.step.Practices)-1)
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeys(key)
	}
	return m, nil
}

func (m DashboardModel) handleKeys(msg tea.KeyMsg) (DashboardModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.step.Practices)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case " ":
		return m.toggleMark()
	case "enter":
		return m.startOrPause()
	case "r":
		return m.restart()
	case "s":
		return m.stopRun()
	}
	return m, nil
}

func (m DashboardModel) toggleMark() (DashboardModel, tea.Cmd) {
	if m.cursor >= len(m.marks) {
		return m, nil
	}
	done := !m.marks[m.cursor]
	err := m.app.DB.SetChecklistItem(m.app.Ctx, m.step.ID, len(m.step.Practices), m.cursor, done)
	if err != nil {
		m.message = fmt.Sprintf("Could not save the mark: %v", err)
		return m, nil
	}
	m.marks[m.cursor] = done
	m.message = ""
	return m, nil
}

// startOrPause is the enter key: pause/resume the selected practice when it
// is the one running, start it when the slot is free, and toggle the mark
// for untimed practices.
func (m DashboardModel) startOrPause() (DashboardModel, tea.Cmd) {
	eng := m.instance.Engine()
	if m.runningHere() {
		switch eng.State() {
		case timer.StateRunning:
			m.instance.Pause(m.app.Ctx)
			m.message = "Paused."
		case timer.StatePaused:
			m.instance.Resume(m.app.Ctx)
			m.message = ""
		}
		return m, nil
	}
	if m.slotBusy() {
		m.message = "Stop the running practice first."
		return m, nil
	}
	d := m.step.Duration(m.cursor)
	if d == 0 {
		return m.toggleMark()
	}
	if !m.instance.Start(m.app.Ctx, m.step.ID, m.cursor, d) {
		m.message = "Another practice timer is already running."
		return m, nil
	}
	m.message = ""
	return m, nil
}

func (m DashboardModel) restart() (DashboardModel, tea.Cmd) {
	if m.slotBusy() && !m.runningHere() {
		m.message = "Stop the running practice first."
		return m, nil
	}
	d := m.step.Duration(m.cursor)
	if d == 0 {
		return m, nil
	}
	if m.instance.ResetAndStart(m.app.Ctx, m.step.ID, m.cursor, d) {
		m.message = ""
	}
	return m, nil
}

func (m DashboardModel) stopRun() (DashboardModel, tea.Cmd) {
	if !m.slotBusy() {
		return m, nil
	}
	m.instance.Stop(m.app.Ctx)
	m.message = "Stopped."
	return m, nil
}

// runningHere reports whether the selected practice is the one holding the
// active run.
func (m DashboardModel) runningHere() bool {
	stepID, practiceIdx, ok := m.app.Coordinator.Active()
	return ok && m.instance.Holds() && stepID == m.step.ID && practiceIdx == m.cursor
}

// slotBusy reports whether any run, here or in another mount, holds the slot.
func (m DashboardModel) slotBusy() bool {
	_, _, ok := m.app.Coordinator.Active()
	return ok
}
