// Package tui is the terminal front end: a bubbletea program whose update
// loop doubles as the app's single event channel. Timer sync, background
// reconciliation, and the reminder poll all run as messages on this loop.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvaleckas/stepwise/internal/clock"
	"github.com/nvaleckas/stepwise/internal/database"
	"github.com/nvaleckas/stepwise/internal/reminder"
	"github.com/nvaleckas/stepwise/internal/steps"
	"github.com/nvaleckas/stepwise/internal/timer"
	"github.com/nvaleckas/stepwise/internal/util"
)

// SessionState defines the high-level mode of the application.
type SessionState int

const (
	StateDashboard SessionState = iota
	StateBrowser
	StateSettings
)

// App bundles the wired collaborators the TUI drives. Everything is
// injected; the package owns no globals beyond the theme.
type App struct {
	Ctx         context.Context
	DB          *database.Database
	Catalog     *steps.Catalog
	Coordinator *timer.Coordinator
	Scheduler   *reminder.Scheduler
	Reconciler  *timer.Reconciler
	Clock       clock.Clock
}

// MainModel is the root bubbletea model that switches between sub-models.
type MainModel struct {
	app       App
	state     SessionState
	instance  *timer.Instance
	dashboard DashboardModel
	browser   BrowserModel
	settings  SettingsModel
	width     int
	height    int
}

func NewMainModel(app App) MainModel {
	if name, ok := app.DB.GetSetting(app.Ctx, database.KeyTheme); ok {
		SetTheme(name)
	}
	instance := app.Coordinator.Register()
	if _, err := instance.Restore(app.Ctx); err != nil {
		util.LogError("restore timer", err)
	}
	m := MainModel{
		app:      app,
		state:    StateDashboard,
		instance: instance,
	}
	m.dashboard = NewDashboardModel(app, instance)
	return m
}

func (m MainModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(), reminderTickCmd(), textinput.Blink)
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.instance.Unmount()
			return m, tea.Quit
		case "ctrl+z":
			return m.handleSuspend()
		}
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil
	case TickMsg:
		return m.handleTick(msg)
	case ReminderTickMsg:
		return m.handleReminderTick(msg)
	case tea.BlurMsg:
		m.app.Reconciler.EnterBackground()
		return m, nil
	case tea.FocusMsg:
		return m.handleForeground()
	case tea.ResumeMsg:
		return m.handleForeground()
	}

	switch m.state {
	case StateBrowser:
		next, cmd, closed := m.browser.Update(msg)
		m.browser = next
		if closed {
			m.state = StateDashboard
			m.dashboard.refresh()
		}
		return m, cmd
	case StateSettings:
		next, cmd, closed := m.settings.Update(msg)
		m.settings = next
		if closed {
			m.state = StateDashboard
		}
		return m, cmd
	default:
		return m.updateDashboard(msg)
	}
}

// updateDashboard routes dashboard-mode input: mode switches are handled
// here, everything else belongs to the dashboard itself.
func (m MainModel) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q":
			m.instance.Unmount()
			return m, tea.Quit
		case "b":
			m.browser = NewBrowserModel(m.app)
			m.browser.width, m.browser.height = m.width, m.height
			m.state = StateBrowser
			return m, textinput.Blink
		case "o":
			m.settings = NewSettingsModel(m.app)
			m.settings.width, m.settings.height = m.width, m.height
			m.state = StateSettings
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.dashboard, cmd = m.dashboard.Update(msg)
	return m, cmd
}

func (m MainModel) View() string {
	switch m.state {
	case StateBrowser:
		return m.browser.View()
	case StateSettings:
		return m.settings.View()
	default:
		return m.dashboard.View()
	}
}
