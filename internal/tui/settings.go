package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvaleckas/stepwise/internal/config"
	"github.com/nvaleckas/stepwise/internal/database"
	"github.com/nvaleckas/stepwise/internal/models"
	"github.com/nvaleckas/stepwise/internal/reminder"
)

const (
	settingHourly = iota
	settingSleepStart
	settingSleepEnd
	settingPracticeReminder
	settingTheme
	settingCount
)

// SettingsModel edits reminder preferences and the theme. Every change is
// persisted as it is made; esc just leaves.
type SettingsModel struct {
	app       App
	prefs     models.ReminderPrefs
	themeName string
	cursor    int
	editing   bool
	input     textinput.Model
	message   string
	width     int
	height    int
}

func NewSettingsModel(app App) SettingsModel {
	ti := textinput.New()
	ti.CharLimit = config.ClockInputLimit
	ti.Width = 8
	m := SettingsModel{
		app:       app,
		prefs:     app.DB.ReminderPrefs(app.Ctx),
		themeName: "default",
		input:     ti,
	}
	if name, ok := app.DB.GetSetting(app.Ctx, database.KeyTheme); ok {
		if _, known := Themes[name]; known {
			m.themeName = name
		}
	}
	return m
}

// Update handles settings input. The returned bool closes the screen.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, false
	}
	if m.editing {
		return m.updateEditing(key)
	}
	switch key.String() {
	case "esc":
		return m, nil, true
	case "j", "down":
		if m.cursor < settingCount-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case " ", "enter":
		return m.activate(key.String())
	}
	return m, nil, false
}

func (m SettingsModel) activate(key string) (SettingsModel, tea.Cmd, bool) {
	switch m.cursor {
	case settingHourly:
		m.prefs.AlwaysHourly = !m.prefs.AlwaysHourly
		m.savePrefs()
	case settingPracticeReminder:
		m.prefs.PracticeReminderEnabled = !m.prefs.PracticeReminderEnabled
		m.savePrefs()
	case settingTheme:
		m.cycleTheme()
	case settingSleepStart, settingSleepEnd:
		if key != "enter" {
			return m, nil, false
		}
		current := m.prefs.SleepStart
		if m.cursor == settingSleepEnd {
			current = m.prefs.SleepEnd
		}
		m.editing = true
		m.message = ""
		m.input.SetValue(current)
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink, false
	}
	return m, nil, false
}

func (m SettingsModel) updateEditing(key tea.KeyMsg) (SettingsModel, tea.Cmd, bool) {
	switch key.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil, false
	case "enter":
		minutes, err := reminder.ParseClock(strings.TrimSpace(m.input.Value()))
		if err != nil {
			m.message = "Use HH:MM, 24-hour."
			return m, nil, false
		}
		value := fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
		if m.cursor == settingSleepStart {
			m.prefs.SleepStart = value
		} else {
			m.prefs.SleepEnd = value
		}
		m.editing = false
		m.input.Blur()
		m.savePrefs()
		return m, nil, false
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd, false
}

func (m *SettingsModel) savePrefs() {
	if err := m.app.DB.SaveReminderPrefs(m.app.Ctx, m.prefs); err != nil {
		m.message = fmt.Sprintf("Could not save: %v", err)
		return
	}
	m.message = "Saved."
}

func (m *SettingsModel) cycleTheme() {
	next := ThemeOrder[0]
	for i, name := range ThemeOrder {
		if name == m.themeName {
			next = ThemeOrder[(i+1)%len(ThemeOrder)]
			break
		}
	}
	m.themeName = next
	SetTheme(next)
	if err := m.app.DB.SetSetting(m.app.Ctx, database.KeyTheme, next); err != nil {
		m.message = fmt.Sprintf("Could not save: %v", err)
		return
	}
	m.message = "Saved."
}

func (m SettingsModel) View() string {
	var b strings.Builder
	b.WriteString(CurrentTheme.Header.Render("Settings"))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Hourly reminder on every step", onOffLabel(m.prefs.AlwaysHourly)},
		{"Quiet hours begin", m.prefs.SleepStart},
		{"Quiet hours end", m.prefs.SleepEnd},
		{"Practice reminder", onOffLabel(m.prefs.PracticeReminderEnabled)},
		{"Theme", Themes[m.themeName].Name},
	}
	for i, row := range rows {
		cursor := "  "
		if i == m.cursor {
			cursor = CurrentTheme.Focused.Render("> ")
		}
		value := row.value
		if m.editing && i == m.cursor {
			value = m.input.View()
		}
		line := fmt.Sprintf("%s  %s", padLabel(row.label, 30), value)
		style := CurrentTheme.Practice
		if i == m.cursor {
			style = CurrentTheme.Focused
		}
		b.WriteString(cursor + style.Render(truncateLabel(line, m.width-4)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(CurrentTheme.Dim.Render(fmt.Sprintf("Reminders stay silent from %s to %s.", m.prefs.SleepStart, m.prefs.SleepEnd)))
	b.WriteString("\n\n")
	if m.message != "" {
		b.WriteString(CurrentTheme.Highlight.Render(m.message))
		b.WriteString("\n")
	}
	help := "[j/k] select  [space] toggle  [enter] edit  [esc] back"
	if m.editing {
		help = "[enter] save  [esc] cancel"
	}
	b.WriteString(CurrentTheme.Dim.Render(truncateLabel(help, m.width-2)))
	return CurrentTheme.Base.Render(b.String())
}

func onOffLabel(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
