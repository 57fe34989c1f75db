package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/nvaleckas/stepwise/internal/config"
	"github.com/nvaleckas/stepwise/internal/timer"
	"github.com/nvaleckas/stepwise/internal/util"
)

func truncateLabel(text string, max int) string {
	if max <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= max {
		return text
	}
	return ansi.Truncate(text, max, config.TruncationSuffix)
}

// padLabel right-pads to a display width, unicode-aware.
func padLabel(text string, width int) string {
	gap := width - ansi.StringWidth(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}

func (m DashboardModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(CurrentTheme.Header.Render(m.step.Label()))
	b.WriteString("\n")
	b.WriteString(CurrentTheme.Dim.Render(fmt.Sprintf("Step %d of %d  |  %s",
		m.step.ID, m.app.Catalog.MaxStep(), m.app.Clock.Now().Format(config.DateFormat))))
	b.WriteString("\n\n")

	if m.step.Instructions != "" {
		wrap := config.BodyWrapWidth
		if m.width-4 < wrap {
			wrap = m.width - 4
		}
		b.WriteString(CurrentTheme.Practice.Width(wrap).Render(m.step.Instructions))
		b.WriteString("\n\n")
	}

	b.WriteString(CurrentTheme.Highlight.Render("Practices"))
	b.WriteString("\n")
	if len(m.step.Practices) == 0 {
		b.WriteString(CurrentTheme.Dim.Render("  (this step has no listed practices)"))
		b.WriteString("\n")
	}
	nameWidth := 0
	for _, p := range m.step.Practices {
		if w := ansi.StringWidth(p); w > nameWidth {
			nameWidth = w
		}
	}
	for i, p := range m.step.Practices {
		cursor := "  "
		if i == m.cursor {
			cursor = CurrentTheme.Focused.Render("> ")
		}
		mark := "[ ]"
		done := i < len(m.marks) && m.marks[i]
		if done {
			mark = "[x]"
		}
		dur := "manual"
		if d := m.step.Duration(i); d > 0 {
			dur = util.FormatClock(d)
		}
		row := fmt.Sprintf("%s %s  %6s", mark, padLabel(p, nameWidth), dur)
		style := CurrentTheme.Practice
		if done {
			style = CurrentTheme.DonePractice
		}
		if i == m.cursor {
			style = CurrentTheme.Focused
		}
		b.WriteString(cursor + style.Render(truncateLabel(row, m.width-2)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.timerLine())
	b.WriteString("\n")

	if m.message != "" {
		b.WriteString(CurrentTheme.Highlight.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	help := "[j/k] select  [space] mark  [enter] start/pause  [r] restart  [s] stop  [b] steps  [o] settings  [q] quit"
	b.WriteString(CurrentTheme.Dim.Render(truncateLabel(help, m.width-2)))

	return CurrentTheme.Base.Render(b.String())
}

// timerLine renders the countdown strip: bar and remaining time while
// running, the frozen remainder while paused, a hint otherwise.
func (m DashboardModel) timerLine() string {
	eng := m.instance.Engine()
	var content string
	var style lipgloss.Style

	switch eng.State() {
	case timer.StateRunning:
		bar := m.progress.ViewAs(eng.Progress())
		content = fmt.Sprintf("%s  %s  %s remaining", m.activePracticeName(), bar, util.FormatClock(eng.TimeLeft()))
		style = CurrentTheme.Timer
	case timer.StatePaused:
		content = fmt.Sprintf("PAUSED  %s  %s remaining  [enter] resumes", m.activePracticeName(), util.FormatClock(eng.TimeLeft()))
		style = CurrentTheme.Paused
	default:
		content = "[enter] starts the selected practice"
		style = CurrentTheme.Dim
	}
	content = fmt.Sprintf("%s  |  v%s", content, AppVersion)
	return style.Render(truncateLabel(content, m.width-2))
}

// activePracticeName names the practice behind the running countdown, which
// is not necessarily the one under the cursor.
func (m DashboardModel) activePracticeName() string {
	stepID, practiceIdx, ok := m.app.Coordinator.Active()
	if !ok {
		return "Practice"
	}
	step := m.step
	if stepID != m.step.ID {
		got, err := m.app.Catalog.Get(stepID)
		if err != nil {
			return "Practice"
		}
		step = got
	}
	if practiceIdx < 0 || practiceIdx >= len(step.Practices) {
		return "Practice"
	}
	return truncateLabel(step.Practices[practiceIdx], 30)
}
