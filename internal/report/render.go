package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Render writes the summary as text. With styled set, section headers and
// the current step are colored for terminal output; otherwise the same
// layout comes out as plain text suitable for piping.
func Render(w io.Writer, s *Summary, styled bool) error {
	paint := func(st lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return st.Render(text)
	}

	var b strings.Builder
	b.WriteString(paint(titleStyle, "Stepwise progress report"))
	b.WriteString("\n")
	b.WriteString(paint(dimStyle, "Generated "+s.GeneratedAt.Format("2006-01-02 15:04")))
	b.WriteString("\n\n")

	if s.CurrentStep == 0 {
		b.WriteString("The program has not been started yet.\n")
	} else {
		fmt.Fprintf(&b, "Current step: %s\n", paint(currentStyle, s.CurrentLabel))
		fmt.Fprintf(&b, "Started:      %s (day %d)\n", s.StartDate, s.DaysIn)
	}
	fmt.Fprintf(&b, "Practices marked: %d", s.Marked)
	if s.FullSteps > 0 {
		fmt.Fprintf(&b, " (%d steps fully done)", s.FullSteps)
	}
	b.WriteString("\n\n")

	b.WriteString(paint(sectionStyle, "Checklists"))
	b.WriteString("\n")
	if len(s.Steps) == 0 {
		b.WriteString(paint(dimStyle, "  no practices marked yet"))
		b.WriteString("\n")
	}
	for _, st := range s.Steps {
		mark := "[ ]"
		if st.Complete() {
			mark = "[x]"
		}
		line := fmt.Sprintf("  %s %-40s %d/%d", mark, st.Label(), st.Done, st.Total)
		if st.ID == s.CurrentStep {
			line = paint(currentStyle, line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(paint(sectionStyle, "Reminders"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Hourly on every step: %s\n", onOff(s.Prefs.AlwaysHourly))
	fmt.Fprintf(&b, "  Quiet hours:          %s to %s\n", s.Prefs.SleepStart, s.Prefs.SleepEnd)
	fmt.Fprintf(&b, "  Practice reminder:    %s\n", onOff(s.Prefs.PracticeReminderEnabled))

	_, err := io.WriteString(w, b.String())
	return err
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
