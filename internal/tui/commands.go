package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvaleckas/stepwise/internal/config"
)

// --- Messages ---

// TickMsg drives the countdown display.
type TickMsg time.Time

// ReminderTickMsg drives the reminder scheduler poll.
type ReminderTickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(config.TickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func reminderTickCmd() tea.Cmd {
	return tea.Tick(config.ReminderPoll, func(t time.Time) tea.Msg { return ReminderTickMsg(t) })
}
