package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nvaleckas/stepwise/internal/config"
	"github.com/nvaleckas/stepwise/internal/util"
)

type exportFile struct {
	App         string          `json:"app"`
	Version     string          `json:"version"`
	GeneratedAt string          `json:"generated_at"`
	CurrentStep int             `json:"current_step"`
	StartDate   string          `json:"start_date,omitempty"`
	DaysIn      int             `json:"days_in"`
	Marked      int             `json:"practices_marked"`
	FullSteps   int             `json:"steps_completed"`
	Steps       []exportStep    `json:"steps"`
	Reminders   exportReminders `json:"reminders"`
}

type exportStep struct {
	ID    int    `json:"id"`
	Title string `json:"title,omitempty"`
	Done  int    `json:"done"`
	Total int    `json:"total"`
}

type exportReminders struct {
	AlwaysHourly            bool   `json:"always_hourly"`
	SleepStart              string `json:"sleep_start"`
	SleepEnd                string `json:"sleep_end"`
	PracticeReminderEnabled bool   `json:"practice_reminder_enabled"`
}

// ExportJSON writes the summary to a timestamped file under the reports
// directory and returns the path.
func ExportJSON(s *Summary, version string) (string, error) {
	out := exportFile{
		App:         config.AppName,
		Version:     version,
		GeneratedAt: s.GeneratedAt.Format("2006-01-02 15:04:05"),
		CurrentStep: s.CurrentStep,
		StartDate:   s.StartDate,
		DaysIn:      s.DaysIn,
		Marked:      s.Marked,
		FullSteps:   s.FullSteps,
		Steps:       make([]exportStep, 0, len(s.Steps)),
		Reminders: exportReminders{
			AlwaysHourly:            s.Prefs.AlwaysHourly,
			SleepStart:              s.Prefs.SleepStart,
			SleepEnd:                s.Prefs.SleepEnd,
			PracticeReminderEnabled: s.Prefs.PracticeReminderEnabled,
		},
	}
	for _, st := range s.Steps {
		out.Steps = append(out.Steps, exportStep{ID: st.ID, Title: st.Title, Done: st.Done, Total: st.Total})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding export: %w", err)
	}

	dir := filepath.Join(util.ReportsDir(config.AppName), "exports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_export_%s.json", config.AppName, s.GeneratedAt.Format("20060102_150405")))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}
