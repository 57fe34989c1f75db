package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nvaleckas/stepwise/internal/clock"
	"github.com/nvaleckas/stepwise/internal/config"
	"github.com/nvaleckas/stepwise/internal/database"
	"github.com/nvaleckas/stepwise/internal/models"
	"github.com/nvaleckas/stepwise/internal/notify"
	"github.com/nvaleckas/stepwise/internal/reminder"
	"github.com/nvaleckas/stepwise/internal/report"
	"github.com/nvaleckas/stepwise/internal/steps"
	"github.com/nvaleckas/stepwise/internal/timer"
	"github.com/nvaleckas/stepwise/internal/tui"
	"github.com/nvaleckas/stepwise/internal/util"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "stepwise",
		Short:         "Daily practice companion",
		Version:       tui.VersionLabel(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(dataDir)
		},
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default: the XDG data dir)")

	root.AddCommand(newReportCmd(&dataDir))
	root.AddCommand(newStepsCmd())
	root.AddCommand(newResetCmd(&dataDir))
	root.AddCommand(newExportCmd(&dataDir))
	return root
}

// openStore opens (creating if needed) the settings store under dir, falling
// back to the platform data directory when no override is given.
func openStore(ctx context.Context, dir string) (*database.Database, error) {
	if dir == "" {
		dir = util.DataDir(config.AppName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return database.Open(ctx, filepath.Join(dir, config.DBFileName))
}

func loadStore(ctx context.Context, dir string) (*database.Database, *steps.Catalog, error) {
	db, err := openStore(ctx, dir)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := steps.Load()
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, catalog, nil
}

func runTUI(dataDir string) error {
	ctx := context.Background()

	// 1. Open the store and the step catalog.
	db, catalog, err := loadStore(ctx, dataDir)
	if err != nil {
		return err
	}
	defer db.Close()

	// 2. Wire the collaborators around one shared clock and notifier.
	clk := clock.System{}
	notifier := notify.NewDesktop()
	coord := timer.NewCoordinator(db, catalog, clk, notifier)
	app := tui.App{
		Ctx:         ctx,
		DB:          db,
		Catalog:     catalog,
		Coordinator: coord,
		Scheduler:   reminder.NewScheduler(db, catalog, notifier, clk),
		Reconciler:  timer.NewReconciler(coord, clk),
		Clock:       clk,
	}
	if err := initDailyState(ctx, db, clk); err != nil {
		return err
	}

	// One scheduler pass before the first render, so an overdue advancement
	// moves the step forward instead of waiting up to a minute for the poll.
	app.Scheduler.Evaluate(ctx)

	// 3. Start the program. Focus reporting feeds background reconciliation.
	p := tea.NewProgram(tui.NewMainModel(app), tea.WithReportFocus())
	_, err = p.Run()
	return err
}

// initDailyState seeds the program position on first run: step one, started
// today. Every later launch finds the state present and leaves it alone.
func initDailyState(ctx context.Context, db *database.Database, clk clock.Clock) error {
	state, err := db.DailyState(ctx)
	if err != nil {
		return err
	}
	if state != nil {
		return nil
	}
	today := clk.Now().Format(config.DateFormat)
	return db.SaveDailyState(ctx, models.DailyState{
		CurrentStepID:   config.FirstStep,
		StartDate:       today,
		LastAdvanceDate: today,
	})
}

func newReportCmd(dataDir *string) *cobra.Command {
	var pdfPath string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show progress across the program",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			db, catalog, err := loadStore(ctx, *dataDir)
			if err != nil {
				return err
			}
			defer db.Close()
			summary, err := report.Build(ctx, db, catalog, clock.System{}.Now())
			if err != nil {
				return err
			}
			if pdfPath != "" {
				if err := report.WritePDF(summary, pdfPath); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", pdfPath)
				return nil
			}
			styled := term.IsTerminal(int(os.Stdout.Fd()))
			return report.Render(cmd.OutOrStdout(), summary, styled)
		},
	}
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write the report as a PDF to this path")
	return cmd
}

func newStepsCmd() *cobra.Command {
	var stepRange string
	cmd := &cobra.Command{
		Use:   "steps [query]",
		Short: "Browse the step catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := steps.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if stepRange != "" {
				from, to, err := parseRange(stepRange)
				if err != nil {
					return err
				}
				printStepList(out, catalog.Range(from, to))
				return nil
			}
			if len(args) == 0 {
				printStepList(out, catalog.Range(config.FirstStep, catalog.MaxStep()))
				return nil
			}
			// A bare number shows that step in full; anything else searches
			// titles.
			if id, convErr := strconv.Atoi(strings.TrimSpace(args[0])); convErr == nil {
				step, err := catalog.Get(id)
				if err != nil {
					return err
				}
				printStepDetail(out, step)
				return nil
			}
			printStepList(out, catalog.Search(args[0]))
			return nil
		},
	}
	cmd.Flags().StringVar(&stepRange, "range", "", "inclusive step range, e.g. 10-20")
	return cmd
}

func newResetCmd(dataDir *string) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all progress",
		Long:  "Erase checklists, the running timer, and the step position. Reminder settings are kept.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Erase all progress? Reminder settings are kept. [y/N] ") {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			ctx := context.Background()
			db, err := openStore(ctx, *dataDir)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.ResetAll(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Progress erased.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")
	return cmd
}

func newExportCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write progress as JSON into the documents folder",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			db, catalog, err := loadStore(ctx, *dataDir)
			if err != nil {
				return err
			}
			defer db.Close()
			summary, err := report.Build(ctx, db, catalog, clock.System{}.Now())
			if err != nil {
				return err
			}
			path, err := report.ExportJSON(summary, tui.AppVersion)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}
}

func parseRange(s string) (int, int, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("range must look like 10-20")
	}
	from, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("range must look like 10-20")
	}
	to, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("range must look like 10-20")
	}
	if from > to {
		return 0, 0, fmt.Errorf("range start %d is past its end %d", from, to)
	}
	return from, to, nil
}

func printStepList(w io.Writer, list []models.Step) {
	if len(list) == 0 {
		_, _ = fmt.Fprintln(w, "No matching steps.")
		return
	}
	for _, st := range list {
		marker := ""
		if st.Hourly {
			marker = "  (hourly)"
		}
		_, _ = fmt.Fprintf(w, "%s%s\n", st.Label(), marker)
	}
}

func printStepDetail(w io.Writer, st models.Step) {
	_, _ = fmt.Fprintln(w, st.Label())
	if st.Hourly {
		_, _ = fmt.Fprintln(w, "Repeats hourly.")
	}
	if st.Instructions != "" {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, st.Instructions)
	}
	if len(st.Practices) > 0 {
		_, _ = fmt.Fprintln(w)
		for i, name := range st.Practices {
			if d := st.Duration(i); d > 0 {
				_, _ = fmt.Fprintf(w, "  - %s (%s)\n", name, util.FormatClock(d))
			} else {
				_, _ = fmt.Fprintf(w, "  - %s (manual)\n", name)
			}
		}
	}
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	_, _ = fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
