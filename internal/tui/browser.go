package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvaleckas/stepwise/internal/config"
	"github.com/nvaleckas/stepwise/internal/models"
	"github.com/nvaleckas/stepwise/internal/util"
)

// BrowserModel is the step browser: search over the catalog, a detail view,
// and the override that makes any step today's step.
type BrowserModel struct {
	app     App
	input   textinput.Model
	results []models.Step
	cursor  int
	scroll  int
	detail  *models.Step
	message string
	width   int
	height  int
}

func NewBrowserModel(app App) BrowserModel {
	ti := textinput.New()
	ti.Placeholder = "Search steps..."
	ti.Width = config.SearchInputWidth
	ti.Focus()
	return BrowserModel{app: app, input: ti}
}

// Update handles browser input. The returned bool closes the browser.
func (m BrowserModel) Update(msg tea.Msg) (BrowserModel, tea.Cmd, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, false
	}
	if m.detail != nil {
		return m.updateDetail(key)
	}
	return m.updateList(key)
}

func (m BrowserModel) updateDetail(key tea.KeyMsg) (BrowserModel, tea.Cmd, bool) {
	switch key.String() {
	case "esc":
		m.detail = nil
	case "t":
		m.setToday(*m.detail)
	}
	return m, nil, false
}

func (m BrowserModel) updateList(key tea.KeyMsg) (BrowserModel, tea.Cmd, bool) {
	switch key.String() {
	case "esc":
		return m, nil, true
	case "enter":
		if m.cursor < len(m.results) {
			chosen := m.results[m.cursor]
			m.detail = &chosen
		}
		return m, nil, false
	case "up":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.scroll {
				m.scroll = m.cursor
			}
		}
		return m, nil, false
	case "down":
		if m.cursor < len(m.results)-1 {
			m.cursor++
			if m.cursor >= m.scroll+config.MaxVisibleResults {
				m.scroll = m.cursor - config.MaxVisibleResults + 1
			}
		}
		return m, nil, false
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	m.search()
	return m, cmd, false
}

// search recomputes matches for the current query. A numeric query that is a
// valid step id jumps straight to that step, ahead of any title matches.
func (m *BrowserModel) search() {
	m.results = nil
	m.cursor, m.scroll = 0, 0
	q := strings.TrimSpace(m.input.Value())
	if q == "" {
		return
	}
	if id, err := strconv.Atoi(q); err == nil {
		if st, err := m.app.Catalog.Get(id); err == nil {
			m.results = append(m.results, st)
		}
	}
	for _, st := range m.app.Catalog.Search(q) {
		if len(m.results) > 0 && m.results[0].ID == st.ID {
			continue
		}
		m.results = append(m.results, st)
	}
}

// setToday rewrites the daily state so the chosen step is current. The
// last-advance date moves to today, so the overnight advancement counts
// from the override rather than skipping past it at 03:00.
func (m *BrowserModel) setToday(step models.Step) {
	ctx := m.app.Ctx
	today := m.app.Clock.Now().Format(config.DateFormat)
	state, err := m.app.DB.DailyState(ctx)
	if err != nil {
		m.message = fmt.Sprintf("Could not load daily state: %v", err)
		return
	}
	if state == nil {
		state = &models.DailyState{CurrentStepID: step.ID, StartDate: today, LastAdvanceDate: today}
	} else {
		state.CurrentStepID = step.ID
		state.LastAdvanceDate = today
	}
	if err := m.app.DB.SaveDailyState(ctx, *state); err != nil {
		m.message = fmt.Sprintf("Could not save daily state: %v", err)
		return
	}
	m.message = fmt.Sprintf("%s is now today's step.", step.Label())
}

func (m BrowserModel) View() string {
	if m.detail != nil {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m BrowserModel) viewList() string {
	var b strings.Builder
	b.WriteString(CurrentTheme.Header.Render("Step browser"))
	b.WriteString("\n\n")
	b.WriteString(CurrentTheme.Input.Render(m.input.View()))
	b.WriteString("\n\n")

	if len(m.results) == 0 {
		hint := "Type a step number or part of a title."
		if strings.TrimSpace(m.input.Value()) != "" {
			hint = "No matching steps."
		}
		b.WriteString(CurrentTheme.Dim.Render(hint))
		b.WriteString("\n")
	}
	end := m.scroll + config.MaxVisibleResults
	if end > len(m.results) {
		end = len(m.results)
	}
	for i := m.scroll; i < end; i++ {
		st := m.results[i]
		row := st.Label()
		if st.Hourly {
			row += "  (hourly)"
		}
		if i == m.cursor {
			b.WriteString(CurrentTheme.Focused.Render("> " + truncateLabel(row, m.width-4)))
		} else {
			b.WriteString("  " + CurrentTheme.Practice.Render(truncateLabel(row, m.width-4)))
		}
		b.WriteString("\n")
	}
	if len(m.results) > config.MaxVisibleResults {
		b.WriteString(CurrentTheme.Dim.Render(fmt.Sprintf("  %d of %d", m.cursor+1, len(m.results))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(CurrentTheme.Highlight.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString(CurrentTheme.Dim.Render(truncateLabel("[enter] view step  [esc] back", m.width-2)))
	return CurrentTheme.Base.Render(b.String())
}

func (m BrowserModel) viewDetail() string {
	st := *m.detail
	var b strings.Builder
	b.WriteString(CurrentTheme.Header.Render(st.Label()))
	if st.Hourly {
		b.WriteString(CurrentTheme.Paused.Render("  hourly"))
	}
	b.WriteString("\n\n")
	if st.Instructions != "" {
		wrap := config.BodyWrapWidth
		if m.width-4 < wrap {
			wrap = m.width - 4
		}
		b.WriteString(CurrentTheme.Practice.Width(wrap).Render(st.Instructions))
		b.WriteString("\n\n")
	}
	for i, p := range st.Practices {
		dur := "manual"
		if d := st.Duration(i); d > 0 {
			dur = util.FormatClock(d)
		}
		b.WriteString(CurrentTheme.Practice.Render(fmt.Sprintf("  - %s (%s)", p, dur)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(CurrentTheme.Highlight.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString(CurrentTheme.Dim.Render(truncateLabel("[t] set as today's step  [esc] back", m.width-2)))
	return CurrentTheme.Base.Render(b.String())
}
