package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/minhokang/schedbot/internal/core"
	"github.com/minhokang/schedbot/pkg/models"
)

// Dashboard panel indices.
const (
	panelToday = iota
	panelWeek
	panelBacklog
	panelCount
)

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	today    []models.Task
	overdue  []models.Task
	week     []models.Task
	backlog  []models.Task
	loadedAt time.Time

	// State.
	loading bool
	err     error
}

// dataLoadedMsg carries loaded data back to the model.
type dataLoadedMsg struct {
	today   []models.Task
	overdue []models.Task
	week    []models.Task
	backlog []models.Task
	err     error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	timedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	sourceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel() dashboardModel {
	return dashboardModel{
		activePanel: panelToday,
		loading:     true,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadDashboardData
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadDashboardData
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.today = msg.today
		m.overdue = msg.overdue
		m.week = msg.week
		m.backlog = msg.backlog
		m.loadedAt = time.Now()
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" Schedbot Dashboard ")
	help := helpStyle.Render("tab: switch panel | r: reload vault | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Scanning vault...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	todayPanel := m.renderTodayPanel()
	weekPanel := m.renderWeekPanel()
	backlogPanel := m.renderBacklogPanel()

	// Available width for panels after accounting for margins.
	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		// Horizontal layout: three columns.
		colWidth := availableWidth / 3
		todayPanel = m.applyPanelStyle(panelToday, todayPanel, colWidth-4)
		weekPanel = m.applyPanelStyle(panelWeek, weekPanel, colWidth-4)
		backlogPanel = m.applyPanelStyle(panelBacklog, backlogPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, todayPanel, weekPanel, backlogPanel)
	} else {
		// Vertical layout: stacked.
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		todayPanel = m.applyPanelStyle(panelToday, todayPanel, panelWidth)
		weekPanel = m.applyPanelStyle(panelWeek, weekPanel, panelWidth)
		backlogPanel = m.applyPanelStyle(panelBacklog, backlogPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, todayPanel, weekPanel, backlogPanel)
	}

	footer := dimStyle.Render(fmt.Sprintf("loaded %s", m.loadedAt.Format("15:04:05")))

	return fmt.Sprintf("%s\n\n%s\n\n%s  %s", title, body, help, footer)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

// taskLine renders a single task for terminal display. Timed tasks lead with
// their clock, completed tasks are struck through.
func taskLine(t models.Task) string {
	text := t.Text
	if t.Place != "" {
		text += " @ " + t.Place
	}
	if clock := t.DisplayTime(); clock != "" {
		text = timedStyle.Render(clock) + " " + text
	}
	if t.Completed {
		return doneStyle.Render(text)
	}
	return text
}

func sortForDisplay(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		ci, ti := out[i].SortKey()
		cj, tj := out[j].SortKey()
		if ci != cj {
			return ci < cj
		}
		return ti.Before(tj)
	})
	return out
}

func (m dashboardModel) renderTodayPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Today (%d)", len(m.today))))
	b.WriteString("\n")

	if len(m.overdue) > 0 {
		b.WriteString(overdueStyle.Render(fmt.Sprintf("  %d overdue", len(m.overdue))))
		b.WriteString("\n")
		for _, t := range sortForDisplay(m.overdue) {
			b.WriteString("    " + taskLine(t) + "\n")
		}
		b.WriteString("\n")
	}

	if len(m.today) == 0 {
		b.WriteString(dimStyle.Render("  Nothing scheduled today."))
		return b.String()
	}

	for _, t := range sortForDisplay(m.today) {
		b.WriteString("  " + taskLine(t) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m dashboardModel) renderWeekPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("This Week (%d)", len(m.week))))
	b.WriteString("\n")

	if len(m.week) == 0 {
		b.WriteString(dimStyle.Render("  Nothing due this week."))
		return b.String()
	}

	for _, t := range sortForDisplay(m.week) {
		day := ""
		if dt := t.PrimaryDT(); dt != nil {
			day = dimStyle.Render(dt.Format("Mon")) + " "
		}
		b.WriteString("  " + day + taskLine(t) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m dashboardModel) renderBacklogPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("All Incomplete (%d)", len(m.backlog))))
	b.WriteString("\n")

	if len(m.backlog) == 0 {
		b.WriteString(dimStyle.Render("  All done."))
		return b.String()
	}

	// Group by source file, alphabetically.
	bySource := make(map[string][]models.Task)
	for _, t := range m.backlog {
		bySource[t.Source] = append(bySource[t.Source], t)
	}
	sources := make([]string, 0, len(bySource))
	for s := range bySource {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	for _, s := range sources {
		b.WriteString(sourceStyle.Render(fmt.Sprintf("  %s (%d)", s, len(bySource[s]))))
		b.WriteString("\n")
		for _, t := range sortForDisplay(bySource[s]) {
			b.WriteString("    " + taskLine(t) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func loadDashboardData() tea.Msg {
	var result dataLoadedMsg

	if Scanner == nil {
		result.err = fmt.Errorf("vault scanner not initialized")
		return result
	}

	tasks, err := Scanner.ScanTasks()
	if err != nil {
		result.err = fmt.Errorf("scanning vault: %w", err)
		return result
	}

	queries := core.NewQueryEngine(nil)
	result.today = queries.TodayTasks(tasks, false)
	result.overdue = queries.OverdueTasks(tasks)
	result.week = queries.WeekTasks(tasks, false)
	result.backlog = queries.IncompleteTasks(tasks)
	return result
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI view of today, this week, and the backlog",
	Long: `Launch an interactive terminal dashboard showing today's tasks with
overdue items, the current week, and every incomplete task grouped by file.

Navigate between panels with Tab, reload the vault with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Scanner == nil {
			return fmt.Errorf("vault scanner not initialized")
		}
		p := tea.NewProgram(newDashboardModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
