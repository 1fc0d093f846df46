package core

import (
	"fmt"
	"strings"

	"time"

	"github.com/minhokang/schedbot/pkg/models"
)

// ReportBuilder composes a scanned task collection into the three rendered
// report shapes the bot delivers. Builders are pure: same tasks and clock,
// same output.
type ReportBuilder interface {
	Daily(tasks []models.Task, includeCompleted bool) string
	Weekly(tasks []models.Task, includeCompleted bool) string
	Backlog(tasks []models.Task) string
}

type reportBuilder struct {
	now     func() time.Time
	queries QueryEngine
}

// NewReportBuilder creates a ReportBuilder using the given clock. Passing
// nil uses the real wall clock.
func NewReportBuilder(now func() time.Time) ReportBuilder {
	if now == nil {
		now = time.Now
	}
	return &reportBuilder{now: now, queries: NewQueryEngine(now)}
}

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Daily renders the daily report: a date/time header, an Overdue section
// when any task is overdue, and the Today section in sort-key order.
func (b *reportBuilder) Daily(tasks []models.Task, includeCompleted bool) string {
	now := b.now()
	td := midnightOf(now)
	overdue := b.queries.OverdueTasks(tasks)
	today := b.queries.TodayTasks(tasks, includeCompleted)

	lines := []string{fmt.Sprintf("<b>%s</b> | %s\n", td.Format("2006.01.02"), now.Format("15:04"))}

	if len(overdue) > 0 {
		lines = append(lines,
			fmt.Sprintf("<b>Overdue</b> (%d)", len(overdue)),
			FormatOverdue(overdue),
			"")
	}

	header := "<b>Today</b>"
	if len(today) > 0 {
		header = fmt.Sprintf("<b>Today</b> (%d)", len(today))
	}
	lines = append(lines, header, FormatTasks(today, true))
	return strings.Join(lines, "\n")
}

// Weekly renders the weekly report: the Monday-to-Sunday range header and one
// subsection per day in fixed order, empty days shown with a placeholder.
func (b *reportBuilder) Weekly(tasks []models.Task, includeCompleted bool) string {
	now := b.now()
	td := midnightOf(now)
	weekStart := weekStartOf(now)
	weekEnd := weekStart.AddDate(0, 0, 6) // Sunday, inclusive for display

	weekTasks := b.queries.WeekTasks(tasks, includeCompleted)

	byDate := make(map[dateKey][]models.Task)
	for _, t := range weekTasks {
		if dt := t.PrimaryDT(); dt != nil {
			byDate[dateKeyOf(dt)] = append(byDate[dateKeyOf(dt)], t)
		}
	}

	lines := []string{
		"<b>This Week</b>",
		fmt.Sprintf("%s - %s\n", weekStart.Format("01/02"), weekEnd.Format("01/02")),
	}

	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		marker := ""
		if day.Equal(td) {
			marker = " (today)"
		}
		lines = append(lines, fmt.Sprintf("<b>%s %s</b>%s", day.Format("01/02"), weekdayLabels[i], marker))

		dayTasks := byDate[dateKeyOf(&day)]
		if len(dayTasks) == 0 {
			lines = append(lines, "  -")
		} else {
			for _, t := range sortTasks(dayTasks) {
				lines = append(lines, FormatTask(t, true, "  "))
			}
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// Backlog renders the full-incomplete report: a count header, then one
// subsection per source document sorted alphabetically, tasks grouped by
// calendar date ascending with the no-date group last.
func (b *reportBuilder) Backlog(tasks []models.Task) string {
	incomplete := b.queries.IncompleteTasks(tasks)

	lines := []string{"<b>All Incomplete</b>", fmt.Sprintf("total %d\n", len(incomplete))}

	if len(incomplete) == 0 {
		lines = append(lines, "  all done")
		return strings.Join(lines, "\n")
	}

	bySource, sources := groupBySourceDate(incomplete)
	for _, src := range sources {
		total := 0
		for _, group := range bySource[src] {
			total += len(group)
		}
		lines = append(lines, fmt.Sprintf("<b>%s</b> (%d)", EscapeHTML(src), total))

		for _, key := range sortedDateKeys(bySource[src]) {
			lines = append(lines, fmt.Sprintf("  %s", key.label()))
			for _, t := range sortTasks(bySource[src][key]) {
				lines = append(lines, FormatTask(t, false, "    "))
			}
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
