package core

import (
	"time"

	"github.com/minhokang/schedbot/pkg/models"
)

// DateField selects which of a task's three timestamps a filter tests.
type DateField string

const (
	FieldDue       DateField = "due"
	FieldScheduled DateField = "scheduled"
	FieldStart     DateField = "start"
)

// Window is a half-open date range [Start, End) used to select tasks for a
// report period.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether dt falls inside the window. The end boundary is
// exclusive.
func (w Window) Contains(dt time.Time) bool {
	return !dt.Before(w.Start) && dt.Before(w.End)
}

// TaskFilter describes one invocation of the filter primitive.
type TaskFilter struct {
	IncludeCompleted bool
	Window           *Window
	Field            DateField
	Overdue          bool
}

// QueryEngine narrows a scanned task collection into the time-oriented
// subsets the reports are built from. All queries are pure: they share no
// state beyond the injected clock and never mutate their input.
type QueryEngine interface {
	Filter(tasks []models.Task, f TaskFilter) []models.Task
	TodayTasks(tasks []models.Task, includeCompleted bool) []models.Task
	WeekTasks(tasks []models.Task, includeCompleted bool) []models.Task
	OverdueTasks(tasks []models.Task) []models.Task
	IncompleteTasks(tasks []models.Task) []models.Task
}

type queryEngine struct {
	now func() time.Time
}

// NewQueryEngine creates a QueryEngine using the given clock. Passing nil
// uses the real wall clock. "Today" is re-evaluated on every call, never
// cached across a response.
func NewQueryEngine(now func() time.Time) QueryEngine {
	if now == nil {
		now = time.Now
	}
	return &queryEngine{now: now}
}

// midnightOf truncates t to the start of its calendar day.
func midnightOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekStartOf returns Monday 00:00 of the week containing t.
func weekStartOf(t time.Time) time.Time {
	td := midnightOf(t)
	offset := (int(td.Weekday()) + 6) % 7
	return td.AddDate(0, 0, -offset)
}

// dateField returns the requested timestamp of a task, or nil when absent.
func dateField(t models.Task, field DateField) *time.Time {
	switch field {
	case FieldDue:
		return t.Due
	case FieldScheduled:
		return t.Scheduled
	case FieldStart:
		return t.Start
	}
	return nil
}

// Filter applies the generic selection primitive: completed tasks are
// excluded unless requested, tasks without the selected date field are always
// excluded, overdue keeps only dates strictly before today's midnight (today
// itself is not overdue), and a window keeps only dates inside [start, end).
func (e *queryEngine) Filter(tasks []models.Task, f TaskFilter) []models.Task {
	td := midnightOf(e.now())
	var result []models.Task
	for _, t := range tasks {
		if !f.IncludeCompleted && t.Completed {
			continue
		}
		dt := dateField(t, f.Field)
		if dt == nil {
			continue
		}
		if f.Overdue && !dt.Before(td) {
			continue
		}
		if f.Window != nil && !f.Window.Contains(*dt) {
			continue
		}
		result = append(result, t)
	}
	return result
}

type dedupKey struct {
	text   string
	source string
}

// dedupMerge concatenates task groups, dropping every record whose
// (text, source) pair has already been seen. First-encounter order is
// preserved, so earlier date fields win over later ones.
func dedupMerge(groups ...[]models.Task) []models.Task {
	seen := make(map[dedupKey]struct{})
	var result []models.Task
	for _, group := range groups {
		for _, t := range group {
			key := dedupKey{text: t.Text, source: t.Source}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, t)
		}
	}
	return result
}

// TodayTasks returns tasks whose due, scheduled, or start date falls on the
// current calendar day, deduplicated across those fields in that order.
func (e *queryEngine) TodayTasks(tasks []models.Task, includeCompleted bool) []models.Task {
	start := midnightOf(e.now())
	window := &Window{Start: start, End: start.AddDate(0, 0, 1)}

	groups := make([][]models.Task, 0, 3)
	for _, field := range []DateField{FieldDue, FieldScheduled, FieldStart} {
		groups = append(groups, e.Filter(tasks, TaskFilter{
			IncludeCompleted: includeCompleted,
			Window:           window,
			Field:            field,
		}))
	}
	return dedupMerge(groups...)
}

// WeekTasks returns tasks whose due or scheduled date falls in the current
// Monday-to-Sunday week. Start dates are intentionally excluded from weekly
// aggregation.
func (e *queryEngine) WeekTasks(tasks []models.Task, includeCompleted bool) []models.Task {
	start := weekStartOf(e.now())
	window := &Window{Start: start, End: start.AddDate(0, 0, 7)}

	groups := make([][]models.Task, 0, 2)
	for _, field := range []DateField{FieldDue, FieldScheduled} {
		groups = append(groups, e.Filter(tasks, TaskFilter{
			IncludeCompleted: includeCompleted,
			Window:           window,
			Field:            field,
		}))
	}
	return dedupMerge(groups...)
}

// OverdueTasks returns incomplete tasks whose due or scheduled date is
// strictly before the start of the current day. A task that has merely
// started is never overdue.
func (e *queryEngine) OverdueTasks(tasks []models.Task) []models.Task {
	groups := make([][]models.Task, 0, 2)
	for _, field := range []DateField{FieldDue, FieldScheduled} {
		groups = append(groups, e.Filter(tasks, TaskFilter{
			Field:   field,
			Overdue: true,
		}))
	}
	return dedupMerge(groups...)
}

// IncompleteTasks returns every task that is not completed, regardless of
// any date fields.
func (e *queryEngine) IncompleteTasks(tasks []models.Task) []models.Task {
	var result []models.Task
	for _, t := range tasks {
		if !t.Completed {
			result = append(result, t)
		}
	}
	return result
}
