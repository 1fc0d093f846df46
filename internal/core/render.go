package core

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/minhokang/schedbot/pkg/models"
)

// htmlEscaper escapes the three characters significant to Telegram's HTML
// parse mode. All user-derived text passes through it before being embedded
// in report markup.
var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeHTML returns s with &, <, and > replaced by their entities.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

const taskTextIndent = "    "

// FormatTask renders one task as a two-line block: an info line (display
// time or "all-day", then optional place, then optional source, joined by
// " | ") followed by the escaped task text on its own indented line.
// Completed tasks are wrapped in strike-through markers; recurring tasks
// carry a " (repeat)" suffix. Both lines are prefixed with indent.
func FormatTask(t models.Task, showSource bool, indent string) string {
	prefix := t.DisplayTime()
	if prefix == "" {
		prefix = "all-day"
	}
	parts := []string{prefix}
	if t.Place != "" {
		parts = append(parts, EscapeHTML(t.Place))
	}
	if showSource {
		parts = append(parts, EscapeHTML(t.Source))
	}
	info := strings.Join(parts, " | ")

	text := EscapeHTML(t.Text)
	if t.Recurrence != "" {
		text += " (repeat)"
	}

	if t.Completed {
		return fmt.Sprintf("%s<s>%s</s>\n%s%s<s>%s</s>", indent, info, indent, taskTextIndent, text)
	}
	return fmt.Sprintf("%s%s\n%s%s%s", indent, info, indent, taskTextIndent, text)
}

// sortTasks returns a stably sorted copy of tasks ordered by their sort key:
// time-bearing first, then all-day, then dateless, original order preserved
// within ties.
func sortTasks(tasks []models.Task) []models.Task {
	out := append([]models.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, ti := out[i].SortKey()
		rj, tj := out[j].SortKey()
		if ri != rj {
			return ri < rj
		}
		return ti.Before(tj)
	})
	return out
}

// FormatTasks renders a flat task list in sort-key order, time-bearing tasks
// first, separated from the all-day block by a blank line. An empty list
// renders the "none" placeholder. The blocks are split on sort rank rather
// than the time tag alone, so a dateless task stays last even when it
// carries a time range.
func FormatTasks(tasks []models.Task, showSource bool) string {
	if len(tasks) == 0 {
		return "  none"
	}

	sorted := sortTasks(tasks)
	var timed, allday []models.Task
	for _, t := range sorted {
		if rank, _ := t.SortKey(); rank == 0 {
			timed = append(timed, t)
		} else {
			allday = append(allday, t)
		}
	}

	var lines []string
	for _, t := range timed {
		lines = append(lines, FormatTask(t, showSource, "  "))
	}
	if len(timed) > 0 && len(allday) > 0 {
		lines = append(lines, "")
	}
	for _, t := range allday {
		lines = append(lines, FormatTask(t, showSource, "  "))
	}
	return strings.Join(lines, "\n")
}

// dateKey is a calendar day used for grouping; the zero value stands for
// "no date".
type dateKey struct {
	year  int
	month time.Month
	day   int
}

func dateKeyOf(dt *time.Time) dateKey {
	if dt == nil {
		return dateKey{}
	}
	return dateKey{year: dt.Year(), month: dt.Month(), day: dt.Day()}
}

func (k dateKey) isZero() bool {
	return k == dateKey{}
}

func (k dateKey) label() string {
	if k.isZero() {
		return "(no date)"
	}
	return fmt.Sprintf("%02d/%02d", int(k.month), k.day)
}

// sortedDateKeys orders date keys ascending with the no-date group last.
func sortedDateKeys(m map[dateKey][]models.Task) []dateKey {
	keys := make([]dateKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.isZero() != b.isZero() {
			return b.isZero()
		}
		if a.year != b.year {
			return a.year < b.year
		}
		if a.month != b.month {
			return a.month < b.month
		}
		return a.day < b.day
	})
	return keys
}

// groupBySourceDate buckets tasks by source document, then by calendar day
// of the primary timestamp.
func groupBySourceDate(tasks []models.Task) (map[string]map[dateKey][]models.Task, []string) {
	bySource := make(map[string]map[dateKey][]models.Task)
	for _, t := range tasks {
		if bySource[t.Source] == nil {
			bySource[t.Source] = make(map[dateKey][]models.Task)
		}
		key := dateKeyOf(t.PrimaryDT())
		bySource[t.Source][key] = append(bySource[t.Source][key], t)
	}
	sources := make([]string, 0, len(bySource))
	for src := range bySource {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	return bySource, sources
}

// FormatOverdue renders overdue tasks grouped by source, then by calendar
// date oldest-first, each date group sorted by primary timestamp.
func FormatOverdue(tasks []models.Task) string {
	if len(tasks) == 0 {
		return "  none"
	}

	bySource, sources := groupBySourceDate(tasks)

	var lines []string
	for _, src := range sources {
		lines = append(lines, fmt.Sprintf("  <b>%s</b>", EscapeHTML(src)))
		for _, key := range sortedDateKeys(bySource[src]) {
			group := bySource[src][key]
			sort.SliceStable(group, func(i, j int) bool {
				di, dj := group[i].PrimaryDT(), group[j].PrimaryDT()
				if di == nil || dj == nil {
					return dj == nil && di != nil
				}
				return di.Before(*dj)
			})
			lines = append(lines, fmt.Sprintf("    %s", key.label()))
			for _, t := range group {
				lines = append(lines, FormatTask(t, false, "      "))
			}
		}
	}
	return strings.Join(lines, "\n")
}
