package models

import (
	"strings"
	"time"
)

// maxTime sorts dateless tasks after every dated task.
var maxTime = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

// Task represents one checkbox line found in a vault document. A Task is
// immutable once created: it is built fresh on every vault scan and discarded
// after the report that used it has been rendered.
type Task struct {
	Text       string // cleaned display text, metadata stripped, never empty
	Completed  bool
	Source     string // document base name the line came from, never empty
	Due        *time.Time
	Scheduled  *time.Time
	Start      *time.Time
	Recurrence string // opaque recurrence description, "" when absent
	TimeRange  string // literal "HH:MM-HH:MM" label from a @[...] tag
	Place      string // free-text location label from a @.../[...] tag
}

// PrimaryDT returns the first present timestamp in due > scheduled > start
// order, or nil when the task carries no date at all.
func (t Task) PrimaryDT() *time.Time {
	switch {
	case t.Due != nil:
		return t.Due
	case t.Scheduled != nil:
		return t.Scheduled
	case t.Start != nil:
		return t.Start
	}
	return nil
}

// HasTime reports whether the task carries clock-level precision: either an
// explicit time range tag, or a primary timestamp with a non-midnight clock.
func (t Task) HasTime() bool {
	if t.TimeRange != "" {
		return true
	}
	dt := t.PrimaryDT()
	return dt != nil && (dt.Hour() != 0 || dt.Minute() != 0)
}

// DisplayTime returns the label shown in a task's info line: the time range
// tag when present, else the primary timestamp's clock when non-midnight,
// else the empty string (an all-day task). The time range wins even when the
// primary timestamp has its own clock value.
func (t Task) DisplayTime() string {
	if t.TimeRange != "" {
		return t.TimeRange
	}
	dt := t.PrimaryDT()
	if dt != nil && (dt.Hour() != 0 || dt.Minute() != 0) {
		return dt.Format("15:04")
	}
	return ""
}

// SortKey returns the task's ordering key: time-bearing tasks first, then
// all-day tasks, then tasks without any date last. Within the time-bearing
// group the key is the start of the time range when one is present, applied
// to the primary date; otherwise the primary timestamp itself.
func (t Task) SortKey() (int, time.Time) {
	dt := t.PrimaryDT()
	if dt == nil {
		return 2, maxTime
	}
	if !t.HasTime() {
		return 1, *dt
	}
	return 0, t.sortClock(*dt)
}

// sortClock replaces dt's clock with the parsed start of the time range.
// A range that does not lead with HH:MM leaves dt unchanged.
func (t Task) sortClock(dt time.Time) time.Time {
	if t.TimeRange == "" {
		return dt
	}
	startLabel, _, _ := strings.Cut(t.TimeRange, "-")
	clock, err := time.Parse("15:04", strings.TrimSpace(startLabel))
	if err != nil {
		return dt
	}
	return time.Date(dt.Year(), dt.Month(), dt.Day(), clock.Hour(), clock.Minute(), 0, 0, dt.Location())
}
