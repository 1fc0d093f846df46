// Package core contains the business logic for schedbot: parsing checkbox
// task lines, filtering and deduplicating tasks into time-windowed queries,
// and rendering the daily, weekly, and backlog reports.
package core

import (
	"regexp"
	"strings"
	"time"

	"github.com/minhokang/schedbot/pkg/models"
)

var (
	// taskPattern matches an optionally indented checkbox line. Only a
	// space, x, or X marker counts as a task; anything else is skipped.
	taskPattern = regexp.MustCompile(`^\s*-\s*\[([ xX])\]\s*(.+)$`)

	// timePlacePattern matches the inline @[TIME]/[PLACE] tag in its three
	// accepted shapes: both brackets, time only, or place only.
	timePlacePattern = regexp.MustCompile(`@\[([^\]]*)\](?:/\[([^\]]*)\])?|@/\[([^\]]*)\]`)

	// metadataPattern matches every [key:: value] tag that must be stripped
	// from display text, whether or not the key carries a date.
	metadataPattern = regexp.MustCompile(`\[(?:due|scheduled|start|completion|recurs|repeat|created)::\s*[^\]]*\]`)

	datePatterns = map[DateField]*regexp.Regexp{
		FieldDue:       regexp.MustCompile(`\[due::\s*(\d{4}-\d{2}-\d{2}(?:\s+\d{1,2}:\d{2})?)\]`),
		FieldScheduled: regexp.MustCompile(`\[scheduled::\s*(\d{4}-\d{2}-\d{2}(?:\s+\d{1,2}:\d{2})?)\]`),
		FieldStart:     regexp.MustCompile(`\[start::\s*(\d{4}-\d{2}-\d{2}(?:\s+\d{1,2}:\d{2})?)\]`),
	}

	recurPattern       = regexp.MustCompile(`\[(?:recurs|repeat)::\s*([^\]]+)\]|🔁\s*([^\[]+)`)
	repeatGlyphPattern = regexp.MustCompile(`🔁\s*[^\[]*`)
)

var dateTimeLayouts = []string{"2006-01-02 15:04", "2006-01-02"}

// parseDateTime parses a metadata date value, trying date+time first and
// falling back to date-only with a midnight clock. Malformed values yield
// nil rather than an error. Values are interpreted in local time, matching
// the wall-clock windows the query engine builds.
func parseDateTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t
		}
	}
	return nil
}

// ParseTask turns one raw document line into a task record, or nil when the
// line is not a checkbox line or carries no text once all metadata is
// stripped. Date fields are extracted from the original tag-bearing content,
// not from the progressively cleaned display text.
func ParseTask(line, source string) *models.Task {
	m := taskPattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	completed := strings.EqualFold(m[1], "x")
	content := m[2]

	text := content
	var timeRange, place string
	if loc := timePlacePattern.FindStringSubmatchIndex(text); loc != nil {
		sub := timePlacePattern.FindStringSubmatch(text)
		timeRange = strings.TrimSpace(sub[1])
		place = strings.TrimSpace(sub[2])
		if place == "" {
			place = strings.TrimSpace(sub[3])
		}
		// A tag with nothing in either bracket is ordinary text.
		if timeRange != "" || place != "" {
			text = text[:loc[0]] + text[loc[1]:]
		}
	}

	var dates [3]*time.Time
	for i, field := range []DateField{FieldDue, FieldScheduled, FieldStart} {
		if dm := datePatterns[field].FindStringSubmatch(content); dm != nil {
			dates[i] = parseDateTime(dm[1])
		}
	}

	var recurrence string
	if rm := recurPattern.FindStringSubmatch(content); rm != nil {
		recurrence = rm[1]
		if recurrence == "" {
			recurrence = rm[2]
		}
		recurrence = strings.TrimSpace(recurrence)
	}

	text = metadataPattern.ReplaceAllString(text, "")
	text = repeatGlyphPattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	if text == "" {
		// The whole line was metadata, not a genuine task.
		return nil
	}

	return &models.Task{
		Text:       text,
		Completed:  completed,
		Source:     source,
		Due:        dates[0],
		Scheduled:  dates[1],
		Start:      dates[2],
		Recurrence: recurrence,
		TimeRange:  timeRange,
		Place:      place,
	}
}
