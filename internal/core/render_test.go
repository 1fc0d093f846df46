package core

import (
	"strings"
	"testing"

	"github.com/minhokang/schedbot/pkg/models"
)

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"a & b", "a &amp; b"},
		{"x < y > z", "x &lt; y &gt; z"},
	}

	for _, tt := range tests {
		if got := EscapeHTML(tt.in); got != tt.want {
			t.Errorf("EscapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name       string
		task       models.Task
		showSource bool
		want       string
	}{
		{
			name: "all-day task",
			task: models.Task{Text: "Buy groceries", Source: "Home", Due: localDT(15, 0, 0)},
			want: "  all-day\n      Buy groceries",
		},
		{
			name:       "timed task with place and source",
			task:       models.Task{Text: "Dentist", Source: "Health", TimeRange: "14:00-15:00", Place: "Gangnam", Due: localDT(15, 0, 0)},
			showSource: true,
			want:       "  14:00-15:00 | Gangnam | Health\n      Dentist",
		},
		{
			name: "completed task is struck through",
			task: models.Task{Text: "Submit report", Source: "Work", Completed: true, Due: localDT(15, 0, 0)},
			want: "  <s>all-day</s>\n      <s>Submit report</s>",
		},
		{
			name: "recurring task carries repeat suffix",
			task: models.Task{Text: "Water plants", Source: "Home", Recurrence: "every week", Due: localDT(15, 0, 0)},
			want: "  all-day\n      Water plants (repeat)",
		},
		{
			name: "task text is escaped",
			task: models.Task{Text: "review a<b & c", Source: "Work", Due: localDT(15, 0, 0)},
			want: "  all-day\n      review a&lt;b &amp; c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTask(tt.task, tt.showSource, "  "); got != tt.want {
				t.Errorf("FormatTask() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTasksOrdering(t *testing.T) {
	tasks := []models.Task{
		{Text: "allday", Source: "a", Due: localDT(15, 0, 0)},
		{Text: "late", Source: "a", Due: localDT(15, 18, 0)},
		{Text: "early", Source: "a", TimeRange: "09:00-10:00", Due: localDT(15, 0, 0)},
	}

	got := FormatTasks(tasks, false)

	earlyIdx := strings.Index(got, "early")
	lateIdx := strings.Index(got, "late")
	alldayIdx := strings.Index(got, "allday")
	if earlyIdx < 0 || lateIdx < 0 || alldayIdx < 0 {
		t.Fatalf("FormatTasks missing a task:\n%s", got)
	}
	if !(earlyIdx < lateIdx && lateIdx < alldayIdx) {
		t.Errorf("want early < late < allday ordering, got:\n%s", got)
	}

	// A blank line separates the timed block from the all-day block.
	if !strings.Contains(got, "\n\n") {
		t.Errorf("want a blank separator line between blocks, got:\n%s", got)
	}
}

func TestFormatTasksDatelessRangeSortsLast(t *testing.T) {
	tasks := []models.Task{
		{Text: "floating", Source: "a", TimeRange: "09:00-10:00"},
		{Text: "allday", Source: "a", Due: localDT(15, 0, 0)},
		{Text: "timed", Source: "a", Due: localDT(15, 11, 0)},
	}

	got := FormatTasks(tasks, false)

	timedIdx := strings.Index(got, "timed")
	alldayIdx := strings.Index(got, "allday")
	floatIdx := strings.Index(got, "floating")
	if timedIdx < 0 || alldayIdx < 0 || floatIdx < 0 {
		t.Fatalf("FormatTasks missing a task:\n%s", got)
	}
	// A dateless task renders last even when it carries a time range tag.
	if !(timedIdx < alldayIdx && alldayIdx < floatIdx) {
		t.Errorf("want timed < allday < floating ordering, got:\n%s", got)
	}
}

func TestFormatTasksEmpty(t *testing.T) {
	if got := FormatTasks(nil, false); got != "  none" {
		t.Errorf("FormatTasks(nil) = %q, want %q", got, "  none")
	}
}

func TestFormatOverdueGrouping(t *testing.T) {
	tasks := []models.Task{
		{Text: "newer", Source: "work", Due: localDT(12, 0, 0)},
		{Text: "older", Source: "work", Due: localDT(10, 0, 0)},
		{Text: "other file", Source: "home", Due: localDT(11, 0, 0)},
	}

	got := FormatOverdue(tasks)

	// Sources alphabetical: home before work.
	homeIdx := strings.Index(got, "<b>home</b>")
	workIdx := strings.Index(got, "<b>work</b>")
	if homeIdx < 0 || workIdx < 0 || homeIdx > workIdx {
		t.Fatalf("want home section before work section, got:\n%s", got)
	}

	// Within work, dates oldest first.
	olderIdx := strings.Index(got, "older")
	newerIdx := strings.Index(got, "newer")
	if olderIdx < 0 || newerIdx < 0 || olderIdx > newerIdx {
		t.Errorf("want older before newer inside a source, got:\n%s", got)
	}

	for _, label := range []string{"    01/10", "    01/12", "    01/11"} {
		if !strings.Contains(got, label) {
			t.Errorf("missing date label %q in:\n%s", label, got)
		}
	}
}

func TestFormatOverdueEmpty(t *testing.T) {
	if got := FormatOverdue(nil); got != "  none" {
		t.Errorf("FormatOverdue(nil) = %q, want %q", got, "  none")
	}
}
