package models

import (
	"testing"
	"time"
)

func dt(year int, month time.Month, day, hour, min int) *time.Time {
	t := time.Date(year, month, day, hour, min, 0, 0, time.Local)
	return &t
}

func TestPrimaryDT(t *testing.T) {
	due := dt(2024, 1, 10, 0, 0)
	scheduled := dt(2024, 1, 11, 0, 0)
	start := dt(2024, 1, 12, 0, 0)

	tests := []struct {
		name string
		task Task
		want *time.Time
	}{
		{
			name: "due wins over scheduled and start",
			task: Task{Due: due, Scheduled: scheduled, Start: start},
			want: due,
		},
		{
			name: "scheduled wins over start",
			task: Task{Scheduled: scheduled, Start: start},
			want: scheduled,
		},
		{
			name: "start stands alone",
			task: Task{Start: start},
			want: start,
		},
		{
			name: "no dates yields nil",
			task: Task{Text: "someday"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.task.PrimaryDT()
			if got != tt.want {
				t.Errorf("PrimaryDT() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDisplayTime(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want string
	}{
		{
			name: "time range tag wins over timestamp clock",
			task: Task{TimeRange: "14:00-16:00", Due: dt(2024, 1, 10, 9, 30)},
			want: "14:00-16:00",
		},
		{
			name: "non-midnight clock renders as HH:MM",
			task: Task{Due: dt(2024, 1, 10, 9, 30)},
			want: "09:30",
		},
		{
			name: "midnight clock is all-day",
			task: Task{Due: dt(2024, 1, 10, 0, 0)},
			want: "",
		},
		{
			name: "dateless has no display time",
			task: Task{Text: "someday"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.DisplayTime(); got != tt.want {
				t.Errorf("DisplayTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasTime(t *testing.T) {
	if (Task{TimeRange: "10:00-11:00"}).HasTime() == false {
		t.Error("time range tag must count as timed")
	}
	if (Task{Due: dt(2024, 1, 10, 9, 0)}).HasTime() == false {
		t.Error("non-midnight timestamp must count as timed")
	}
	if (Task{Due: dt(2024, 1, 10, 0, 0)}).HasTime() {
		t.Error("midnight timestamp must count as all-day")
	}
	if (Task{}).HasTime() {
		t.Error("dateless task must count as all-day")
	}
}

func TestSortKey(t *testing.T) {
	day := dt(2024, 1, 10, 0, 0)

	tests := []struct {
		name     string
		task     Task
		wantRank int
		wantTime time.Time
	}{
		{
			name:     "timed task ranks first with its clock",
			task:     Task{Due: dt(2024, 1, 10, 9, 30)},
			wantRank: 0,
			wantTime: time.Date(2024, 1, 10, 9, 30, 0, 0, time.Local),
		},
		{
			name:     "time range start overrides the timestamp clock",
			task:     Task{Due: day, TimeRange: "14:00-16:00"},
			wantRank: 0,
			wantTime: time.Date(2024, 1, 10, 14, 0, 0, 0, time.Local),
		},
		{
			name:     "unparseable range start falls back to the timestamp",
			task:     Task{Due: day, TimeRange: "afternoon"},
			wantRank: 0,
			wantTime: *day,
		},
		{
			name:     "all-day task ranks second",
			task:     Task{Due: day},
			wantRank: 1,
			wantTime: *day,
		},
		{
			name:     "dateless task ranks last",
			task:     Task{Text: "someday"},
			wantRank: 2,
			wantTime: maxTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank, key := tt.task.SortKey()
			if rank != tt.wantRank {
				t.Errorf("SortKey() rank = %d, want %d", rank, tt.wantRank)
			}
			if !key.Equal(tt.wantTime) {
				t.Errorf("SortKey() time = %v, want %v", key, tt.wantTime)
			}
		})
	}
}
