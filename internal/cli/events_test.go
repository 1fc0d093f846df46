package cli

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/minhokang/schedbot/internal/observability"
)

type eventLogMock struct {
	readFn   func(filter observability.EventFilter) ([]observability.Event, error)
	lastRead observability.EventFilter
}

func (m *eventLogMock) Write(observability.Event) error { return nil }
func (m *eventLogMock) Close() error                    { return nil }

func (m *eventLogMock) Read(filter observability.EventFilter) ([]observability.Event, error) {
	m.lastRead = filter
	return m.readFn(filter)
}

func TestEventsCmd_NilLog(t *testing.T) {
	orig := EventLog
	defer func() { EventLog = orig }()
	EventLog = nil

	err := eventsCmd.RunE(eventsCmd, []string{})
	if err == nil {
		t.Fatal("expected error when EventLog is nil")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEventsCmd_FilterFromFlags(t *testing.T) {
	orig := EventLog
	defer func() { EventLog = orig }()

	mock := &eventLogMock{
		readFn: func(observability.EventFilter) ([]observability.Event, error) {
			return []observability.Event{
				{Time: time.Now().UTC(), Level: "INFO", Type: "vault.synced", Message: "pulled"},
			}, nil
		},
	}
	EventLog = mock

	eventsType = "vault.synced"
	eventsLevel = "INFO"
	eventsSince = time.Hour
	defer func() {
		eventsType, eventsLevel, eventsSince = "", "", 0
	}()

	if err := eventsCmd.RunE(eventsCmd, []string{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mock.lastRead.Type != "vault.synced" {
		t.Errorf("filter type = %q", mock.lastRead.Type)
	}
	if mock.lastRead.Level != "INFO" {
		t.Errorf("filter level = %q", mock.lastRead.Level)
	}
	if mock.lastRead.Since == nil {
		t.Error("filter since was not set from --since")
	} else if age := time.Since(*mock.lastRead.Since); age < 55*time.Minute || age > 65*time.Minute {
		t.Errorf("filter since off by too much: %v ago", age)
	}
}

func TestEventsCmd_NoEvents(t *testing.T) {
	orig := EventLog
	defer func() { EventLog = orig }()

	EventLog = &eventLogMock{
		readFn: func(observability.EventFilter) ([]observability.Event, error) {
			return nil, nil
		},
	}

	if err := eventsCmd.RunE(eventsCmd, []string{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEventsCmd_ReadFailure(t *testing.T) {
	orig := EventLog
	defer func() { EventLog = orig }()

	EventLog = &eventLogMock{
		readFn: func(observability.EventFilter) ([]observability.Event, error) {
			return nil, errors.New("log torn")
		},
	}

	err := eventsCmd.RunE(eventsCmd, []string{})
	if err == nil {
		t.Fatal("expected error when the read fails")
	}
	if !strings.Contains(err.Error(), "log torn") {
		t.Errorf("unexpected error: %v", err)
	}
}
