package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/minhokang/schedbot/internal/core"
	"github.com/minhokang/schedbot/internal/integration"
	"github.com/minhokang/schedbot/pkg/models"
)

// --- Fake implementations ---

type fakeScanner struct {
	tasks []models.Task
	err   error
}

func (f *fakeScanner) ScanTasks() ([]models.Task, error) {
	return f.tasks, f.err
}

func testClock() time.Time {
	return time.Date(2024, 1, 15, 14, 30, 0, 0, time.Local)
}

func sampleTasks() []models.Task {
	due := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)
	old := time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)
	return []models.Task{
		{Text: "standup", Source: "work", Due: &due},
		{Text: "old invoice", Source: "work", Due: &old},
		{Text: "someday", Source: "home"},
	}
}

func newTestServer(scanner *fakeScanner) *Server {
	return NewServer(scanner, core.NewReportBuilder(testClock), integration.NewVaultSyncManager("/nonexistent"), "test")
}

// callTool connects an in-memory client to srv and invokes one tool.
func callTool(t *testing.T, srv *Server, toolName string, args map[string]any) *gomcp.CallToolResult {
	t.Helper()

	ctx := context.Background()
	client := gomcp.NewClient(&gomcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)

	t1, t2 := gomcp.NewInMemoryTransports()

	go func() {
		_ = srv.MCPServer().Run(ctx, t1)
	}()

	session, err := client.Connect(ctx, t2, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &gomcp.CallToolParams{
		Name:      toolName,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("call tool %s: %v", toolName, err)
	}

	return result
}

func extractText(result *gomcp.CallToolResult) string {
	for _, c := range result.Content {
		if tc, ok := c.(*gomcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func decodeOutput(t *testing.T, result *gomcp.CallToolResult, out any) {
	t.Helper()
	data, err := json.Marshal(result.StructuredContent)
	if err != nil {
		t.Fatalf("marshaling structured content: %v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("decoding output from %q: %v", extractText(result), err)
	}
}

// --- Tests ---

func TestGetTodayReport(t *testing.T) {
	srv := newTestServer(&fakeScanner{tasks: sampleTasks()})

	result := callTool(t, srv, "get_today_report", nil)
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractText(result))
	}

	var out reportOutput
	decodeOutput(t, result, &out)

	if out.TaskCount != 3 {
		t.Errorf("TaskCount = %d, want 3", out.TaskCount)
	}
	if !strings.Contains(out.Report, "<b>Today</b>") {
		t.Errorf("report missing Today section:\n%s", out.Report)
	}
	if !strings.Contains(out.Report, "standup") {
		t.Errorf("report missing today's task:\n%s", out.Report)
	}
	if !strings.Contains(out.Report, "<b>Overdue</b>") {
		t.Errorf("report missing overdue section:\n%s", out.Report)
	}
}

func TestGetWeekReport(t *testing.T) {
	srv := newTestServer(&fakeScanner{tasks: sampleTasks()})

	result := callTool(t, srv, "get_week_report", nil)
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractText(result))
	}

	var out reportOutput
	decodeOutput(t, result, &out)
	if !strings.Contains(out.Report, "<b>This Week</b>") {
		t.Errorf("report missing week header:\n%s", out.Report)
	}
}

func TestGetBacklogReport(t *testing.T) {
	srv := newTestServer(&fakeScanner{tasks: sampleTasks()})

	result := callTool(t, srv, "get_backlog_report", nil)
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractText(result))
	}

	var out reportOutput
	decodeOutput(t, result, &out)
	if !strings.Contains(out.Report, "total 3") {
		t.Errorf("report missing total count:\n%s", out.Report)
	}
	if !strings.Contains(out.Report, "someday") {
		t.Errorf("report missing dateless task:\n%s", out.Report)
	}
}

func TestReportScanFailure(t *testing.T) {
	srv := newTestServer(&fakeScanner{err: errors.New("disk on fire")})

	result := callTool(t, srv, "get_today_report", nil)
	if !result.IsError {
		t.Fatal("expected an error result when the scan fails")
	}
	if !strings.Contains(extractText(result), "disk on fire") {
		t.Errorf("error text = %q", extractText(result))
	}
}

func TestSyncVaultNonGit(t *testing.T) {
	srv := newTestServer(&fakeScanner{})

	result := callTool(t, srv, "sync_vault", nil)
	if result.IsError {
		t.Fatalf("sync failure must be a soft result, got error: %v", extractText(result))
	}

	var out syncVaultOutput
	decodeOutput(t, result, &out)
	if out.Synced {
		t.Error("Synced = true for a non-git vault")
	}
	if !strings.Contains(out.Message, "Sync failed") {
		t.Errorf("Message = %q", out.Message)
	}
}
