// Package mcp provides an MCP (Model Context Protocol) server that exposes
// schedbot's schedule reports as tools for AI assistants.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/minhokang/schedbot/internal/core"
	"github.com/minhokang/schedbot/internal/integration"
	"github.com/minhokang/schedbot/internal/storage"
)

// Server wraps the report pipeline and exposes it as MCP tools.
type Server struct {
	server    *gomcp.Server
	scanner   storage.VaultScanner
	reports   core.ReportBuilder
	vaultSync *integration.VaultSyncManager
}

// NewServer creates a new MCP server over the given collaborators.
func NewServer(scanner storage.VaultScanner, reports core.ReportBuilder, vaultSync *integration.VaultSyncManager, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		scanner:   scanner,
		reports:   reports,
		vaultSync: vaultSync,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "schedbot", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type reportInput struct {
	IncludeCompleted bool `json:"include_completed,omitempty" jsonschema:"include completed tasks in the report"`
}

type backlogInput struct{}

type reportOutput struct {
	Report    string `json:"report"`
	TaskCount int    `json:"task_count"`
}

type syncVaultInput struct{}

type syncVaultOutput struct {
	Synced  bool   `json:"synced"`
	Message string `json:"message"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_today_report",
		Description: "Render the daily schedule report: overdue tasks and tasks due, scheduled, or starting today.",
	}, s.handleTodayReport)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_week_report",
		Description: "Render the weekly schedule report for the current Monday-to-Sunday week, one section per day.",
	}, s.handleWeekReport)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_backlog_report",
		Description: "Render the full backlog report: every incomplete task grouped by source document and date.",
	}, s.handleBacklogReport)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "sync_vault",
		Description: "Pull the latest vault contents from the git remote before reading reports.",
	}, s.handleSyncVault)
}

// --- Tool handlers ---

func (s *Server) handleTodayReport(_ context.Context, _ *gomcp.CallToolRequest, input reportInput) (*gomcp.CallToolResult, reportOutput, error) {
	tasks, err := s.scanner.ScanTasks()
	if err != nil {
		return errorResult(fmt.Sprintf("scanning vault: %s", err)), reportOutput{}, nil
	}
	return nil, reportOutput{
		Report:    s.reports.Daily(tasks, input.IncludeCompleted),
		TaskCount: len(tasks),
	}, nil
}

func (s *Server) handleWeekReport(_ context.Context, _ *gomcp.CallToolRequest, input reportInput) (*gomcp.CallToolResult, reportOutput, error) {
	tasks, err := s.scanner.ScanTasks()
	if err != nil {
		return errorResult(fmt.Sprintf("scanning vault: %s", err)), reportOutput{}, nil
	}
	return nil, reportOutput{
		Report:    s.reports.Weekly(tasks, input.IncludeCompleted),
		TaskCount: len(tasks),
	}, nil
}

func (s *Server) handleBacklogReport(_ context.Context, _ *gomcp.CallToolRequest, _ backlogInput) (*gomcp.CallToolResult, reportOutput, error) {
	tasks, err := s.scanner.ScanTasks()
	if err != nil {
		return errorResult(fmt.Sprintf("scanning vault: %s", err)), reportOutput{}, nil
	}
	return nil, reportOutput{
		Report:    s.reports.Backlog(tasks),
		TaskCount: len(tasks),
	}, nil
}

func (s *Server) handleSyncVault(_ context.Context, _ *gomcp.CallToolRequest, _ syncVaultInput) (*gomcp.CallToolResult, syncVaultOutput, error) {
	result := s.vaultSync.Pull()
	out := syncVaultOutput{Synced: result.Synced, Message: result.Message}
	if result.Err != nil {
		out.Message = fmt.Sprintf("%s: %s", result.Message, result.Err)
	}
	return nil, out, nil
}

// --- Helpers ---

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
