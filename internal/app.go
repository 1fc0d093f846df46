// Package internal provides the App struct that wires all components of the
// schedbot system together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/minhokang/schedbot/internal/cli"
	"github.com/minhokang/schedbot/internal/core"
	"github.com/minhokang/schedbot/internal/integration"
	"github.com/minhokang/schedbot/internal/observability"
	"github.com/minhokang/schedbot/internal/storage"
	"github.com/minhokang/schedbot/pkg/models"
)

// App holds all service dependencies for the schedbot system.
type App struct {
	BasePath string
	Config   *models.StaticConfig

	// Configuration
	ConfigMgr core.ConfigurationManager

	// Storage layer
	Scanner  storage.VaultScanner
	Settings storage.SettingsManager

	// Core services
	Reports core.ReportBuilder

	// Integration services
	VaultSync *integration.VaultSyncManager

	// Observability
	EventLog observability.EventLog
}

// NewApp creates and wires all components of the schedbot system. basePath is
// the directory holding schedbot.yaml and, by default, the event log.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := app.ConfigMgr.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	app.Config = cfg

	// --- Observability ---
	eventLogPath := filepath.Join(basePath, ".schedbot_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: disable observability if log can't be created.
		app.EventLog = nil
	}

	// --- Storage layer ---
	app.Scanner = storage.NewVaultScanner(cfg.TodoPath, app.EventLog)
	app.Settings = storage.NewSettingsManager(cfg.SettingsPath)

	// --- Core services ---
	app.Reports = core.NewReportBuilder(nil)

	// --- Integration services ---
	app.VaultSync = integration.NewVaultSyncManager(cfg.VaultPath)

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Config = app.Config
	cli.Settings = app.Settings
	cli.Scanner = app.Scanner
	cli.Reports = app.Reports
	cli.VaultSync = app.VaultSync
	cli.EventLog = app.EventLog

	return app, nil
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the directory schedbot reads its configuration
// from. It checks the SCHEDBOT_HOME env var, then walks up from the current
// directory looking for schedbot.yaml, falling back to the current directory.
func ResolveBasePath() string {
	if home := os.Getenv("SCHEDBOT_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "schedbot.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}
