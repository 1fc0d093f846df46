package cli

import (
	"github.com/minhokang/schedbot/internal/core"
	"github.com/minhokang/schedbot/internal/integration"
	"github.com/minhokang/schedbot/internal/observability"
	"github.com/minhokang/schedbot/internal/storage"
	"github.com/minhokang/schedbot/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	BasePath  string
	Config    *models.StaticConfig
	Settings  storage.SettingsManager
	Scanner   storage.VaultScanner
	Reports   core.ReportBuilder
	VaultSync *integration.VaultSyncManager
	EventLog  observability.EventLog
)
