// Package bot runs the Telegram command loop and the scheduled notification
// delivery. Reports themselves come from the core pipeline; this package is
// orchestration only.
package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/minhokang/schedbot/internal/core"
	"github.com/minhokang/schedbot/internal/integration"
	"github.com/minhokang/schedbot/internal/observability"
	"github.com/minhokang/schedbot/internal/storage"
	"github.com/minhokang/schedbot/pkg/models"
)

// Config carries the bot's credentials and collaborators.
type Config struct {
	Token  string
	ChatID int64

	Settings  storage.SettingsManager
	Scanner   storage.VaultScanner
	Reports   core.ReportBuilder
	VaultSync *integration.VaultSyncManager
	EventLog  observability.EventLog // optional
}

// Bot is the long-running Telegram front end: it polls updates, routes
// commands and callbacks, and sends the scheduled daily report.
type Bot struct {
	api    *tgbotapi.BotAPI
	sender integration.Sender
	chatID int64

	settings  storage.SettingsManager
	scanner   storage.VaultScanner
	reports   core.ReportBuilder
	vaultSync *integration.VaultSyncManager
	events    observability.EventLog

	sched *Scheduler

	// awaiting tracks chats whose next text message is an HH:MM entry for
	// the add-time settings flow.
	awaiting map[int64]string
}

// New authorizes against the Bot API and wires the bot together. The
// notification scheduler is created but not started; Run starts it.
func New(cfg Config) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram bot token is not configured")
	}
	if cfg.ChatID == 0 {
		return nil, fmt.Errorf("telegram chat id is not configured")
	}

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("authorizing telegram bot: %w", err)
	}

	b := &Bot{
		api:       api,
		sender:    integration.NewTelegramSender(api),
		chatID:    cfg.ChatID,
		settings:  cfg.Settings,
		scanner:   cfg.Scanner,
		reports:   cfg.Reports,
		vaultSync: cfg.VaultSync,
		events:    cfg.EventLog,
		awaiting:  make(map[int64]string),
	}
	b.sched = NewScheduler(cfg.Settings, b.sendScheduledReport)
	return b, nil
}

// Run starts the notification scheduler and processes updates until the
// context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.sched.Start(); err != nil {
		return err
	}
	defer b.sched.Stop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(update)
		}
	}
}

// freshTasks syncs the vault, then scans it. Both steps fail soft: a failed
// pull or scan still yields a (possibly empty) report.
func (b *Bot) freshTasks() []models.Task {
	result := b.vaultSync.Pull()
	data := map[string]any{"synced": result.Synced}
	if result.Err != nil {
		data["error"] = result.Err.Error()
	}
	b.logEvent("vault.synced", result.Message, data)

	tasks, err := b.scanner.ScanTasks()
	if err != nil {
		b.logEvent("vault.scan_failed", err.Error(), nil)
		return nil
	}
	return tasks
}

// sendScheduledReport is the cron trigger: sync, scan, build the daily
// report, deliver it to the configured chat.
func (b *Bot) sendScheduledReport() {
	text := b.reports.Daily(b.freshTasks(), false)
	kb := mainKeyboard()
	if err := b.sender.SendHTML(b.chatID, text, &kb); err != nil {
		b.logEvent("notification.failed", err.Error(), nil)
		return
	}
	b.logEvent("notification.sent", "scheduled daily report", nil)
}

func (b *Bot) logEvent(eventType, message string, data map[string]any) {
	if b.events == nil {
		return
	}
	level := "INFO"
	if data != nil {
		if _, hasErr := data["error"]; hasErr {
			level = "WARN"
		}
	}
	_ = b.events.Write(observability.Event{
		Time:    time.Now().UTC(),
		Level:   level,
		Type:    eventType,
		Message: message,
		Data:    data,
	})
}
