package bot

import (
	"fmt"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/minhokang/schedbot/internal/core"
	"github.com/minhokang/schedbot/pkg/models"
)

const startText = "<b>Obsidian Schedule Bot</b>\n\n" +
	"Automatic notifications at scheduled times.\n" +
	"Use buttons below to check your schedule."

const helpText = "<b>Commands</b>\n\n" +
	"/start - start bot\n" +
	"/today - today's schedule\n" +
	"/week - this week\n" +
	"/all - all incomplete\n" +
	"/settings - bot settings\n" +
	"/sync - sync vault\n" +
	"/help - help"

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message)
	case update.Message != nil:
		b.handleText(update.Message)
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	cmd := msg.Command()
	b.logEvent("command.handled", "/"+cmd, map[string]any{"chat": chatID})

	main := mainKeyboard()
	settings := settingsKeyboard()
	switch cmd {
	case "start":
		_ = b.sender.SendHTML(chatID, startText, &main)
	case "help":
		_ = b.sender.SendHTML(chatID, helpText, nil)
	case "today":
		_ = b.sender.SendHTML(chatID, b.reports.Daily(b.freshTasks(), false), &main)
	case "week":
		_ = b.sender.SendHTML(chatID, b.reports.Weekly(b.freshTasks(), false), &main)
	case "all":
		_ = b.sender.SendHTML(chatID, b.reports.Backlog(b.freshTasks()), &main)
	case "settings":
		_ = b.sender.SendHTML(chatID, b.settingsView(), &settings)
	case "sync":
		result := b.vaultSync.Pull()
		_ = b.sender.SendHTML(chatID, result.Message, nil)
	default:
		_ = b.sender.SendHTML(chatID, "Unknown command. Try /help.", nil)
	}
}

// reportForCallback maps a report callback to its rendered text, or returns
// false for non-report callbacks.
func (b *Bot) reportForCallback(data string, tasks []models.Task) (string, bool) {
	switch data {
	case cbRefresh:
		return b.reports.Daily(tasks, false), true
	case cbTodayAll:
		return b.reports.Daily(tasks, true), true
	case cbWeekAll:
		return b.reports.Weekly(tasks, true), true
	case cbWeekly:
		return b.reports.Weekly(tasks, false), true
	case cbAll:
		return b.reports.Backlog(tasks), true
	}
	return "", false
}

func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	_, _ = b.api.Request(tgbotapi.NewCallback(query.ID, ""))
	if query.Message == nil {
		return
	}
	b.dispatchCallback(query.Message.Chat.ID, query.Data)
}

// dispatchCallback routes one acknowledged keyboard press for a chat.
func (b *Bot) dispatchCallback(chatID int64, data string) {
	b.logEvent("callback.handled", data, map[string]any{"chat": chatID})

	main := mainKeyboard()
	settings := settingsKeyboard()
	switch {
	case data == cbSettings:
		_ = b.sender.SendHTML(chatID, b.settingsView(), &settings)

	case data == cbToggleTest:
		if _, err := b.settings.ToggleTestMode(); err != nil {
			_ = b.sender.SendHTML(chatID, core.EscapeHTML(err.Error()), &settings)
			return
		}
		b.rebuildSchedule(chatID)
		_ = b.sender.SendHTML(chatID, b.settingsView(), &settings)

	case data == cbAddTime:
		b.awaiting[chatID] = cbAddTime
		_ = b.sender.SendHTML(chatID, "Send time to add (HH:MM format):\ne.g. <code>14:30</code>", nil)

	case data == cbRemoveTime:
		current, err := b.settings.Load()
		if err != nil || len(current.NotificationTimes) == 0 {
			_ = b.sender.SendHTML(chatID, "No times to remove.", &settings)
			return
		}
		times := append([]string(nil), current.NotificationTimes...)
		sort.Strings(times)
		kb := removeTimeKeyboard(times)
		_ = b.sender.SendHTML(chatID, "Select time to remove:", &kb)

	case strings.HasPrefix(data, cbRemovePfx):
		if _, err := b.settings.RemoveNotificationTime(strings.TrimPrefix(data, cbRemovePfx)); err == nil {
			b.rebuildSchedule(chatID)
		}
		_ = b.sender.SendHTML(chatID, b.settingsView(), &settings)

	default:
		tasks := b.freshTasks()
		text, ok := b.reportForCallback(data, tasks)
		if !ok {
			text = "Unknown command"
		}
		_ = b.sender.SendHTML(chatID, text, &main)
	}
}

// handleText consumes plain messages, which only matter while a chat is in
// the add-time flow.
func (b *Bot) handleText(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if b.awaiting[chatID] != cbAddTime {
		return
	}
	delete(b.awaiting, chatID)

	settings := settingsKeyboard()
	if _, err := b.settings.AddNotificationTime(msg.Text); err != nil {
		_ = b.sender.SendHTML(chatID, core.EscapeHTML(err.Error()), nil)
		return
	}
	b.rebuildSchedule(chatID)
	_ = b.sender.SendHTML(chatID, b.settingsView(), &settings)
}

func (b *Bot) rebuildSchedule(chatID int64) {
	if err := b.sched.Rebuild(); err != nil {
		b.logEvent("scheduler.rebuild_failed", err.Error(), map[string]any{"chat": chatID, "error": err.Error()})
		return
	}
	b.logEvent("settings.changed", "scheduler rebuilt", map[string]any{"chat": chatID})
}

// settingsView renders the current settings summary.
func (b *Bot) settingsView() string {
	settings, err := b.settings.Load()
	if err != nil {
		return core.EscapeHTML(fmt.Sprintf("failed to load settings: %v", err))
	}
	return FormatSettings(settings)
}

// FormatSettings renders a settings summary: timezone, test mode, and the
// sorted notification schedule.
func FormatSettings(settings *models.Settings) string {
	testMode := "OFF"
	if settings.TestMode {
		testMode = "ON"
	}

	lines := []string{
		"<b>Settings</b>\n",
		fmt.Sprintf("<b>Timezone:</b> %s", core.EscapeHTML(settings.Timezone)),
		fmt.Sprintf("<b>Test Mode:</b> %s", testMode),
		"",
		"<b>Notification Times:</b>",
	}

	times := append([]string(nil), settings.NotificationTimes...)
	sort.Strings(times)
	for _, t := range times {
		lines = append(lines, "  "+t)
	}
	if len(times) == 0 {
		lines = append(lines, "  (none)")
	}
	return strings.Join(lines, "\n")
}
