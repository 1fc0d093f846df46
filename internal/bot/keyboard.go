package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback identifiers shared between the keyboards and the handler table.
const (
	cbRefresh    = "refresh"
	cbTodayAll   = "today_all"
	cbWeekAll    = "week_all"
	cbWeekly     = "weekly"
	cbAll        = "all"
	cbSettings   = "settings"
	cbToggleTest = "toggle_test"
	cbAddTime    = "add_time"
	cbRemoveTime = "remove_time"
	cbRemovePfx  = "rm_"
)

// mainKeyboard is the inline keyboard attached to every report message.
func mainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Refresh", cbRefresh),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Today (all)", cbTodayAll),
			tgbotapi.NewInlineKeyboardButtonData("Week (all)", cbWeekAll),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("This Week", cbWeekly),
			tgbotapi.NewInlineKeyboardButtonData("Incomplete", cbAll),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Settings", cbSettings),
		),
	)
}

// settingsKeyboard is attached to the settings view.
func settingsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Toggle Test Mode", cbToggleTest),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Add Time", cbAddTime),
			tgbotapi.NewInlineKeyboardButtonData("Remove Time", cbRemoveTime),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Back", cbRefresh),
		),
	)
}

// removeTimeKeyboard lists one button per configured notification time.
func removeTimeKeyboard(times []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(times)+1)
	for _, t := range times {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t, cbRemovePfx+t),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Cancel", cbSettings),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
