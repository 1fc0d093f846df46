package integration

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender delivers rendered report text to a chat. The report pipeline knows
// nothing about delivery; this is the only seam the bot and scheduler use,
// which keeps handlers testable with a recording fake.
type Sender interface {
	SendHTML(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error
}

// telegramSender implements Sender over the Bot API in HTML parse mode.
type telegramSender struct {
	api *tgbotapi.BotAPI
}

// NewTelegramSender wraps an authorized Bot API client as a Sender.
func NewTelegramSender(api *tgbotapi.BotAPI) Sender {
	return &telegramSender{api: api}
}

// SendHTML sends text to chatID with HTML formatting and an optional inline
// keyboard.
func (s *telegramSender) SendHTML(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}
	if _, err := s.api.Send(msg); err != nil {
		return fmt.Errorf("sending message to chat %d: %w", chatID, err)
	}
	return nil
}
