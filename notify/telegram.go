package notify

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// NotificationError reports a failure of the outbound send. It only occurs
// after all scraping succeeded, but the run still fails so the operator is
// alerted.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("failed to send notification: %v", e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

// Notifier is the outbound chat-notification capability
type Notifier interface {
	Send(text string) error
}

// Telegram sends messages to a fixed chat via the Telegram bot API
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram creates a Telegram notifier from bot-token and chat-id
// credentials
func NewTelegram(token, chatID string) (*Telegram, error) {
	if token == "" || chatID == "" {
		return nil, fmt.Errorf("missing TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID")
	}
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: id}, nil
}

// Send implements Notifier
func (t *Telegram) Send(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		return &NotificationError{Err: err}
	}
	return nil
}
