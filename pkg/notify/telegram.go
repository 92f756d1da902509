package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier pushes operator-facing notifications. A nil-safe no-op
// implementation is used when Telegram is not configured.
type Notifier interface {
	EmailGenerated(companyName, subject string) error
	EmailSent(recipient, subject string) error
	Error(err error) error
}

type telegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &telegramNotifier{bot: bot, chatID: chatID}, nil
}

func (t *telegramNotifier) send(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML"
	_, err := t.bot.Send(msg)
	return err
}

func (t *telegramNotifier) EmailGenerated(companyName, subject string) error {
	return t.send(fmt.Sprintf("✉️ <b>Draft ready</b>\n🏢 %s\n📝 %s", companyName, subject))
}

func (t *telegramNotifier) EmailSent(recipient, subject string) error {
	return t.send(fmt.Sprintf("✅ <b>Email sent</b>\n📮 %s\n📝 %s", recipient, subject))
}

func (t *telegramNotifier) Error(err error) error {
	return t.send(fmt.Sprintf("⚠️ <b>Outreach Error</b>:\n%v", err))
}

// NewNoopNotifier returns a notifier that drops everything.
func NewNoopNotifier() Notifier {
	return noopNotifier{}
}

type noopNotifier struct{}

func (noopNotifier) EmailGenerated(string, string) error { return nil }
func (noopNotifier) EmailSent(string, string) error      { return nil }
func (noopNotifier) Error(error) error                   { return nil }
