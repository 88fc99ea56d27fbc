package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier отправляет сообщения тренеру
type Notifier interface {
	Send(text string) error
}

// TelegramNotifier шлёт сообщения в Telegram-чат тренера
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier создаёт нотификатор по токену бота
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к Telegram: %w", err)
	}
	log.Printf("Telegram-нотификатор авторизован: @%s", bot.Self.UserName)
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// Send отправляет текстовое сообщение в чат тренера
func (n *TelegramNotifier) Send(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("ошибка отправки сообщения: %w", err)
	}
	return nil
}

// LogNotifier пишет уведомления в лог. Используется, когда Telegram не настроен.
type LogNotifier struct{}

func (LogNotifier) Send(text string) error {
	log.Printf("Уведомление: %s", text)
	return nil
}
