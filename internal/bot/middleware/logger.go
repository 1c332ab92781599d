// Package middleware содержит промежуточные обработчики апдейтов:
// логирование, восстановление после паники и rate-limiting.
package middleware

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

const maxLoggedText = 50

// LogMessage логирует входящее сообщение на уровне debug.
// Записывает: user_id, chat_id, username, текст (первые 50 символов).
// Безопасна для nil и для сообщений без отправителя.
func LogMessage(message *tgbotapi.Message) {
	if message == nil {
		return
	}

	fields := log.Fields{"text": truncate(message.Text, maxLoggedText)}
	if message.Chat != nil {
		fields["chat_id"] = message.Chat.ID
	}
	if message.From != nil {
		fields["user_id"] = message.From.ID
		fields["username"] = message.From.UserName
	}
	log.WithFields(fields).Debug("Входящее сообщение")
}

// truncate режет строку по рунам, а не по байтам.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
