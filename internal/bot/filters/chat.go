// Package filters решает, в каких чатах бот отвечает.
package filters

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// ChatFilter пропускает личные чаты, а групповые ограничивает списком
// ALLOWED_CHAT_IDS. Пустой список разрешает любой чат.
type ChatFilter struct {
	allowed map[int64]struct{}
}

// NewChatFilter создаёт фильтр по списку разрешённых групповых чатов.
func NewChatFilter(allowedChatIDs []int64) *ChatFilter {
	allowed := make(map[int64]struct{}, len(allowedChatIDs))
	for _, id := range allowedChatIDs {
		allowed[id] = struct{}{}
	}
	return &ChatFilter{allowed: allowed}
}

// CheckAccess проверяет, нужно ли обрабатывать сообщение.
//
// Логика:
//   - нет чата или отправителя (пост канала): отказ
//   - личный чат: разрешено
//   - список пуст: разрешено
//   - групповой чат из списка: разрешено, иначе отказ
func (f *ChatFilter) CheckAccess(message *tgbotapi.Message) bool {
	if message == nil || message.Chat == nil {
		log.WithField("component", "ChatFilter").Warn("Пустое сообщение или чат")
		return false
	}
	if message.From == nil {
		log.WithFields(log.Fields{
			"component": "ChatFilter",
			"chat_id":   message.Chat.ID,
			"chat_type": message.Chat.Type,
		}).Debug("Отказ: нет отправителя")
		return false
	}

	logger := log.WithFields(log.Fields{
		"component": "ChatFilter",
		"chat_id":   message.Chat.ID,
		"chat_type": message.Chat.Type,
		"user_id":   message.From.ID,
	})

	// у каждого игрока своя сессия, личка разрешена всегда
	if message.Chat.IsPrivate() {
		logger.Debug("Разрешено: личный чат")
		return true
	}

	if len(f.allowed) == 0 {
		logger.Debug("Разрешено: список чатов не задан")
		return true
	}
	if _, ok := f.allowed[message.Chat.ID]; ok {
		logger.Debug("Разрешено: чат в списке")
		return true
	}

	logger.Info("Отказ: чата нет в ALLOWED_CHAT_IDS")
	return false
}
