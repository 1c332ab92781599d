// Package bot: Telegram-часть приложения.
// Получает обновления, пропускает их через фильтры и middleware
// и направляет команды обработчикам слотов.
package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/slots-bot/internal/bot/filters"
	"serotonyl.ru/slots-bot/internal/bot/middleware"
	"serotonyl.ru/slots-bot/internal/config"
	"serotonyl.ru/slots-bot/internal/features/casino"
)

// Bot связывает Telegram API с обработчиками слотов.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	chatFilter  *filters.ChatFilter
	rateLimiter *middleware.RateLimiter

	casinoHandler *casino.Handler

	parser *CommandParser

	// ограничивает число одновременно обрабатываемых обновлений
	inflight chan struct{}
}

// New создаёт бота со всеми зависимостями.
//
// Параметры:
//   - api: клиент Telegram Bot API
//   - cfg: конфигурация
//   - casinoHandler: обработчики команд слотов
//   - chatFilter: фильтр разрешённых чатов
//
// Возвращает готового к запуску бота.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	casinoHandler *casino.Handler,
	chatFilter *filters.ChatFilter,
) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:           api,
		cfg:           cfg,
		chatFilter:    chatFilter,
		rateLimiter:   middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		casinoHandler: casinoHandler,
		parser:        NewCommandParser(api.Self.UserName),
		inflight:      make(chan struct{}, maxInFlight),
	}
}

// Start получает обновления от Telegram, пока ctx не отменён.
// Каждое обновление обрабатывается в отдельной горутине.
func (b *Bot) Start(ctx context.Context) {
	defer b.rateLimiter.Close()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен, ожидаем обновления")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (контекст отменён)")
			b.api.StopReceivingUpdates()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал обновлений закрыт, бот остановлен")
				return
			}

			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// handleUpdate обрабатывает одно обновление.
//
// Порядок:
//  1. только сообщения с отправителем
//  2. фильтр чата
//  3. rate limit
//  4. разбор команды и маршрутизация
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic(update.UpdateID)

	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}
	message := update.Message

	middleware.LogMessage(message)

	if !b.chatFilter.CheckAccess(message) {
		return
	}

	if !b.rateLimiter.Allow(message.From.ID) {
		log.WithField("user_id", message.From.ID).Debug("Превышен лимит запросов")
		return
	}

	cmd, args, isCommand := b.parser.ParseCommand(message.Text)
	if !isCommand {
		return
	}
	log.WithFields(log.Fields{
		"cmd":     cmd,
		"args":    args,
		"user_id": message.From.ID,
	}).Debug("Команда разобрана")

	b.routeCommand(ctx, message.Chat.ID, message.From.ID, cmd, args)
}

// routeCommand передаёт команду её обработчику.
func (b *Bot) routeCommand(ctx context.Context, chatID, userID int64, cmd string, args []string) {
	switch cmd {
	case "start", "help":
		b.casinoHandler.HandleHelp(chatID)

	case "deposit":
		b.casinoHandler.HandleDeposit(chatID, userID, args)

	case "spin":
		b.casinoHandler.HandleSpin(ctx, chatID, userID, args)

	case "balance":
		b.casinoHandler.HandleBalance(chatID, userID)

	case "reset":
		b.casinoHandler.HandleReset(chatID, userID)

	case "paytable":
		b.casinoHandler.HandlePaytable(chatID)

	case "rtp":
		b.casinoHandler.HandleRTP(chatID, userID, args)

	case "stats":
		b.casinoHandler.HandleStats(ctx, chatID, userID)
	}
}

// CommandParser разбирает "/spin@MyBot 5 3" в ("spin", ["5", "3"]).
// Префиксы "!" и "." тоже работают.
type CommandParser struct {
	validPrefixes []string
	botName       string
}

// NewCommandParser создаёт парсер. Суффикс "@botName" отрезается,
// команды для другого бота игнорируются.
func NewCommandParser(botName string) *CommandParser {
	return &CommandParser{
		validPrefixes: []string{"/", "!", "."},
		botName:       strings.ToLower(botName),
	}
}

// ParseCommand делит текст на команду и аргументы.
func (p *CommandParser) ParseCommand(text string) (string, []string, bool) {
	text = strings.TrimSpace(text)

	hasPrefix := false
	for _, prefix := range p.validPrefixes {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimPrefix(text, prefix)
			hasPrefix = true
			break
		}
	}
	if !hasPrefix {
		return "", nil, false
	}

	parts := strings.Fields(text)
	if len(parts) == 0 {
		return "", nil, false
	}

	command := strings.ToLower(parts[0])
	if name, target, found := strings.Cut(command, "@"); found {
		if p.botName != "" && target != p.botName {
			return "", nil, false
		}
		command = name
	}
	if command == "" {
		return "", nil, false
	}

	var args []string
	if len(parts) > 1 {
		args = parts[1:]
	}
	return command, args, true
}
