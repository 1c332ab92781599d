// Package casino: handlers.go обрабатывает команды слотов.
package casino

import (
	"context"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/slots-bot/internal/features/slots"
)

// Sender: часть tgbotapi.BotAPI, которой пользуются обработчики.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Handler обрабатывает команды слотов.
type Handler struct {
	service     *Service
	bot         Sender
	revealDelay time.Duration
	loc         *time.Location
}

// NewHandler создаёт обработчик команд слотов.
func NewHandler(service *Service, bot Sender) *Handler {
	return &Handler{
		service:     service,
		bot:         bot,
		revealDelay: service.cfg.SlotsRevealDelay,
		loc:         service.cfg.Location(),
	}
}

// HandleHelp: /start и /help.
func (h *Handler) HandleHelp(chatID int64) {
	h.sendMessage(chatID, helpText)
}

// HandleDeposit: /deposit <сумма>.
func (h *Handler) HandleDeposit(chatID, userID int64, args []string) {
	if len(args) == 0 {
		h.sendMessage(chatID, "Usage: /deposit <amount>")
		return
	}
	amount, err := slots.ParseAmount(args[0])
	if err != nil {
		h.replyError(chatID, userID, err)
		return
	}

	balance, err := h.service.Deposit(userID, amount)
	if err != nil {
		h.replyError(chatID, userID, err)
		return
	}
	h.sendMessage(chatID, "✅ Deposited. "+FormatBalance(balance, slots.StateFunded)+
		"\nNow /spin <bet> [lines]")
}

// HandleSpin: /spin <ставка> [линии].
// Результат рассчитан до того, как что-то показано. Задержка перед
// показом только для вида.
func (h *Handler) HandleSpin(ctx context.Context, chatID, userID int64, args []string) {
	req, err := parseSpinArgs(args)
	if err != nil {
		h.replyError(chatID, userID, err)
		return
	}

	res, err := h.service.Spin(userID, req)
	if err != nil {
		h.replyError(chatID, userID, err)
		return
	}
	h.reveal(ctx, chatID, FormatResult(res))
}

// parseSpinArgs разбирает "<ставка> [линии]". По умолчанию одна линия.
func parseSpinArgs(args []string) (slots.SpinRequest, error) {
	if len(args) == 0 {
		return slots.SpinRequest{}, slots.ErrInvalidBet
	}
	bet, err := slots.ParseBet(args[0])
	if err != nil {
		return slots.SpinRequest{}, err
	}
	lines := 1
	if len(args) > 1 {
		lines, err = strconv.Atoi(args[1])
		if err != nil {
			return slots.SpinRequest{}, slots.ErrInvalidLines
		}
	}
	return slots.SpinRequest{Bet: bet, Lines: lines}, nil
}

// reveal отправляет заглушку, ждёт и заменяет её результатом.
func (h *Handler) reveal(ctx context.Context, chatID int64, text string) {
	if h.revealDelay <= 0 {
		h.sendMessage(chatID, text)
		return
	}

	placeholder, err := h.bot.Send(tgbotapi.NewMessage(chatID, "🎰 Spinning..."))
	if err != nil {
		log.WithError(err).WithField("chat_id", chatID).Warn("Не удалось отправить заглушку спина")
		h.sendMessage(chatID, text)
		return
	}

	timer := time.NewTimer(h.revealDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}

	edit := tgbotapi.NewEditMessageText(chatID, placeholder.MessageID, text)
	if _, err := h.bot.Send(edit); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Warn("Не удалось отредактировать сообщение, отправляем новое")
		h.sendMessage(chatID, text)
	}
}

// HandleBalance: /balance.
func (h *Handler) HandleBalance(chatID, userID int64) {
	h.sendMessage(chatID, FormatBalance(h.service.Balance(userID)))
}

// HandleReset: /reset.
func (h *Handler) HandleReset(chatID, userID int64) {
	h.service.Reset(userID)
	h.sendMessage(chatID, "🔄 Session reset, balance is 0. /deposit to play again.")
}

// HandlePaytable: /paytable.
func (h *Handler) HandlePaytable(chatID int64) {
	h.sendMessage(chatID, FormatPaytable(h.service.Engine()))
}

// HandleRTP: /rtp [спины].
func (h *Handler) HandleRTP(chatID, userID int64, args []string) {
	spins := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			h.sendMessage(chatID, "Usage: /rtp [spins]")
			return
		}
		spins = n
	}

	stats, err := h.service.Simulate(spins)
	if err != nil {
		h.replyError(chatID, userID, err)
		return
	}
	h.sendMessage(chatID, FormatSimulation(stats, h.service.Engine().TheoreticalRTP()))
}

// HandleStats: /stats.
func (h *Handler) HandleStats(ctx context.Context, chatID, userID int64) {
	stats, err := h.service.Stats(ctx, userID)
	if err != nil {
		h.replyError(chatID, userID, err)
		return
	}
	h.sendMessage(chatID, FormatStats(stats, h.loc))
}

func (h *Handler) replyError(chatID, userID int64, err error) {
	text, known := errorText(err, h.service.Engine().MaxLines())
	if !known {
		log.WithError(err).WithFields(log.Fields{
			"chat_id": chatID,
			"user_id": userID,
		}).Error("Ошибка команды слотов")
	}
	h.sendMessage(chatID, text)
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}
