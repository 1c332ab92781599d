// Package casino: format.go форматирует ответы в чат.
package casino

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"serotonyl.ru/slots-bot/internal/common"
	"serotonyl.ru/slots-bot/internal/features/slots"
)

const helpText = `🎰 Slots

/deposit <amount> - start a session with credits
/spin <bet> [lines] - bet per line on the first lines rows
/balance - your balance
/reset - end the session, balance goes to 0
/paytable - symbols, weights and payouts
/rtp [spins] - simulate and compare with the theoretical return
/stats - your lifetime results

A row pays bet × payout when all its symbols are the same.`

// FormatResult форматирует завершённый спин.
//
// Пример вывода:
//
//	🎰 SLOTS 🎰
//
//	A | A | A   ✅ +5
//	B | C | D
//	D | D | D   ✅ +2
//
//	Bet: 1 × 3 lines = 3
//	💰 Won: 7
//	📊 Balance: 104
func FormatResult(res slots.SpinResult) string {
	var sb strings.Builder
	sb.WriteString("🎰 SLOTS 🎰\n\n")

	for r, row := range res.Grid {
		sb.WriteString(strings.Join(row, " | "))
		switch {
		case res.Forfeited:
		case r < len(res.LineWins) && res.LineWins[r].Won:
			sb.WriteString("   ✅ " + common.FormatSigned(res.LineWins[r].Amount))
		case r >= res.Lines:
			sb.WriteString("   ·")
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(fmt.Sprintf("\nBet: %s × %s = %s\n",
		common.FormatMoney(res.Bet),
		common.FormatCount(int64(res.Lines), "line", "lines"),
		common.FormatMoney(res.Stake)))

	if res.Forfeited {
		sb.WriteString("⛔ Forfeited: the session was reset before this spin settled.")
		return sb.String()
	}
	if res.IsWin() {
		sb.WriteString(fmt.Sprintf("💰 Won: %s\n", common.FormatMoney(res.Winnings)))
	} else {
		sb.WriteString("💸 No win\n")
	}
	sb.WriteString(fmt.Sprintf("📊 Balance: %s", common.FormatCredits(res.Balance)))

	if res.Ended {
		sb.WriteString("\n\n🏁 Out of credits, the session is over. /deposit to play again.")
	}
	return sb.String()
}

// FormatPaytable выводит набор символов и теоретический RTP.
func FormatPaytable(e *slots.Engine) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📜 PAYTABLE (%d×%d, up to %s)\n\n",
		e.Rows(), e.Cols(), common.FormatCount(int64(e.MaxLines()), "line", "lines")))

	pool := decimal.NewFromInt(int64(e.PoolSize()))
	for _, s := range e.Symbols() {
		chance := decimal.NewFromInt(int64(s.Weight)).DivRound(pool, 4)
		sb.WriteString(fmt.Sprintf("%s  ×%s  (%d/%d per cell, %s)\n",
			s.Name, s.Payout.String(), s.Weight, e.PoolSize(), common.FormatPercent(chance)))
	}
	sb.WriteString(fmt.Sprintf("\nTheoretical RTP per line: %s", common.FormatPercent(e.TheoreticalRTP())))
	return sb.String()
}

// FormatSimulation сравнивает прогон Монте-Карло с точным RTP.
func FormatSimulation(stats slots.SimStats, theoretical decimal.Decimal) string {
	return fmt.Sprintf(
		"🧪 SIMULATION: %s\n\n"+
			"Wagered: %s\n"+
			"Won: %s\n"+
			"Observed RTP: %s\n"+
			"Theoretical RTP: %s\n"+
			"Hit rate: %.2f%%",
		common.FormatCount(int64(stats.Spins), "spin", "spins"),
		common.FormatMoney(stats.Wagered),
		common.FormatMoney(stats.Won),
		common.FormatPercent(stats.RTP),
		common.FormatPercent(theoretical),
		stats.HitRate*100,
	)
}

// FormatStats форматирует итоги из журнала.
func FormatStats(s *Stats, loc *time.Location) string {
	return fmt.Sprintf(
		"📊 YOUR SLOTS\n\n"+
			"Spins: %s\n"+
			"Wagered: %s\n"+
			"Won: %s\n"+
			"Net: %s\n"+
			"💎 Biggest win: %s\n"+
			"📈 Your RTP: %s\n"+
			"Sessions run dry: %d\n"+
			"Last spin: %s",
		common.FormatNumber(int64(s.TotalSpins)),
		common.FormatCredits(s.TotalWagered),
		common.FormatCredits(s.TotalWon),
		common.FormatSigned(s.Net()),
		common.FormatCredits(s.BiggestWin),
		common.FormatPercent(s.RTP()),
		s.SessionsEnded,
		common.FormatDateTime(s.LastSpinAt, loc),
	)
}

// FormatBalance: ответ на /balance.
func FormatBalance(balance decimal.Decimal, state slots.State) string {
	if state == slots.StateEmpty {
		return "💼 No credits in play. /deposit <amount> to start."
	}
	return fmt.Sprintf("💼 Balance: %s", common.FormatCredits(balance))
}

// errorText превращает известную ошибку в ответ пользователю.
// ok == false для неожиданных ошибок, их логирует вызывающий.
func errorText(err error, maxLines int) (string, bool) {
	switch {
	case errors.Is(err, slots.ErrInvalidAmount):
		return fmt.Sprintf("❌ Deposit must be a positive number with at most %d decimals: /deposit 100", slots.AmountPlaces), true
	case errors.Is(err, slots.ErrInvalidBet):
		return fmt.Sprintf("❌ Bet must be a positive number with at most %d decimals: /spin 5 3", slots.AmountPlaces), true
	case errors.Is(err, slots.ErrInvalidLines):
		return fmt.Sprintf("❌ Lines must be between 1 and %d.", maxLines), true
	case errors.Is(err, slots.ErrInsufficientFunds):
		return "❌ Not enough credits: bet × lines is above your balance.", true
	case errors.Is(err, slots.ErrSpinInProgress):
		return "⏳ Your previous spin is still rolling.", true
	case errors.Is(err, slots.ErrSessionActive):
		return "❌ You already have credits in play. /reset to start over.", true
	case errors.Is(err, slots.ErrSessionInactive):
		return "❌ Deposit first: /deposit <amount>", true
	case errors.Is(err, common.ErrDepositTooLarge):
		return "❌ " + capitalize(err.Error()), true
	case errors.Is(err, common.ErrJournalDisabled):
		return "📊 Statistics are turned off on this bot.", true
	case errors.Is(err, common.ErrNoStats):
		return "📊 No spins recorded yet. Play one!", true
	case errors.Is(err, common.ErrTooManySpins):
		return fmt.Sprintf("❌ At most %s per simulation.", common.FormatCount(MaxSimSpins, "spin", "spins")), true
	default:
		return "❌ Something went wrong, try again later.", false
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
