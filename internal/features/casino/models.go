// Package casino: чат-интерфейс слот-автомата.
// Одна slots.Session на пользователя Telegram, обработчики команд
// и необязательный журнал спинов в PostgreSQL.
// models.go описывает записи журнала и статистику игрока.
package casino

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"serotonyl.ru/slots-bot/internal/features/slots"
)

// SpinRecord: одна строка slot_spins.
type SpinRecord struct {
	ID        uuid.UUID       `db:"id"`
	UserID    int64           `db:"user_id"`
	SessionID string          `db:"session_id"`
	Bet       decimal.Decimal `db:"bet"`
	Lines     int             `db:"lines"`
	Stake     decimal.Decimal `db:"stake"`
	Winnings  decimal.Decimal `db:"winnings"`
	Balance   decimal.Decimal `db:"balance"`
	Ended     bool            `db:"ended"`
	Forfeited bool            `db:"forfeited"`
	SpinData  []byte          `db:"spin_data"` // JSONB, см. spinData
	CreatedAt time.Time       `db:"created_at"`
}

// spinData: содержимое slot_spins.spin_data.
type spinData struct {
	Grid      slots.Grid    `json:"grid"`
	LineWins  []lineWinData `json:"line_wins"`
	Forfeited bool          `json:"forfeited,omitempty"`
}

type lineWinData struct {
	Line   int    `json:"line"`
	Symbol string `json:"symbol"`
	Amount string `json:"amount"`
}

// NewSpinRecord превращает завершённый спин в строку журнала.
// Для аннулированного спина выигрышные линии не сохраняются.
func NewSpinRecord(userID int64, sessionID string, res slots.SpinResult, at time.Time) (*SpinRecord, error) {
	data := spinData{Grid: res.Grid, Forfeited: res.Forfeited}
	if !res.Forfeited {
		for _, lw := range res.WinningLines() {
			data.LineWins = append(data.LineWins, lineWinData{
				Line:   lw.Line,
				Symbol: lw.Symbol,
				Amount: lw.Amount.String(),
			})
		}
	}
	raw, err := jsoniter.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("ошибка кодирования spin_data: %w", err)
	}

	return &SpinRecord{
		ID:        uuid.New(),
		UserID:    userID,
		SessionID: sessionID,
		Bet:       res.Bet,
		Lines:     res.Lines,
		Stake:     res.Stake,
		Winnings:  res.Winnings,
		Balance:   res.Balance,
		Ended:     res.Ended,
		Forfeited: res.Forfeited,
		SpinData:  raw,
		CreatedAt: at,
	}, nil
}

// Grid декодирует поле, сохранённое в записи.
func (r *SpinRecord) Grid() (slots.Grid, error) {
	var data spinData
	if err := jsoniter.Unmarshal(r.SpinData, &data); err != nil {
		return nil, fmt.Errorf("ошибка декодирования spin_data: %w", err)
	}
	return data.Grid, nil
}

// Stats: одна строка slot_stats, итоги игрока за всё время.
type Stats struct {
	UserID        int64           `db:"user_id"`
	TotalSpins    int             `db:"total_spins"`
	TotalWagered  decimal.Decimal `db:"total_wagered"`
	TotalWon      decimal.Decimal `db:"total_won"`
	BiggestWin    decimal.Decimal `db:"biggest_win"`
	SessionsEnded int             `db:"sessions_ended"`
	LastSpinAt    time.Time       `db:"last_spin_at"`
}

// Net: выиграно минус поставлено.
func (s *Stats) Net() decimal.Decimal {
	return s.TotalWon.Sub(s.TotalWagered)
}

// RTP: фактическая доля возврата, ноль до первого спина.
func (s *Stats) RTP() decimal.Decimal {
	if !s.TotalWagered.IsPositive() {
		return decimal.Zero
	}
	return s.TotalWon.DivRound(s.TotalWagered, 4)
}
