package slots

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SimParams задаёт прогон Монте-Карло.
type SimParams struct {
	Spins int
	Bet   decimal.Decimal // ставка на линию
	Lines int
}

// SimStats: итоги прогона.
type SimStats struct {
	Spins    int
	Wagered  decimal.Decimal
	Won      decimal.Decimal
	RTP      decimal.Decimal // Won / Wagered
	HitRate  float64         // доля спинов хотя бы с одной выигрышной линией
	LineHits map[string]int  // выигрышные линии по символам
}

// Simulate крутит движок p.Spins раз без сессии и баланса и возвращает
// наблюдаемый возврат. Использует RandomSource самого движка.
func Simulate(e *Engine, p SimParams) (SimStats, error) {
	if p.Spins <= 0 {
		return SimStats{}, fmt.Errorf("spins must be positive, got %d", p.Spins)
	}
	if p.Lines < 1 || p.Lines > e.MaxLines() {
		return SimStats{}, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidLines, p.Lines, e.MaxLines())
	}
	if !p.Bet.IsPositive() {
		return SimStats{}, fmt.Errorf("%w: %s must be positive", ErrInvalidBet, p.Bet)
	}

	stats := SimStats{
		Spins:    p.Spins,
		Wagered:  decimal.Zero,
		Won:      decimal.Zero,
		RTP:      decimal.Zero,
		LineHits: make(map[string]int),
	}
	req := SpinRequest{Bet: p.Bet, Lines: p.Lines}
	stake := req.Stake()
	hits := 0

	for i := 0; i < p.Spins; i++ {
		res := e.Spin(req)
		stats.Wagered = stats.Wagered.Add(stake)
		stats.Won = stats.Won.Add(res.Winnings)
		if res.IsWin() {
			hits++
		}
		for _, lw := range res.WinningLines() {
			stats.LineHits[lw.Symbol]++
		}
	}

	stats.HitRate = float64(hits) / float64(p.Spins)
	if stats.Wagered.IsPositive() {
		stats.RTP = stats.Won.DivRound(stats.Wagered, 6)
	}
	return stats, nil
}
