package slots

import (
	"github.com/shopspring/decimal"
)

// Evaluate считает выплату по строкам 0..lines-1. Строка выигрывает
// bet * payout своего символа, только если все ячейки равны первой.
// Частичных, диагональных и scatter-выплат нет. Линии за пределами сетки
// игнорируются.
func (e *Engine) Evaluate(grid Grid, bet decimal.Decimal, lines int) (decimal.Decimal, []LineWin) {
	if lines > len(grid) {
		lines = len(grid)
	}

	winnings := decimal.Zero
	lineWins := make([]LineWin, 0, max(lines, 0))
	for r := 0; r < lines; r++ {
		row := grid[r]
		lw := LineWin{Line: r, Amount: decimal.Zero}
		if len(row) > 0 {
			lw.Symbol = row[0]
		}
		if rowMatches(row) {
			if payout, ok := e.payouts[lw.Symbol]; ok {
				lw.Won = true
				lw.Amount = bet.Mul(payout)
				winnings = winnings.Add(lw.Amount)
			}
		}
		lineWins = append(lineWins, lw)
	}
	return winnings, lineWins
}

// rowMatches: все ячейки строки равны первой.
func rowMatches(row []string) bool {
	if len(row) == 0 {
		return false
	}
	for _, s := range row[1:] {
		if s != row[0] {
			return false
		}
	}
	return true
}

// TheoreticalRTP: ожидаемый возврат на единицу ставки на линию.
// При вытягивании без возвращения каждая ячейка по отдельности равномерна
// по пулу, колонки независимы, поэтому строка из символа s выпадает
// с вероятностью (w_s/N)^cols.
func (e *Engine) TheoreticalRTP() decimal.Decimal {
	n := decimal.NewFromInt(int64(e.poolSize))
	rtp := decimal.Zero
	for _, s := range e.symbols {
		p := decimal.NewFromInt(int64(s.Weight)).DivRound(n, 16).Pow(decimal.NewFromInt(int64(e.cols)))
		rtp = rtp.Add(p.Mul(s.Payout))
	}
	return rtp
}
