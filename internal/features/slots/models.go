// Package slots реализует движок линейного слот-автомата и машину
// состояний сессии, которая хранит виртуальный баланс игрока.
//
// Движок тянет символы каждого барабана без возвращения из собственного
// взвешенного пула, транспонирует барабаны в строки и платит за каждую
// активную строку из одинаковых символов. Сессия списывает ставку до
// вращения, зачисляет выигрыш после него и сообщает слушателям о каждом
// переходе.
package slots

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol: один вид символа на барабане.
type Symbol struct {
	Name   string          // подпись на поле ("A", "🍒", ...)
	Weight int             // сколько копий символа в пуле каждого барабана
	Payout decimal.Decimal // множитель ставки на линию за полную строку
}

// Reels: выпавшие символы по столбцам, reels[c][r].
type Reels [][]string

// Grid: выпавшие символы по строкам, grid[r][c]. Строки и есть линии выплат.
type Grid [][]string

// String выводит поле построчно, ячейки разделены " | ".
func (g Grid) String() string {
	var sb strings.Builder
	for i, row := range g {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Join(row, " | "))
	}
	return sb.String()
}

// SpinRequest: ставка на первые Lines строк поля.
type SpinRequest struct {
	Bet   decimal.Decimal // ставка на одну линию
	Lines int
}

// Stake: полная сумма, списываемая за запрос (Bet * Lines).
func (r SpinRequest) Stake() decimal.Decimal {
	return r.Bet.Mul(decimal.NewFromInt(int64(r.Lines)))
}

// LineWin: результат одной активной линии.
type LineWin struct {
	Line   int             // номер строки с нуля
	Symbol string          // первый символ строки
	Won    bool            // все ячейки строки совпали
	Amount decimal.Decimal // bet * payout при выигрыше, иначе ноль
}

// SpinResult: всё, что дал один завершённый спин.
type SpinResult struct {
	Grid     Grid
	Bet      decimal.Decimal
	Lines    int
	Stake    decimal.Decimal
	Winnings decimal.Decimal
	LineWins []LineWin       // по записи на каждую активную линию
	Balance  decimal.Decimal // баланс после расчёта
	Ended    bool            // после спина баланс кончился

	// Forfeited: сессию сбросили между списанием и расчётом.
	// Winnings равен нулю, Balance равен балансу после сброса (ноль),
	// а LineWins по-прежнему показывают, что выпало бы.
	Forfeited bool
}

// IsWin сообщает, сыграла ли хоть одна линия.
func (r SpinResult) IsWin() bool {
	return r.Winnings.IsPositive()
}

// WinningLines возвращает только выигравшие линии.
func (r SpinResult) WinningLines() []LineWin {
	var out []LineWin
	for _, lw := range r.LineWins {
		if lw.Won {
			out = append(out, lw)
		}
	}
	return out
}
