package slots

import (
	"github.com/shopspring/decimal"
)

// Engine вращает барабаны и считает линии для одной конфигурации автомата.
// Состояния между спинами нет, поэтому движок можно делить между сессиями,
// если это допускает его RandomSource.
type Engine struct {
	symbols  []Symbol
	payouts  map[string]decimal.Decimal
	rows     int
	cols     int
	maxLines int
	poolSize int
	rng      RandomSource
}

// NewEngine проверяет cfg и создаёт движок.
//
// Параметры:
//   - cfg: конфигурация автомата
//   - rng: источник случайности (nil = DefaultRNG)
//
// Возвращает:
//   - *Engine: готовый движок
//   - error: ErrInvalidConfig или ErrPoolExhausted, если пул меньше числа строк
//
// Пример:
//
//	engine, err := slots.NewEngine(slots.ClassicConfig(), nil)
func NewEngine(cfg Config, rng RandomSource) (*Engine, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	e := &Engine{
		symbols:  append([]Symbol(nil), cfg.Symbols...),
		payouts:  make(map[string]decimal.Decimal, len(cfg.Symbols)),
		rows:     cfg.Rows,
		cols:     cfg.Cols,
		maxLines: cfg.MaxLines,
		rng:      rng,
	}
	if e.maxLines == 0 {
		e.maxLines = e.rows
	}
	for _, s := range e.symbols {
		e.payouts[s.Name] = s.Payout
		e.poolSize += s.Weight
	}
	return e, nil
}

// Rows: число строк поля (линий).
func (e *Engine) Rows() int { return e.rows }

// Cols: число барабанов.
func (e *Engine) Cols() int { return e.cols }

// MaxLines: максимальное число линий в ставке.
func (e *Engine) MaxLines() int { return e.maxLines }

// PoolSize: размер пула каждого барабана.
func (e *Engine) PoolSize() int { return e.poolSize }

// Symbols возвращает копию набора символов.
func (e *Engine) Symbols() []Symbol {
	return append([]Symbol(nil), e.symbols...)
}

// Config возвращает конфигурацию движка с вычисленным MaxLines.
func (e *Engine) Config() Config {
	return Config{
		Symbols:  e.Symbols(),
		Rows:     e.rows,
		Cols:     e.cols,
		MaxLines: e.maxLines,
	}
}

// Payout возвращает множитель для символа.
func (e *Engine) Payout(name string) (decimal.Decimal, bool) {
	p, ok := e.payouts[name]
	return p, ok
}

// Draw вращает барабаны и возвращает поле по строкам.
func (e *Engine) Draw() Grid {
	return Transpose(e.DrawReels())
}

// Spin вращает барабаны и считает выплату по запросу.
// Запрос не проверяется, это делает Session.
func (e *Engine) Spin(req SpinRequest) SpinResult {
	grid := e.Draw()
	winnings, lineWins := e.Evaluate(grid, req.Bet, req.Lines)
	return SpinResult{
		Grid:     grid,
		Bet:      req.Bet,
		Lines:    req.Lines,
		Stake:    req.Stake(),
		Winnings: winnings,
		LineWins: lineWins,
	}
}
