package slots

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// State: положение сессии в её жизненном цикле.
type State int

const (
	// StateEmpty: баланс 0, депозита ещё не было (или он кончился).
	StateEmpty State = iota
	// StateFunded: депозит внесён, баланс положительный.
	StateFunded
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateFunded:
		return "funded"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session хранит баланс одного игрока. Баланс меняется только через методы
// сессии, одновременно в игре может быть только одна ставка.
//
// Порядок: Deposit → PlaceBet (списание) → Spin (вращение, подсчёт, зачисление).
// Play делает два последних шага за один вызов. Reset из любого состояния
// возвращает сессию в Empty.
//
// Пример:
//
//	s := slots.NewSession(engine)
//	_ = s.Deposit(decimal.NewFromInt(100))
//	res, err := s.Play(slots.SpinRequest{Bet: decimal.NewFromInt(1), Lines: 3})
type Session struct {
	id     string
	engine *Engine

	mu        sync.Mutex
	balance   decimal.Decimal
	active    bool
	pending   *SpinRequest  // списана, ещё не рассчитана
	drawing   bool          // барабаны уже крутятся
	epoch     uint64        // растёт при Reset, старые спины не зачисляются
	forfeited []SpinRequest // списаны до Reset, их разыгрывает Spin
	listeners []Listener
}

// NewSession создаёт пустую сессию на движке engine.
func NewSession(engine *Engine, listeners ...Listener) *Session {
	return &Session{
		id:        uuid.NewString(),
		engine:    engine,
		balance:   decimal.Zero,
		listeners: append([]Listener(nil), listeners...),
	}
}

// ID: идентификатор сессии в логах и журнале.
func (s *Session) ID() string { return s.id }

// Engine возвращает движок сессии.
func (s *Session) Engine() *Engine { return s.engine }

// Subscribe добавляет слушателя для следующих событий.
func (s *Session) Subscribe(l Listener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Balance возвращает текущий баланс.
func (s *Session) Balance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

// Active сообщает, есть ли депозит в игре.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// State возвращает Empty или Funded.
func (s *Session) State() State {
	if s.Active() {
		return StateFunded
	}
	return StateEmpty
}

// Spinning сообщает, что ставка сделана, но ещё не рассчитана.
func (s *Session) Spinning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Forfeited: число ставок, списанных до Reset и ещё не разыгранных.
func (s *Session) Forfeited() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.forfeited)
}

// AmountPlaces: сколько знаков после запятой допускается в депозите и ставке (0.01).
const AmountPlaces = 2

// ParseAmount разбирает ввод пользователя в положительную сумму.
//
// Параметры:
//   - input: строка вида "100" или "12.50"
//
// Возвращает:
//   - decimal.Decimal: сумма
//   - error: ErrInvalidAmount, если это не число, не больше нуля
//     или знаков после запятой больше AmountPlaces
//
// Пример:
//
//	amount, err := slots.ParseAmount("12.50") // 12.5, nil
//	_, err = slots.ParseAmount("0.004")       // ErrInvalidAmount
func ParseAmount(input string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, input)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s must be positive", ErrInvalidAmount, d)
	}
	if !fitsPlaces(d) {
		return decimal.Zero, fmt.Errorf("%w: %s has more than %d decimals", ErrInvalidAmount, d, AmountPlaces)
	}
	return d, nil
}

// ParseBet разбирает ставку на линию. Не число или лишние знаки после
// запятой дают ErrInvalidBet. Знак проверяет PlaceBet.
func ParseBet(input string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidBet, input)
	}
	if !fitsPlaces(d) {
		return decimal.Zero, fmt.Errorf("%w: %s has more than %d decimals", ErrInvalidBet, d, AmountPlaces)
	}
	return d, nil
}

func fitsPlaces(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(AmountPlaces))
}

// Deposit пополняет пустую сессию. Баланс становится ровно amount.
func (s *Session) Deposit(amount decimal.Decimal) error {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return fmt.Errorf("%w: reset before depositing again", ErrSessionActive)
	}
	if !amount.IsPositive() {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s must be positive", ErrInvalidAmount, amount)
	}

	s.balance = amount
	s.active = true
	ls := s.snapshotListeners()
	s.mu.Unlock()

	dispatch(ls, balanceEvent(amount))
	return nil
}

// PlaceBet проверяет req и списывает ставку. Списание окончательное:
// ставку разыграет следующий Spin, возврата нет.
//
// Порядок проверок:
//  1. нет другой ставки в игре (ErrSpinInProgress)
//  2. сессия активна (ErrSessionInactive)
//  3. число линий от 1 до MaxLines (ErrInvalidLines)
//  4. ставка больше нуля (ErrInvalidBet)
//  5. хватает баланса (ErrInsufficientFunds)
func (s *Session) PlaceBet(req SpinRequest) error {
	s.mu.Lock()
	if err := s.placeLocked(req); err != nil {
		s.mu.Unlock()
		return err
	}
	bal := s.balance
	ls := s.snapshotListeners()
	s.mu.Unlock()

	dispatch(ls, balanceEvent(bal))
	return nil
}

// Spin разыгрывает сделанную ставку: вращение, подсчёт, зачисление.
// Если ставки нет, разыгрывается самая старая ставка, аннулированная
// при Reset, без зачисления выигрыша.
func (s *Session) Spin() (SpinResult, error) {
	s.mu.Lock()
	if s.pending == nil {
		if len(s.forfeited) == 0 {
			s.mu.Unlock()
			return SpinResult{}, ErrNoPendingBet
		}
		req := s.forfeited[0]
		s.forfeited = s.forfeited[1:]
		ls := s.snapshotListeners()
		s.mu.Unlock()

		res := forfeit(s.engine.Spin(req))
		dispatch(ls, spinEvent(res))
		return res, nil
	}
	if s.drawing {
		s.mu.Unlock()
		return SpinResult{}, ErrSpinInProgress
	}
	req := *s.pending
	epoch := s.epoch
	s.drawing = true
	s.mu.Unlock()

	return s.resolve(req, epoch), nil
}

// Play делает ставку и сразу её разыгрывает.
func (s *Session) Play(req SpinRequest) (SpinResult, error) {
	s.mu.Lock()
	if err := s.placeLocked(req); err != nil {
		s.mu.Unlock()
		return SpinResult{}, err
	}
	s.drawing = true
	epoch := s.epoch
	bal := s.balance
	ls := s.snapshotListeners()
	s.mu.Unlock()

	dispatch(ls, balanceEvent(bal))
	return s.resolve(req, epoch), nil
}

// Reset возвращает сессию в Empty с нулевым балансом.
// Списанная ставка аннулируется: она всё равно разыгрывается, но выигрыш
// не зачисляется. Ставка, которую ещё не крутили, ждёт следующего Spin.
func (s *Session) Reset() {
	s.mu.Lock()
	if s.pending != nil && !s.drawing {
		s.forfeited = append(s.forfeited, *s.pending)
	}
	changed := !s.balance.IsZero()
	s.balance = decimal.Zero
	s.active = false
	s.pending = nil
	s.drawing = false
	s.epoch++
	ls := s.snapshotListeners()
	s.mu.Unlock()

	if changed {
		dispatch(ls, balanceEvent(decimal.Zero))
	}
}

// placeLocked проверяет ставку и списывает её. Вызывается под s.mu.
func (s *Session) placeLocked(req SpinRequest) error {
	if s.pending != nil {
		return ErrSpinInProgress
	}
	if !s.active {
		return ErrSessionInactive
	}
	if req.Lines < 1 || req.Lines > s.engine.MaxLines() {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidLines, req.Lines, s.engine.MaxLines())
	}
	if !req.Bet.IsPositive() {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidBet, req.Bet)
	}
	stake := req.Stake()
	if stake.GreaterThan(s.balance) {
		return fmt.Errorf("%w: stake %s exceeds balance %s", ErrInsufficientFunds, stake, s.balance)
	}

	s.balance = s.balance.Sub(stake)
	pending := req
	s.pending = &pending
	return nil
}

// resolve крутит барабаны без блокировки, затем рассчитывает.
func (s *Session) resolve(req SpinRequest, epoch uint64) SpinResult {
	return s.settle(s.engine.Spin(req), epoch)
}

// settle зачисляет выигрыш и завершает сессию, если баланс кончился.
// Проверка на ноль идёт после зачисления. Спин, сделанный до Reset,
// помечается как аннулированный и не зачисляется.
func (s *Session) settle(res SpinResult, epoch uint64) SpinResult {
	s.mu.Lock()
	if epoch != s.epoch {
		res = forfeit(res)
		ls := s.snapshotListeners()
		s.mu.Unlock()
		dispatch(ls, spinEvent(res))
		return res
	}

	s.pending = nil
	s.drawing = false
	s.balance = s.balance.Add(res.Winnings)
	if s.balance.Sign() <= 0 {
		s.balance = decimal.Zero
		s.active = false
		res.Ended = true
	}
	res.Balance = s.balance
	ls := s.snapshotListeners()
	s.mu.Unlock()

	events := []event{spinEvent(res)}
	if res.Winnings.IsPositive() {
		events = append(events, balanceEvent(res.Balance))
	}
	if res.Ended {
		events = append(events, endedEvent())
	}
	dispatch(ls, events...)
	return res
}

// forfeit обнуляет выплату результата для сброшенной сессии.
func forfeit(res SpinResult) SpinResult {
	res.Forfeited = true
	res.Winnings = decimal.Zero
	res.Balance = decimal.Zero
	res.Ended = false
	return res
}

// snapshotListeners копирует список слушателей. Вызывается под s.mu.
func (s *Session) snapshotListeners() []Listener {
	return append([]Listener(nil), s.listeners...)
}

func dispatch(ls []Listener, events ...event) {
	for _, ev := range events {
		for _, l := range ls {
			ev(l)
		}
	}
}
