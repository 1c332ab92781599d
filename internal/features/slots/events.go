package slots

import (
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Listener получает события сессии.
// Вызовы происходят после изменения состояния, вне блокировки сессии,
// в том порядке, в котором менялось состояние.
type Listener interface {
	BalanceChanged(balance decimal.Decimal)
	SpinResolved(result SpinResult)
	SessionEnded()
}

// NopListener ничего не делает. Встраивается, чтобы обработать только
// часть событий.
type NopListener struct{}

func (NopListener) BalanceChanged(decimal.Decimal) {}
func (NopListener) SpinResolved(SpinResult)        {}
func (NopListener) SessionEnded()                  {}

// ListenerFuncs превращает обычные функции в Listener. Nil-поля пропускаются.
type ListenerFuncs struct {
	OnBalanceChanged func(balance decimal.Decimal)
	OnSpinResolved   func(result SpinResult)
	OnSessionEnded   func()
}

func (f ListenerFuncs) BalanceChanged(balance decimal.Decimal) {
	if f.OnBalanceChanged != nil {
		f.OnBalanceChanged(balance)
	}
}

func (f ListenerFuncs) SpinResolved(result SpinResult) {
	if f.OnSpinResolved != nil {
		f.OnSpinResolved(result)
	}
}

func (f ListenerFuncs) SessionEnded() {
	if f.OnSessionEnded != nil {
		f.OnSessionEnded()
	}
}

// LogListener пишет каждое событие в лог на уровне debug.
type LogListener struct {
	Entry *log.Entry
}

// NewLogListener добавляет к событиям id сессии.
func NewLogListener(sessionID string) LogListener {
	return LogListener{Entry: log.WithField("session_id", sessionID)}
}

func (l LogListener) BalanceChanged(balance decimal.Decimal) {
	l.Entry.WithField("balance", balance.String()).Debug("Баланс изменён")
}

func (l LogListener) SpinResolved(result SpinResult) {
	l.Entry.WithFields(log.Fields{
		"bet":       result.Bet.String(),
		"lines":     result.Lines,
		"winnings":  result.Winnings.String(),
		"balance":   result.Balance.String(),
		"forfeited": result.Forfeited,
	}).Debug("Спин завершён")
}

func (l LogListener) SessionEnded() {
	l.Entry.Debug("Сессия завершена")
}

// event: отложенное уведомление, доставляется после снятия блокировки.
type event func(Listener)

func balanceEvent(b decimal.Decimal) event {
	return func(l Listener) { l.BalanceChanged(b) }
}

func spinEvent(r SpinResult) event {
	return func(l Listener) { l.SpinResolved(r) }
}

func endedEvent() event {
	return func(l Listener) { l.SessionEnded() }
}
