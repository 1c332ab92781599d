// Package common: errors.go содержит ошибки уровня приложения, общие для
// чат-интерфейса, журнала спинов и ops-сервера. Ошибки движка и сессии
// лежат в пакете slots.
package common

import "errors"

// Лимиты депозита
var (
	// ErrDepositTooLarge: сумма больше SLOTS_MAX_DEPOSIT.
	ErrDepositTooLarge = errors.New("deposit above the table limit")
)

// Журнал
var (
	// ErrJournalDisabled: FEATURE_JOURNAL_ENABLED выключен, истории нет.
	ErrJournalDisabled = errors.New("spin journal is disabled")
	// ErrNoStats: у игрока ещё нет записанных спинов.
	ErrNoStats = errors.New("no statistics yet")
)

// Симуляция
var (
	// ErrTooManySpins: запрошено больше спинов, чем разрешено.
	ErrTooManySpins = errors.New("too many spins requested")
)
