package slots

import "errors"

// Ошибки валидации операций Session. Если вернулась одна из них,
// состояние сессии не изменилось.
var (
	// ErrInvalidAmount: депозит не число, не больше нуля или мельче 0.01.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidBet: ставка на линию не число, не больше нуля или мельче 0.01.
	ErrInvalidBet = errors.New("invalid bet")
	// ErrInvalidLines: число линий вне [1, maxLines].
	ErrInvalidLines = errors.New("invalid number of lines")
	// ErrInsufficientFunds: bet * lines больше баланса.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrSpinInProgress: предыдущий спин этой сессии ещё не разрешён.
	ErrSpinInProgress = errors.New("spin in progress")
	// ErrSessionActive: депозит в уже пополненную сессию.
	ErrSessionActive = errors.New("session already funded")
	// ErrSessionInactive: ставка до депозита.
	ErrSessionInactive = errors.New("session not funded")
	// ErrNoPendingBet: Spin без сделанной ставки.
	ErrNoPendingBet = errors.New("no bet placed")
)

// Ошибки конфигурации из NewEngine и LoadConfig.
var (
	// ErrPoolExhausted: пул барабана меньше числа строк.
	ErrPoolExhausted = errors.New("reel pool smaller than rows")
	// ErrInvalidConfig: набор символов или размеры сетки некорректны.
	ErrInvalidConfig = errors.New("invalid slots config")
)
