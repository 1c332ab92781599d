// Package casino: service.go хранит по одной слот-сессии на игрока
// и выполняет депозиты, спины и симуляции на общем движке.
package casino

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/slots-bot/internal/common"
	"serotonyl.ru/slots-bot/internal/config"
	"serotonyl.ru/slots-bot/internal/features/slots"
)

// MaxSimSpins: предел числа спинов в /rtp.
const MaxSimSpins = 1_000_000

// player: живая сессия и время последнего обращения к ней.
type player struct {
	session  *slots.Session
	lastSeen time.Time
}

// Service управляет сессиями игроков.
type Service struct {
	engine    *slots.Engine
	simEngine *slots.Engine
	journal   Journal // nil, если журнал выключен
	cfg       *config.Config
	now       func() time.Time

	mu      sync.Mutex
	players map[int64]*player
}

// NewService создаёт сервис казино.
//
// Параметры:
//   - engine: движок живых сессий
//   - journal: журнал спинов, может быть nil
//   - cfg: конфигурация (лимиты, таймауты, симуляция)
func NewService(engine *slots.Engine, journal Journal, cfg *config.Config) *Service {
	// у симуляций свой источник случайности, засеянная живая
	// последовательность не сдвигается
	simEngine, err := slots.NewEngine(engine.Config(), nil)
	if err != nil {
		log.WithError(err).Warn("Движок симуляции не создан, используем живой движок")
		simEngine = engine
	}

	return &Service{
		engine:    engine,
		simEngine: simEngine,
		journal:   journal,
		cfg:       cfg,
		now:       time.Now,
		players:   make(map[int64]*player),
	}
}

// Engine возвращает движок живых сессий.
func (s *Service) Engine() *slots.Engine { return s.engine }

// session возвращает сессию игрока, создавая её при первом обращении.
func (s *Service) session(userID int64) *slots.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[userID]
	if !ok {
		sess := slots.NewSession(s.engine)
		sess.Subscribe(slots.NewLogListener(sess.ID()))
		if s.journal != nil {
			sess.Subscribe(newRecorder(s.journal, userID, sess.ID(), s.now))
		}
		p = &player{session: sess}
		s.players[userID] = p

		log.WithFields(log.Fields{
			"user_id":    userID,
			"session_id": sess.ID(),
		}).Debug("Сессия создана")
	}
	p.lastSeen = s.now()
	return p.session
}

// lookup возвращает сессию, не создавая новую.
func (s *Service) lookup(userID int64) (*slots.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[userID]
	if !ok {
		return nil, false
	}
	p.lastSeen = s.now()
	return p.session, true
}

// Deposit пополняет сессию игрока.
// Суммы больше SLOTS_MAX_DEPOSIT отклоняются (ErrDepositTooLarge).
func (s *Service) Deposit(userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.GreaterThan(s.cfg.SlotsMaxDeposit) {
		return decimal.Zero, fmt.Errorf("%w: max %s", common.ErrDepositTooLarge, s.cfg.SlotsMaxDeposit)
	}
	sess := s.session(userID)
	if err := sess.Deposit(amount); err != nil {
		return decimal.Zero, err
	}
	return sess.Balance(), nil
}

// Spin делает ставку и разыгрывает её. Результат пишется в журнал,
// ошибка журнала только логируется.
func (s *Service) Spin(userID int64, req slots.SpinRequest) (slots.SpinResult, error) {
	sess := s.session(userID)
	res, err := sess.Play(req)
	if err != nil {
		return slots.SpinResult{}, err
	}

	if res.Ended {
		log.WithFields(log.Fields{
			"user_id":    userID,
			"session_id": sess.ID(),
		}).Info("Сессия завершена: баланс исчерпан")
	}
	return res, nil
}

// Balance возвращает баланс игрока и состояние сессии.
func (s *Service) Balance(userID int64) (decimal.Decimal, slots.State) {
	sess, ok := s.lookup(userID)
	if !ok {
		return decimal.Zero, slots.StateEmpty
	}
	return sess.Balance(), sess.State()
}

// Reset обнуляет сессию игрока.
func (s *Service) Reset(userID int64) {
	if sess, ok := s.lookup(userID); ok {
		sess.Reset()
	}
}

// Stats возвращает итоги игрока из журнала.
func (s *Service) Stats(ctx context.Context, userID int64) (*Stats, error) {
	if s.journal == nil {
		return nil, common.ErrJournalDisabled
	}
	return s.journal.GetStats(ctx, userID)
}

// Simulate прогоняет spins спинов со ставкой 1 на все линии
// на отдельном движке. spins <= 0 означает SIM_DEFAULT_SPINS.
func (s *Service) Simulate(spins int) (slots.SimStats, error) {
	if spins <= 0 {
		spins = s.cfg.SimDefaultSpins
	}
	if spins > MaxSimSpins {
		return slots.SimStats{}, fmt.Errorf("%w: max %d", common.ErrTooManySpins, MaxSimSpins)
	}
	return slots.Simulate(s.simEngine, slots.SimParams{
		Spins: spins,
		Bet:   decimal.NewFromInt(1),
		Lines: s.engine.MaxLines(),
	})
}

// ActiveSessions: число отслеживаемых игроков.
func (s *Service) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}

// SweepIdle сбрасывает и забывает сессии, простаивающие дольше
// SESSION_IDLE_TIMEOUT. Сессия с неразыгранной ставкой остаётся.
//
// Возвращает число удалённых сессий.
func (s *Service) SweepIdle(now time.Time) int {
	cutoff := now.Add(-s.cfg.SessionIdleTimeout)

	s.mu.Lock()
	var stale []*slots.Session
	for userID, p := range s.players {
		if p.lastSeen.After(cutoff) || p.session.Spinning() {
			continue
		}
		stale = append(stale, p.session)
		delete(s.players, userID)
	}
	s.mu.Unlock()

	for _, sess := range stale {
		sess.Reset()
	}
	return len(stale)
}
