package casino

import (
	"context"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"serotonyl.ru/slots-bot/internal/common"
	"serotonyl.ru/slots-bot/internal/config"
	"serotonyl.ru/slots-bot/internal/features/slots"
)

type fakeJournal struct {
	mu    sync.Mutex
	spins []*SpinRecord
	err   error
}

func (j *fakeJournal) SaveSpin(_ context.Context, rec *SpinRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil {
		return j.err
	}
	j.spins = append(j.spins, rec)
	return nil
}

func (j *fakeJournal) GetStats(_ context.Context, userID int64) (*Stats, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	s := &Stats{UserID: userID, TotalWagered: decimal.Zero, TotalWon: decimal.Zero, BiggestWin: decimal.Zero}
	for _, rec := range j.spins {
		if rec.UserID != userID {
			continue
		}
		s.TotalSpins++
		s.TotalWagered = s.TotalWagered.Add(rec.Stake)
		s.TotalWon = s.TotalWon.Add(rec.Winnings)
		if rec.Winnings.GreaterThan(s.BiggestWin) {
			s.BiggestWin = rec.Winnings
		}
		if rec.Ended {
			s.SessionsEnded++
		}
		s.LastSpinAt = rec.CreatedAt
	}
	if s.TotalSpins == 0 {
		return nil, common.ErrNoStats
	}
	return s, nil
}

func (j *fakeJournal) records() []*SpinRecord {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]*SpinRecord(nil), j.spins...)
}

// fakeSender records everything the handler sends.
type fakeSender struct {
	mu   sync.Mutex
	sent []tgbotapi.Chattable
	next int
}

func (s *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, c)
	s.next++
	return tgbotapi.Message{MessageID: s.next}, nil
}

func (s *fakeSender) texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, c := range s.sent {
		switch m := c.(type) {
		case tgbotapi.MessageConfig:
			out = append(out, m.Text)
		case tgbotapi.EditMessageTextConfig:
			out = append(out, m.Text)
		}
	}
	return out
}

func (s *fakeSender) last(t *testing.T) string {
	t.Helper()
	texts := s.texts()
	if len(texts) == 0 {
		t.Fatalf("nothing was sent")
	}
	return texts[len(texts)-1]
}

// gateRNG holds its first draw until release is closed.
type gateRNG struct {
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGateRNG() *gateRNG {
	return &gateRNG{entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gateRNG) IntN(int) int {
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	return 0
}

func testConfig() *config.Config {
	return &config.Config{
		AppTimezone:        "UTC",
		SlotsMaxDeposit:    decimal.NewFromInt(1000),
		SessionIdleTimeout: time.Hour,
		SimDefaultSpins:    200,
	}
}

func newTestService(t *testing.T, journal Journal) *Service {
	t.Helper()
	engine, err := slots.NewEngine(slots.ClassicConfig(), slots.NewSeededRNG(11))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return NewService(engine, journal, testConfig())
}
