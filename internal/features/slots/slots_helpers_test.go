package slots

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

// scriptRNG replays fixed indices, wrapped into [0, n).
type scriptRNG struct {
	mu   sync.Mutex
	vals []int
	i    int
}

func (s *scriptRNG) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

// Classic pool order is A A B B B B C.. D..; these scripts pick from it.
var (
	// rows AAA, AAA, BBB
	scriptAllWin = []int{0}
	// rows ADA, ADA, BDB
	scriptNoWin = []int{0, 0, 0, 19, 18, 17, 0, 0, 0}
)

func newClassicEngine(t *testing.T, rng RandomSource) *Engine {
	t.Helper()
	e, err := NewEngine(ClassicConfig(), rng)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, what string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Fatalf("%s: want %s, got %s", what, want, got)
	}
}
