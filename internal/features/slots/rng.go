package slots

import (
	cryptoRand "crypto/rand"
	"math/big"
	"math/rand/v2"
	"sync"
)

// RandomSource выбирает позиции на барабане.
type RandomSource interface {
	// IntN возвращает равномерное целое из [0, n). n всегда > 0.
	IntN(n int) int
}

// cryptoRNG: источник по умолчанию для живой игры.
type cryptoRNG struct{}

func (cryptoRNG) IntN(n int) int {
	v, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// запасной вариант: math/rand/v2, тоже равномерный
		return rand.IntN(n)
	}
	return int(v.Int64())
}

// DefaultRNG возвращает источник на crypto/rand.
func DefaultRNG() RandomSource { return cryptoRNG{} }

// seededRNG воспроизводим (тесты, симуляции). Под мьютексом: один движок
// общий для всех сессий.
type seededRNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededRNG возвращает детерминированный источник для seed.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}
