package slots

import (
	"errors"
	"testing"
)

func TestSimulate_ConvergesToTheoreticalRTP(t *testing.T) {
	if testing.Short() {
		t.Skip("long simulation")
	}
	e := newClassicEngine(t, NewSeededRNG(20240601))

	stats, err := Simulate(e, SimParams{Spins: 100000, Bet: dec("1"), Lines: 1})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	want, _ := e.TheoreticalRTP().Float64()
	got, _ := stats.RTP.Float64()
	if d := got - want; d > 0.02 || d < -0.02 {
		t.Fatalf("rtp: want %.4f ± 0.02, got %.4f", want, got)
	}
	assertDecimal(t, "wagered", stats.Wagered, "100000")
	if stats.HitRate <= 0 || stats.HitRate >= 1 {
		t.Fatalf("hit rate out of range: %f", stats.HitRate)
	}
	// A is the rarest symbol
	if stats.LineHits["A"] >= stats.LineHits["D"] {
		t.Fatalf("line hits: A=%d should be below D=%d", stats.LineHits["A"], stats.LineHits["D"])
	}
}

func TestSimulate_Reproducible(t *testing.T) {
	run := func() SimStats {
		stats, err := Simulate(newClassicEngine(t, NewSeededRNG(99)), SimParams{Spins: 2000, Bet: dec("0.1"), Lines: 3})
		if err != nil {
			t.Fatalf("Simulate: %v", err)
		}
		return stats
	}
	a, b := run(), run()
	if !a.Won.Equal(b.Won) || a.HitRate != b.HitRate {
		t.Fatalf("same seed, different runs: %s/%f vs %s/%f", a.Won, a.HitRate, b.Won, b.HitRate)
	}
}

func TestSimulate_RejectsBadParams(t *testing.T) {
	e := newClassicEngine(t, nil)
	if _, err := Simulate(e, SimParams{Spins: 0, Bet: dec("1"), Lines: 1}); err == nil {
		t.Fatalf("zero spins must fail")
	}
	if _, err := Simulate(e, SimParams{Spins: 10, Bet: dec("1"), Lines: 4}); !errors.Is(err, ErrInvalidLines) {
		t.Fatalf("want ErrInvalidLines, got %v", err)
	}
	if _, err := Simulate(e, SimParams{Spins: 10, Bet: dec("0"), Lines: 1}); !errors.Is(err, ErrInvalidBet) {
		t.Fatalf("want ErrInvalidBet, got %v", err)
	}
}
