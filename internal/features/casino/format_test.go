package casino

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"serotonyl.ru/slots-bot/internal/common"
	"serotonyl.ru/slots-bot/internal/features/slots"
)

func TestFormatResult(t *testing.T) {
	engine, err := slots.NewEngine(slots.ClassicConfig(), nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	grid := slots.Grid{
		{"A", "A", "A"},
		{"B", "C", "D"},
		{"D", "D", "D"},
	}
	bet := decimal.NewFromInt(1)
	winnings, lineWins := engine.Evaluate(grid, bet, 2)
	res := slots.SpinResult{
		Grid:     grid,
		Bet:      bet,
		Lines:    2,
		Stake:    decimal.NewFromInt(2),
		Winnings: winnings,
		LineWins: lineWins,
		Balance:  decimal.NewFromInt(103),
	}

	got := FormatResult(res)
	for _, want := range []string{
		"A | A | A   ✅ +5",
		"B | C | D\n",
		"D | D | D   ·", // inactive line is not paid
		"Bet: 1 × 2 lines = 2",
		"💰 Won: 5",
		"📊 Balance: 103 credits",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("result %q does not contain %q", got, want)
		}
	}
	if strings.Contains(got, "session is over") {
		t.Fatalf("funded session must not show the end notice")
	}

	res.Winnings = decimal.Zero
	res.LineWins = nil
	res.Balance = decimal.Zero
	res.Ended = true
	got = FormatResult(res)
	if !strings.Contains(got, "No win") || !strings.Contains(got, "session is over") {
		t.Fatalf("ended result: %q", got)
	}
}

func TestFormatResult_Forfeited(t *testing.T) {
	res := slots.SpinResult{
		Grid:      slots.Grid{{"A", "A", "A"}, {"B", "C", "D"}, {"D", "D", "D"}},
		Bet:       decimal.NewFromInt(1),
		Lines:     3,
		Stake:     decimal.NewFromInt(3),
		Winnings:  decimal.Zero,
		LineWins:  []slots.LineWin{{Line: 0, Symbol: "A", Won: true, Amount: decimal.NewFromInt(5)}},
		Balance:   decimal.Zero,
		Forfeited: true,
	}

	got := FormatResult(res)
	if !strings.Contains(got, "Forfeited") {
		t.Fatalf("forfeited notice missing: %q", got)
	}
	for _, unwanted := range []string{"✅", "Won:", "Balance:"} {
		if strings.Contains(got, unwanted) {
			t.Fatalf("forfeited result must not show %q: %q", unwanted, got)
		}
	}
}

func TestFormatStats(t *testing.T) {
	s := &Stats{
		TotalSpins:    12,
		TotalWagered:  decimal.NewFromInt(120),
		TotalWon:      decimal.NewFromInt(90),
		BiggestWin:    decimal.NewFromInt(40),
		SessionsEnded: 1,
		LastSpinAt:    time.Date(2024, 5, 1, 8, 15, 0, 0, time.UTC),
	}
	got := FormatStats(s, time.UTC)
	for _, want := range []string{"Spins: 12", "Net: -30", "Your RTP: 75.00%", "01.05.2024 08:15"} {
		if !strings.Contains(got, want) {
			t.Errorf("stats %q does not contain %q", got, want)
		}
	}
}

func TestErrorText(t *testing.T) {
	known := []error{
		slots.ErrInvalidAmount,
		slots.ErrInvalidBet,
		slots.ErrInvalidLines,
		slots.ErrInsufficientFunds,
		slots.ErrSpinInProgress,
		slots.ErrSessionActive,
		slots.ErrSessionInactive,
		fmt.Errorf("%w: max 1000", common.ErrDepositTooLarge),
		common.ErrJournalDisabled,
		common.ErrNoStats,
		common.ErrTooManySpins,
	}
	for _, err := range known {
		if _, ok := errorText(fmt.Errorf("wrapped: %w", err), 3); !ok {
			t.Errorf("%v must be a known error", err)
		}
	}

	text, ok := errorText(errors.New("boom"), 3)
	if ok || !strings.Contains(text, "Something went wrong") {
		t.Fatalf("unknown error: %q %v", text, ok)
	}
}
