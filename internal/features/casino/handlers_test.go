package casino

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"serotonyl.ru/slots-bot/internal/features/slots"
)

func newTestHandler(t *testing.T, journal Journal, delay time.Duration) (*Handler, *fakeSender) {
	t.Helper()
	sender := &fakeSender{}
	h := NewHandler(newTestService(t, journal), sender)
	h.revealDelay = delay
	return h, sender
}

func TestParseSpinArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantBet   string
		wantLines int
		wantErr   error
	}{
		{name: "bet only", args: []string{"5"}, wantBet: "5", wantLines: 1},
		{name: "bet and lines", args: []string{"0.5", "3"}, wantBet: "0.5", wantLines: 3},
		{name: "no args", wantErr: slots.ErrInvalidBet},
		{name: "bad bet", args: []string{"five"}, wantErr: slots.ErrInvalidBet},
		{name: "sub-cent bet", args: []string{"0.005", "1"}, wantErr: slots.ErrInvalidBet},
		{name: "bad lines", args: []string{"1", "all"}, wantErr: slots.ErrInvalidLines},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := parseSpinArgs(tt.args)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSpinArgs: %v", err)
			}
			if !req.Bet.Equal(decimal.RequireFromString(tt.wantBet)) || req.Lines != tt.wantLines {
				t.Fatalf("want %s×%d, got %s×%d", tt.wantBet, tt.wantLines, req.Bet, req.Lines)
			}
		})
	}
}

func TestHandler_DepositAndSpin(t *testing.T) {
	h, sender := newTestHandler(t, nil, 0)
	ctx := context.Background()

	h.HandleDeposit(1, 10, []string{"abc"})
	if got := sender.last(t); !strings.Contains(got, "positive number") {
		t.Fatalf("bad amount reply: %q", got)
	}

	// a sub-cent deposit would fund a session that displays as 0
	h.HandleDeposit(1, 10, []string{"0.004"})
	if got := sender.last(t); !strings.Contains(got, "at most 2 decimals") {
		t.Fatalf("sub-cent amount reply: %q", got)
	}
	if _, state := h.service.Balance(10); state != slots.StateEmpty {
		t.Fatalf("sub-cent deposit must not fund the session")
	}

	h.HandleSpin(ctx, 1, 10, []string{"1"})
	if got := sender.last(t); !strings.Contains(got, "Deposit first") {
		t.Fatalf("spin before deposit reply: %q", got)
	}

	h.HandleDeposit(1, 10, []string{"100"})
	if got := sender.last(t); !strings.Contains(got, "100 credits") {
		t.Fatalf("deposit reply: %q", got)
	}

	h.HandleSpin(ctx, 1, 10, []string{"1", "9"})
	if got := sender.last(t); !strings.Contains(got, "between 1 and 3") {
		t.Fatalf("lines reply: %q", got)
	}

	h.HandleSpin(ctx, 1, 10, []string{"200", "1"})
	if got := sender.last(t); !strings.Contains(got, "Not enough credits") {
		t.Fatalf("funds reply: %q", got)
	}

	h.HandleSpin(ctx, 1, 10, []string{"1", "3"})
	got := sender.last(t)
	if !strings.Contains(got, "🎰 SLOTS 🎰") || !strings.Contains(got, "Balance:") {
		t.Fatalf("spin reply: %q", got)
	}
}

func TestHandler_RevealEditsPlaceholder(t *testing.T) {
	h, sender := newTestHandler(t, nil, time.Millisecond)
	h.HandleDeposit(1, 10, []string{"50"})
	before := len(sender.sent)

	h.HandleSpin(context.Background(), 1, 10, []string{"1"})

	sent := sender.sent[before:]
	if len(sent) != 2 {
		t.Fatalf("want placeholder and edit, got %d messages", len(sent))
	}
	first, ok := sent[0].(tgbotapi.MessageConfig)
	if !ok || !strings.Contains(first.Text, "Spinning") {
		t.Fatalf("first message must be the placeholder: %#v", sent[0])
	}
	edit, ok := sent[1].(tgbotapi.EditMessageTextConfig)
	if !ok {
		t.Fatalf("second message must be an edit: %#v", sent[1])
	}
	if !strings.Contains(edit.Text, "SLOTS") {
		t.Fatalf("edit text: %q", edit.Text)
	}
}

func TestHandler_BalanceResetStats(t *testing.T) {
	h, sender := newTestHandler(t, nil, 0)

	h.HandleBalance(1, 10)
	if got := sender.last(t); !strings.Contains(got, "No credits") {
		t.Fatalf("empty balance reply: %q", got)
	}

	h.HandleDeposit(1, 10, []string{"25"})
	h.HandleBalance(1, 10)
	if got := sender.last(t); !strings.Contains(got, "25 credits") {
		t.Fatalf("balance reply: %q", got)
	}

	h.HandleReset(1, 10)
	h.HandleBalance(1, 10)
	if got := sender.last(t); !strings.Contains(got, "No credits") {
		t.Fatalf("balance after reset: %q", got)
	}

	h.HandleStats(context.Background(), 1, 10)
	if got := sender.last(t); !strings.Contains(got, "turned off") {
		t.Fatalf("stats reply: %q", got)
	}
}

func TestHandler_StatsFromJournal(t *testing.T) {
	h, sender := newTestHandler(t, &fakeJournal{}, 0)
	ctx := context.Background()

	h.HandleStats(ctx, 1, 10)
	if got := sender.last(t); !strings.Contains(got, "No spins recorded") {
		t.Fatalf("empty stats reply: %q", got)
	}

	h.HandleDeposit(1, 10, []string{"100"})
	h.HandleSpin(ctx, 1, 10, []string{"1", "2"})
	h.HandleStats(ctx, 1, 10)
	if got := sender.last(t); !strings.Contains(got, "Spins: 1") {
		t.Fatalf("stats reply: %q", got)
	}
}

func TestHandler_PaytableAndRTP(t *testing.T) {
	h, sender := newTestHandler(t, nil, 0)

	h.HandlePaytable(1)
	got := sender.last(t)
	if !strings.Contains(got, "24.60%") || !strings.Contains(got, "A  ×5") {
		t.Fatalf("paytable reply: %q", got)
	}

	h.HandleRTP(1, 10, []string{"500"})
	if got := sender.last(t); !strings.Contains(got, "500 spins") || !strings.Contains(got, "Theoretical RTP: 24.60%") {
		t.Fatalf("rtp reply: %q", got)
	}

	h.HandleRTP(1, 10, []string{"-3"})
	if got := sender.last(t); !strings.Contains(got, "Usage") {
		t.Fatalf("bad rtp arg reply: %q", got)
	}
}
