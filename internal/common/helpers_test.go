package common

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"5", "5"},
		{"999", "999"},
		{"2350", "2 350"},
		{"1234567.5", "1 234 567.5"},
		{"0.125", "0.125"},
		{"0.004", "0.004"},
		{"-2350.10", "-2 350.1"},
		{"100.00", "100"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FormatMoney(decimal.RequireFromString(tt.in)); got != tt.want {
				t.Fatalf("FormatMoney(%s): want %q, got %q", tt.in, tt.want, got)
			}
		})
	}
}

func TestFormatCredits(t *testing.T) {
	if got := FormatCredits(decimal.NewFromInt(1)); got != "1 credit" {
		t.Fatalf("want %q, got %q", "1 credit", got)
	}
	if got := FormatCredits(decimal.NewFromInt(1500)); got != "1 500 credits" {
		t.Fatalf("want %q, got %q", "1 500 credits", got)
	}
}

func TestFormatSignedAndPercent(t *testing.T) {
	if got := FormatSigned(decimal.NewFromInt(7)); got != "+7" {
		t.Fatalf("FormatSigned(7): got %q", got)
	}
	if got := FormatSigned(decimal.NewFromInt(-3)); got != "-3" {
		t.Fatalf("FormatSigned(-3): got %q", got)
	}
	if got := FormatPercent(decimal.RequireFromString("0.246")); got != "24.60%" {
		t.Fatalf("FormatPercent: got %q", got)
	}
}

func TestPluralize(t *testing.T) {
	if got := FormatCount(1, "line", "lines"); got != "1 line" {
		t.Fatalf("got %q", got)
	}
	if got := FormatCount(10000, "spin", "spins"); got != "10 000 spins" {
		t.Fatalf("got %q", got)
	}
	if got := FormatNumber(1000001); got != "1 000 001" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2024, 3, 9, 21, 30, 0, 0, time.UTC)
	if got := FormatDateTime(ts, nil); got != "09.03.2024 21:30" {
		t.Fatalf("got %q", got)
	}
}
