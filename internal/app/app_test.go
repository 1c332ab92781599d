package app

import (
	"os"
	"path/filepath"
	"testing"

	"serotonyl.ru/slots-bot/internal/config"
)

func TestNewEngine_Preset(t *testing.T) {
	e, err := newEngine(&config.Config{SlotsSymbolSet: "classic", SlotsSeed: 7})
	if err != nil {
		t.Fatalf("newEngine: %v", err)
	}
	if e.Rows() != 3 || e.Cols() != 3 || e.PoolSize() != 20 {
		t.Fatalf("unexpected geometry %dx%d pool %d", e.Rows(), e.Cols(), e.PoolSize())
	}
}

func TestNewEngine_UnknownPreset(t *testing.T) {
	if _, err := newEngine(&config.Config{SlotsSymbolSet: "nope"}); err == nil {
		t.Fatalf("unknown symbol set must fail")
	}
}

func TestNewEngine_BrokenPaytableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paytable.yaml")
	if err := os.WriteFile(path, []byte("symbols: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := newEngine(&config.Config{SlotsSymbolSet: "classic", SlotsPaytablePath: path}); err == nil {
		t.Fatalf("malformed paytable must fail")
	}
}
