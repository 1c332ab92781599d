package bot

import (
	"reflect"
	"testing"
)

func TestParseCommand(t *testing.T) {
	p := NewCommandParser("SlotsBot")

	tests := []struct {
		text      string
		wantCmd   string
		wantArgs  []string
		isCommand bool
	}{
		{text: "/spin 5 3", wantCmd: "spin", wantArgs: []string{"5", "3"}, isCommand: true},
		{text: "  /DEPOSIT   100 ", wantCmd: "deposit", wantArgs: []string{"100"}, isCommand: true},
		{text: "/spin@slotsbot 1", wantCmd: "spin", wantArgs: []string{"1"}, isCommand: true},
		{text: "/spin@OtherBot 1"},
		{text: "!balance", wantCmd: "balance", isCommand: true},
		{text: ".paytable", wantCmd: "paytable", isCommand: true},
		{text: "hello there"},
		{text: "/"},
		{text: "/@slotsbot"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			cmd, args, ok := p.ParseCommand(tt.text)
			if ok != tt.isCommand {
				t.Fatalf("isCommand: want %v, got %v", tt.isCommand, ok)
			}
			if cmd != tt.wantCmd {
				t.Fatalf("cmd: want %q, got %q", tt.wantCmd, cmd)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Fatalf("args: want %v, got %v", tt.wantArgs, args)
			}
		})
	}
}

func TestParseCommand_NoBotName(t *testing.T) {
	p := NewCommandParser("")
	cmd, _, ok := p.ParseCommand("/rtp@anybot 100")
	if !ok || cmd != "rtp" {
		t.Fatalf("without a bot name any mention is accepted, got %q %v", cmd, ok)
	}
}
