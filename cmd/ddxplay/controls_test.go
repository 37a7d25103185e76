package main

import (
	"strings"
	"testing"

	"github.com/cwbudde/ddxverb/dsp/effects/reverb"
)

func TestHandleKey(t *testing.T) {
	store := reverb.NewParamStore()

	tests := []struct {
		key  byte
		want action
	}{
		{'q', actionQuit},
		{3, actionQuit},
		{'r', actionReset},
		{'b', actionChanged},
		{'s', actionChanged},
		{'D', actionChanged},
		{'w', actionChanged},
		{'?', actionNone},
	}

	for _, tc := range tests {
		if got := handleKey(store, tc.key); got != tc.want {
			t.Errorf("handleKey(%q) = %v, want %v", tc.key, got, tc.want)
		}
	}

	p := store.Snapshot()

	if !p.Bypass || !p.UseVectorized {
		t.Errorf("toggles not applied: %+v", p)
	}

	if p.DecaySeconds != 5.5 {
		t.Errorf("decay = %g, want 5.5", p.DecaySeconds)
	}

	if p.Wet != 0.45 {
		t.Errorf("wet = %g, want 0.45", p.Wet)
	}
}

func TestHandleKeyClamps(t *testing.T) {
	store := reverb.NewParamStore()

	for range 100 {
		handleKey(store, 'p')
	}

	if got := store.Snapshot().PredelayMs; got != 0 {
		t.Fatalf("predelay = %g, want clamped 0", got)
	}
}

func TestStatusLine(t *testing.T) {
	p := reverb.DefaultParameters()
	p.Bypass = true

	line := statusLine(p, 0.034)

	for _, want := range []string{"decay 5.0s", "pre 50ms", "wet 0.50", "scalar", "bypassed", "cpu 3.4%"} {
		if !strings.Contains(line, want) {
			t.Errorf("status line %q lacks %q", line, want)
		}
	}

	if !strings.Contains(helpText(), "d/D decay") {
		t.Errorf("help text lacks decay binding: %q", helpText())
	}
}
