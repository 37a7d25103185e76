package main

import (
	"fmt"
	"strings"

	"github.com/cwbudde/ddxverb/dsp/effects/reverb"
)

type action int

const (
	actionNone action = iota
	actionChanged
	actionReset
	actionQuit
)

// keyBinding nudges a parameter down (lower-case key) or up (upper-case).
type keyBinding struct {
	down, up byte
	id       reverb.ParamID
	step     float64
}

var keyBindings = []keyBinding{
	{'d', 'D', reverb.ParamDecay, 0.5},
	{'p', 'P', reverb.ParamPredelay, 10},
	{'m', 'M', reverb.ParamDamping, 5},
	{'f', 'F', reverb.ParamDiffusion, 1},
	{'h', 'H', reverb.ParamHiCut, 1},
	{'x', 'X', reverb.ParamBassMultiply, 1},
	{'w', 'W', reverb.ParamWet, 0.05},
}

// handleKey applies one key press to the store and reports what happened.
func handleKey(store *reverb.ParamStore, key byte) action {
	switch key {
	case 'q', 'Q', 3: // 3 is Ctrl-C in raw mode
		return actionQuit
	case 'r', 'R':
		return actionReset
	case 'b', 'B':
		store.Toggle(reverb.ParamBypass)
		return actionChanged
	case 's', 'S':
		store.Toggle(reverb.ParamVectorized)
		return actionChanged
	}

	for _, kb := range keyBindings {
		switch key {
		case kb.down:
			store.Nudge(kb.id, -kb.step)
			return actionChanged
		case kb.up:
			store.Nudge(kb.id, kb.step)
			return actionChanged
		}
	}

	return actionNone
}

func helpText() string {
	var b strings.Builder

	b.WriteString("keys: ")

	for _, kb := range keyBindings {
		d, _ := reverb.DescriptorFor(kb.id)
		fmt.Fprintf(&b, "%c/%c %s  ", kb.down, kb.up, d.Key)
	}

	b.WriteString("b bypass  s simd  r reset  q quit")

	return b.String()
}

// statusLine renders the current parameters and CPU load on one line.
func statusLine(p reverb.Parameters, load float64) string {
	state := "on"
	if p.Bypass {
		state = "bypassed"
	}

	return fmt.Sprintf("decay %.1fs  pre %.0fms  damp %.0f%%  diff %.1f  hicut %.1fdB  bass %+.1f  wet %.2f  [%s, %s]  cpu %.1f%%",
		p.DecaySeconds, p.PredelayMs, p.DampingPercent, p.Diffusion, p.HiCutDB, p.BassMultiply, p.Wet,
		p.Strategy(), state, load*100)
}
