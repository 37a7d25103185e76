package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// keyboard reads raw key presses from stdin.
type keyboard struct {
	fd       int
	oldState *term.State
	keys     chan byte
}

// openKeyboard puts stdin into raw mode and starts reading keys. It fails
// when stdin is not a terminal.
func openKeyboard() (*keyboard, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to set raw mode: %w", err)
	}

	k := &keyboard{fd: fd, oldState: oldState, keys: make(chan byte, 16)}

	go func() {
		defer close(k.keys)

		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}

			if n > 0 {
				k.keys <- buf[0]
			}
		}
	}()

	return k, nil
}

// Close restores the terminal state.
func (k *keyboard) Close() {
	if k.oldState != nil {
		_ = term.Restore(k.fd, k.oldState)
		k.oldState = nil
	}
}
