package main

import (
	"errors"
	"os"

	"golang.org/x/term"

	"github.com/justyntemme/dronesynth/pkg/drone"
)

const keyHelp = "keys: q quit, [ ] cutoff, - = output, , . delay center\r\n"

type binding struct {
	id    uint32
	delta float64
}

var keyBindings = map[byte]binding{
	'[': {drone.ParamCutoff, -100},
	']': {drone.ParamCutoff, 100},
	'-': {drone.ParamOutputGain, -5},
	'=': {drone.ParamOutputGain, 5},
	',': {drone.ParamDelayTime, -250},
	'.': {drone.ParamDelayTime, 250},
}

// handleKey applies one key press to the engine's parameters and returns
// the new parameter reading. quit is set for q, Ctrl-C and Ctrl-D.
func handleKey(e *drone.Engine, key byte) (status string, quit bool) {
	switch key {
	case 'q', 'Q', 0x03, 0x04:
		return "", true
	}

	b, ok := keyBindings[key]
	if !ok {
		return "", false
	}
	if _, err := e.Adjust(b.id, b.delta); err != nil {
		return err.Error(), false
	}
	return e.GetParameters().Get(b.id).String(), false
}

var errNotTerminal = errors.New("stdin is not a terminal")

// terminal holds stdin in raw mode and streams its bytes
type terminal struct {
	fd    int
	state *term.State
	keys  chan byte
}

func openTerminal(f *os.File) (*terminal, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, errNotTerminal
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	t := &terminal{fd: fd, state: state, keys: make(chan byte, 16)}
	go func() {
		defer close(t.keys)
		buf := make([]byte, 1)
		for {
			n, err := f.Read(buf)
			if n > 0 {
				t.keys <- buf[0]
			}
			if err != nil {
				return
			}
		}
	}()
	return t, nil
}

// Keys delivers each byte typed; it is closed when stdin ends
func (t *terminal) Keys() <-chan byte {
	return t.keys
}

// Restore leaves raw mode
func (t *terminal) Restore() {
	_ = term.Restore(t.fd, t.state)
}
