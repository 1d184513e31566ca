package main

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/1siamBot/adventure-engine/engine/input"
)

// defaultHold is how many frames a key counts as held after its last event.
// Terminals report presses and auto-repeat but never releases.
const defaultHold = 6

// Terminal is an input controller fed by tcell key events
type Terminal struct {
	input.Tracker
	Hold int

	mu    sync.Mutex
	frame int
	seen  [input.ButtonCount]int
	quit  bool
}

func NewTerminal() *Terminal {
	return &Terminal{Hold: defaultHold}
}

func buttonFor(ev *tcell.EventKey) (input.Button, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.ButtonDPadUp, true
	case tcell.KeyDown:
		return input.ButtonDPadDown, true
	case tcell.KeyLeft:
		return input.ButtonDPadLeft, true
	case tcell.KeyRight:
		return input.ButtonDPadRight, true
	case tcell.KeyEnter:
		return input.ButtonStart, true
	case tcell.KeyF1:
		return input.ButtonDebug, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w':
			return input.ButtonDPadUp, true
		case 's':
			return input.ButtonDPadDown, true
		case 'a':
			return input.ButtonDPadLeft, true
		case 'd':
			return input.ButtonDPadRight, true
		case ' ', 'z':
			return input.ButtonA, true
		case 'x':
			return input.ButtonB, true
		}
	}
	return 0, false
}

// Feed records a key event. Safe to call from the polling goroutine.
func (t *Terminal) Feed(ev *tcell.EventKey) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
		t.quit = true
		return
	}
	if b, ok := buttonFor(ev); ok {
		t.seen[b] = t.frame + 1
	}
}

// Quit reports whether a quit key was seen
func (t *Terminal) Quit() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.quit
}

func (t *Terminal) Update() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frame++
	t.Set(func(b input.Button) bool {
		return t.seen[b] != 0 && t.frame-t.seen[b] < t.Hold
	})
}
