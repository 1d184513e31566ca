package input

import (
	"slices"
	"testing"

	"github.com/1siamBot/adventure-engine/engine/event"
)

func TestTrackerEdges(t *testing.T) {
	s := &Scripted{Frames: [][]Button{{ButtonA}, {ButtonA}, {}}}

	s.Update()
	if !s.IsDown(ButtonA) || !s.IsPressed(ButtonA) || s.IsReleased(ButtonA) {
		t.Fatal("frame 1: expected down+pressed")
	}
	s.Update()
	if !s.IsDown(ButtonA) || s.IsPressed(ButtonA) {
		t.Fatal("frame 2: expected held without press edge")
	}
	s.Update()
	if s.IsDown(ButtonA) || !s.IsReleased(ButtonA) {
		t.Fatal("frame 3: expected release edge")
	}
	s.Update()
	if s.IsReleased(ButtonA) {
		t.Fatal("release reported twice")
	}
}

func TestDispatchSynthesizesButtonEvents(t *testing.T) {
	m := event.NewManager()
	var log []string
	event.Subscribe(m, func(e ButtonPressed) { log = append(log, "pressed "+e.Button.String()) })
	event.Subscribe(m, func(e ButtonDown) { log = append(log, "down "+e.Button.String()) })
	event.Subscribe(m, func(e ButtonReleased) { log = append(log, "released "+e.Button.String()) })

	c := &Scripted{Frames: [][]Button{{ButtonDPadLeft}, {}}}
	for range 2 {
		c.Update()
		Dispatch(m, c)
	}

	want := []string{"pressed LEFT", "down LEFT", "released LEFT"}
	if !slices.Equal(log, want) {
		t.Errorf("got %v, want %v", log, want)
	}
}

func TestParseButton(t *testing.T) {
	for b := range ButtonCount {
		got, ok := ParseButton(b.String())
		if !ok || got != b {
			t.Errorf("round trip of %v gave %v %v", b, got, ok)
		}
	}
	if _, ok := ParseButton("TURBO"); ok {
		t.Error("unknown name parsed")
	}
}

func TestMultiMergesControllers(t *testing.T) {
	a := &Scripted{Frames: [][]Button{{ButtonDPadUp}}}
	b := &Scripted{Frames: [][]Button{{ButtonB}}}
	m := Multi{a, b}
	m.Update()
	if !m.IsDown(ButtonDPadUp) || !m.IsDown(ButtonB) || m.IsDown(ButtonA) {
		t.Error("merged state wrong")
	}
}

func TestHeldDPadDownIsAButtonDownEvent(t *testing.T) {
	m := event.NewManager()
	var held []Button
	event.Subscribe(m, func(e ButtonDown) { held = append(held, e.Button) })

	c := &Scripted{Frames: [][]Button{{ButtonDPadDown}, {ButtonDPadDown}}}
	for range 2 {
		c.Update()
		Dispatch(m, c)
	}

	if !slices.Equal(held, []Button{ButtonDPadDown, ButtonDPadDown}) {
		t.Errorf("held %v", held)
	}
	if b, ok := ParseButton("DOWN"); !ok || b != ButtonDPadDown {
		t.Errorf("DOWN parsed to %v %v", b, ok)
	}
}
