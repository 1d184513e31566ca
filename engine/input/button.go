package input

import "github.com/1siamBot/adventure-engine/engine/event"

// Button is one of the logical buttons the game recognizes. Devices map
// their keys onto these.
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonL
	ButtonR
	ButtonStart
	ButtonSelect
	ButtonDPadUp
	ButtonDPadLeft
	ButtonDPadDown
	ButtonDPadRight
	ButtonDebug
	ButtonCount
)

var buttonNames = [ButtonCount]string{
	"A", "B", "X", "Y", "L", "R", "START", "SELECT", "UP", "LEFT", "DOWN", "RIGHT", "DEBUG",
}

func (b Button) String() string {
	if b < ButtonCount {
		return buttonNames[b]
	}
	return "UNKNOWN"
}

// ParseButton looks a button up by name, as written in key binding settings
func ParseButton(name string) (Button, bool) {
	for b, n := range buttonNames {
		if n == name {
			return Button(b), true
		}
	}
	return 0, false
}

// Controller is a polled source of button state. Update is called once per
// frame before any of the queries.
type Controller interface {
	Update()
	IsDown(b Button) bool
	IsPressed(b Button) bool
	IsReleased(b Button) bool
}

// ButtonDown is dispatched every frame a button is held
type ButtonDown struct{ Button Button }

// ButtonPressed is dispatched the frame a button goes down
type ButtonPressed struct{ Button Button }

// ButtonReleased is dispatched the frame a button goes up
type ButtonReleased struct{ Button Button }

// WindowClosed is dispatched when the host window asked to close
type WindowClosed struct{}

// Dispatch synthesizes the button events for the current controller state and
// sends them straight to the manager. They describe this frame's device
// state, so they never go through a queue.
func Dispatch(m *event.Manager, c Controller) {
	for b := range ButtonCount {
		if c.IsPressed(b) {
			m.Dispatch(ButtonPressed{Button: b})
		}
		if c.IsDown(b) {
			m.Dispatch(ButtonDown{Button: b})
		}
		if c.IsReleased(b) {
			m.Dispatch(ButtonReleased{Button: b})
		}
	}
}

// Tracker derives pressed/released edges from consecutive down states.
// Device controllers embed it.
type Tracker struct {
	cur, prev [ButtonCount]bool
}

// Set records this frame's down state for every button
func (t *Tracker) Set(down func(Button) bool) {
	t.prev = t.cur
	for b := range ButtonCount {
		t.cur[b] = down(b)
	}
}

func (t *Tracker) IsDown(b Button) bool     { return b < ButtonCount && t.cur[b] }
func (t *Tracker) IsPressed(b Button) bool  { return b < ButtonCount && t.cur[b] && !t.prev[b] }
func (t *Tracker) IsReleased(b Button) bool { return b < ButtonCount && !t.cur[b] && t.prev[b] }

// Scripted is a controller replaying a fixed sequence of frames, each frame
// listing the buttons held. Past the end no button is held.
type Scripted struct {
	Tracker
	Frames [][]Button
	frame  int
}

func (s *Scripted) Update() {
	var held []Button
	if s.frame < len(s.Frames) {
		held = s.Frames[s.frame]
	}
	s.frame++
	s.Set(func(b Button) bool {
		for _, h := range held {
			if h == b {
				return true
			}
		}
		return false
	})
}

// Multi merges several controllers: a button is down if any of them holds it
type Multi []Controller

func (m Multi) Update() {
	for _, c := range m {
		c.Update()
	}
}

func (m Multi) IsDown(b Button) bool {
	for _, c := range m {
		if c.IsDown(b) {
			return true
		}
	}
	return false
}

func (m Multi) IsPressed(b Button) bool {
	for _, c := range m {
		if c.IsPressed(b) {
			return true
		}
	}
	return false
}

func (m Multi) IsReleased(b Button) bool {
	for _, c := range m {
		if c.IsReleased(b) {
			return true
		}
	}
	return false
}
