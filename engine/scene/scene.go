package scene

import (
	"log"

	"github.com/1siamBot/adventure-engine/engine/core"
	"github.com/1siamBot/adventure-engine/engine/event"
	"github.com/1siamBot/adventure-engine/engine/input"
)

// Scene is one screen of the game: gameplay on a map, a dialog, a menu
type Scene interface {
	Name() string
	OnEnter() error
	Update(dt float64)
	OnExit()
	State() *Base
}

// DebugToggled is queued when the debug button flips the hitbox overlay
type DebugToggled struct {
	On bool
}

// Base holds what every scene owns: a world, an event manager, a queue for
// the scene's own events and the controller. Concrete scenes embed it.
type Base struct {
	World      *core.World
	Events     *event.Manager
	Queue      *event.Queue
	Controller input.Controller
	// CloseRequested reports whether the host window asked to close
	CloseRequested func() bool
	Log            *log.Logger

	Finished bool
	// Next is entered on top of this scene; this scene resumes when it finishes
	Next Scene
	// JumpToExit leaves the whole scene stack when this scene finishes
	JumpToExit bool
	Debug      bool

	handles []event.Handle
}

// NewBase creates the shared scene state. The base reacts to WindowClosed
// and the debug button.
func NewBase(ctrl input.Controller, logger *log.Logger) *Base {
	if logger == nil {
		logger = log.Default()
	}
	b := &Base{
		World:      core.NewWorld(),
		Events:     event.NewManager(),
		Queue:      event.NewQueue(),
		Controller: ctrl,
		Log:        logger,
	}
	b.handles = append(b.handles,
		event.SubscribeMethod(b.Events, b, (*Base).onWindowClosed),
		event.SubscribeMethod(b.Events, b, (*Base).onButtonPressed),
	)
	return b
}

func (b *Base) State() *Base { return b }

func (b *Base) onWindowClosed(input.WindowClosed) {
	b.Log.Printf("window closed")
	b.Finished = true
	b.JumpToExit = true
	b.Next = nil
}

func (b *Base) onButtonPressed(ev input.ButtonPressed) {
	if ev.Button == input.ButtonDebug {
		b.Debug = !b.Debug
		b.Queue.Add(DebugToggled{On: b.Debug})
	}
}

// Update runs one frame: the controller is polled and its button events
// dispatched immediately, then the window close check, then the scene
// queue, then the queue of every system that owns one, and finally the
// world systems.
func (b *Base) Update(dt float64) {
	if b.Controller != nil {
		b.Controller.Update()
		input.Dispatch(b.Events, b.Controller)
	}
	if b.CloseRequested != nil && b.CloseRequested() {
		b.Events.Dispatch(input.WindowClosed{})
	}
	b.Events.ProcessQueue(b.Queue)
	for _, s := range b.World.Systems() {
		if src, ok := s.(event.Source); ok {
			b.Events.ProcessQueue(src.Events())
		}
	}
	b.World.Tick(dt)
}
