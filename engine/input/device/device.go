// Package device implements input controllers on top of ebiten's keyboard
// and gamepad polling.
package device

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/1siamBot/adventure-engine/engine/input"
)

// DefaultKeys maps buttons to keyboard keys
var DefaultKeys = map[input.Button][]ebiten.Key{
	input.ButtonA:         {ebiten.KeySpace, ebiten.KeyZ},
	input.ButtonB:         {ebiten.KeyX},
	input.ButtonX:         {ebiten.KeyC},
	input.ButtonY:         {ebiten.KeyV},
	input.ButtonL:         {ebiten.KeyQ},
	input.ButtonR:         {ebiten.KeyE},
	input.ButtonStart:     {ebiten.KeyEnter},
	input.ButtonSelect:    {ebiten.KeyBackspace},
	input.ButtonDPadUp:    {ebiten.KeyArrowUp, ebiten.KeyW},
	input.ButtonDPadLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	input.ButtonDPadDown:  {ebiten.KeyArrowDown, ebiten.KeyS},
	input.ButtonDPadRight: {ebiten.KeyArrowRight, ebiten.KeyD},
	input.ButtonDebug:     {ebiten.KeyF1},
}

// Keyboard polls ebiten key state every frame
type Keyboard struct {
	input.Tracker
	Bindings map[input.Button][]ebiten.Key
}

// NewKeyboard creates a keyboard controller with the default bindings
func NewKeyboard() *Keyboard {
	k := &Keyboard{Bindings: make(map[input.Button][]ebiten.Key, len(DefaultKeys))}
	for b, keys := range DefaultKeys {
		k.Bindings[b] = append([]ebiten.Key(nil), keys...)
	}
	return k
}

// Bind replaces the keys of one button. Names use ebiten's key names ("ArrowUp", "Z", "F1").
func (k *Keyboard) Bind(b input.Button, names ...string) error {
	keys := make([]ebiten.Key, 0, len(names))
	for _, n := range names {
		var key ebiten.Key
		if err := key.UnmarshalText([]byte(n)); err != nil {
			return fmt.Errorf("bind %v: %w", b, err)
		}
		keys = append(keys, key)
	}
	k.Bindings[b] = keys
	return nil
}

// BindAll applies a button name -> key names table, as read from settings
func (k *Keyboard) BindAll(table map[string][]string) error {
	for name, keys := range table {
		b, ok := input.ParseButton(name)
		if !ok {
			return fmt.Errorf("unknown button %q", name)
		}
		if err := k.Bind(b, keys...); err != nil {
			return err
		}
	}
	return nil
}

func (k *Keyboard) Update() {
	k.Set(func(b input.Button) bool {
		for _, key := range k.Bindings[b] {
			if ebiten.IsKeyPressed(key) {
				return true
			}
		}
		return false
	})
}

// DefaultPad maps buttons to the standard gamepad layout
var DefaultPad = map[input.Button][]ebiten.StandardGamepadButton{
	input.ButtonA:         {ebiten.StandardGamepadButtonRightBottom},
	input.ButtonB:         {ebiten.StandardGamepadButtonRightRight},
	input.ButtonX:         {ebiten.StandardGamepadButtonRightLeft},
	input.ButtonY:         {ebiten.StandardGamepadButtonRightTop},
	input.ButtonL:         {ebiten.StandardGamepadButtonFrontTopLeft},
	input.ButtonR:         {ebiten.StandardGamepadButtonFrontTopRight},
	input.ButtonStart:     {ebiten.StandardGamepadButtonCenterRight},
	input.ButtonSelect:    {ebiten.StandardGamepadButtonCenterLeft},
	input.ButtonDPadUp:    {ebiten.StandardGamepadButtonLeftTop},
	input.ButtonDPadLeft:  {ebiten.StandardGamepadButtonLeftLeft},
	input.ButtonDPadDown:  {ebiten.StandardGamepadButtonLeftBottom},
	input.ButtonDPadRight: {ebiten.StandardGamepadButtonLeftRight},
}

// stickThreshold is how far the left stick must be pushed to count as a d-pad press
const stickThreshold = 0.5

// Gamepad polls every connected standard-layout gamepad
type Gamepad struct {
	input.Tracker
	Bindings map[input.Button][]ebiten.StandardGamepadButton
	Log      *log.Logger
	ids      []ebiten.GamepadID
}

// NewGamepad creates a gamepad controller with the default bindings
func NewGamepad(logger *log.Logger) *Gamepad {
	if logger == nil {
		logger = log.Default()
	}
	return &Gamepad{Bindings: DefaultPad, Log: logger}
}

func (g *Gamepad) Update() {
	for _, id := range inpututil.AppendJustConnectedGamepadIDs(nil) {
		g.Log.Printf("gamepad %d connected: %s (standard layout: %v)",
			id, ebiten.GamepadName(id), ebiten.IsStandardGamepadLayoutAvailable(id))
	}
	g.ids = ebiten.AppendGamepadIDs(g.ids[:0])
	g.Set(func(b input.Button) bool {
		for _, id := range g.ids {
			if !ebiten.IsStandardGamepadLayoutAvailable(id) {
				continue
			}
			for _, btn := range g.Bindings[b] {
				if ebiten.IsStandardGamepadButtonPressed(id, btn) {
					return true
				}
			}
			if stickHolds(id, b) {
				return true
			}
		}
		return false
	})
}

func stickHolds(id ebiten.GamepadID, b input.Button) bool {
	h := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	v := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	switch b {
	case input.ButtonDPadLeft:
		return h < -stickThreshold
	case input.ButtonDPadRight:
		return h > stickThreshold
	case input.ButtonDPadUp:
		return v < -stickThreshold
	case input.ButtonDPadDown:
		return v > stickThreshold
	}
	return false
}

// CloseRequested reports whether the user asked to close the game window.
// The host must have called ebiten.SetWindowClosingHandled(true).
func CloseRequested() bool {
	return ebiten.IsWindowBeingClosed()
}
