package scene

import (
	"context"
	"errors"
	"io"
	"log"
	"reflect"
	"slices"
	"testing"

	"github.com/1siamBot/adventure-engine/engine/config"
	"github.com/1siamBot/adventure-engine/engine/core"
	"github.com/1siamBot/adventure-engine/engine/event"
	"github.com/1siamBot/adventure-engine/engine/input"
	"github.com/1siamBot/adventure-engine/engine/maplib"
	"github.com/1siamBot/adventure-engine/engine/save"
)

func quiet() *log.Logger { return log.New(io.Discard, "", 0) }

type sceneEvent struct{}

type systemEvent struct{}

type sourceSystem struct {
	q     *event.Queue
	order *[]string
}

func (s *sourceSystem) Priority() int               { return 0 }
func (s *sourceSystem) Update(*core.World, float64) { *s.order = append(*s.order, "tick") }
func (s *sourceSystem) Events() *event.Queue        { return s.q }

func TestUpdateOrder(t *testing.T) {
	b := NewBase(&input.Scripted{Frames: [][]input.Button{{input.ButtonA}}}, quiet())
	var order []string
	note := func(s string) { order = append(order, s) }
	event.Subscribe(b.Events, func(input.ButtonDown) { note("button") })
	event.Subscribe(b.Events, func(input.WindowClosed) { note("close") })
	event.Subscribe(b.Events, func(sceneEvent) { note("scene") })
	event.Subscribe(b.Events, func(systemEvent) { note("system") })

	sys := &sourceSystem{q: event.NewQueue(), order: &order}
	b.World.AddSystem(sys)
	b.Queue.Add(sceneEvent{})
	sys.q.Add(systemEvent{})
	b.CloseRequested = func() bool { return true }

	b.Update(0)

	want := []string{"button", "close", "scene", "system", "tick"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order %v, want %v", order, want)
	}
	if !b.Finished || !b.JumpToExit {
		t.Error("closing the window must leave the scene stack")
	}
}

func TestDebugButtonToggles(t *testing.T) {
	b := NewBase(&input.Scripted{Frames: [][]input.Button{{input.ButtonDebug}, {}, {input.ButtonDebug}}}, quiet())
	var got []bool
	event.Subscribe(b.Events, func(ev DebugToggled) { got = append(got, ev.On) })
	for range 3 {
		b.Update(0)
	}
	if !reflect.DeepEqual(got, []bool{true, false}) || b.Debug {
		t.Errorf("toggles %v, debug %v", got, b.Debug)
	}
}

type fakeScene struct {
	*Base
	name     string
	enters   int
	exits    int
	enterErr error
	onUpdate func(*fakeScene)
}

func newFake(name string) *fakeScene {
	return &fakeScene{Base: NewBase(nil, quiet()), name: name}
}

func (s *fakeScene) Name() string { return s.name }
func (s *fakeScene) OnEnter() error {
	s.enters++
	return s.enterErr
}
func (s *fakeScene) Update(float64) {
	if s.onUpdate != nil {
		s.onUpdate(s)
	}
}
func (s *fakeScene) OnExit() { s.exits++ }

func TestDirectorStack(t *testing.T) {
	game, dialog := newFake("game"), newFake("dialog")
	game.onUpdate = func(s *fakeScene) {
		if s.enters == 1 && dialog.enters == 0 {
			s.Next = dialog
		}
	}
	dialog.onUpdate = func(s *fakeScene) { s.Finished = true }

	d := NewDirector(quiet(), game)
	steps := []string{"dialog", "game", "game"}
	for i, want := range steps {
		if err := d.Update(0); err != nil {
			t.Fatal(err)
		}
		if got := d.Current().Name(); got != want {
			t.Fatalf("step %d: current %s, want %s", i, got, want)
		}
	}
	if game.enters != 1 || dialog.enters != 1 || dialog.exits != 1 || game.exits != 0 {
		t.Errorf("enters %d/%d exits %d/%d", game.enters, dialog.enters, game.exits, dialog.exits)
	}

	game.onUpdate = func(s *fakeScene) {
		s.Finished = true
		s.Next = newFake("credits")
	}
	d.Update(0)
	if d.Current().Name() != "credits" || game.exits != 1 {
		t.Errorf("finished scene with a successor: current %s", d.Current().Name())
	}
}

func TestDirectorJumpToExit(t *testing.T) {
	bottom, top := newFake("bottom"), newFake("top")
	d := NewDirector(quiet(), bottom)
	d.Update(0)
	d.Push(top)
	top.onUpdate = func(s *fakeScene) {
		s.Finished = true
		s.JumpToExit = true
	}
	d.Update(0)
	if !d.Done() {
		t.Fatal("stack not cleared")
	}
	if bottom.exits != 1 || top.exits != 1 {
		t.Errorf("exits %d/%d", bottom.exits, top.exits)
	}
}

func TestDirectorEnterError(t *testing.T) {
	broken := newFake("broken")
	broken.enterErr = errors.New("no map")
	d := NewDirector(quiet(), broken)
	if err := d.Update(0); err == nil {
		t.Fatal("expected the enter error")
	}
	if !d.Done() || broken.exits != 0 {
		t.Error("failed scene must be dropped without OnExit")
	}
}

// room is a corridor: walls above and below, open tiles from x=0 to x=4
func room(name string, objects ...maplib.Object) *maplib.TileMap {
	tm := maplib.NewTileMap(name, 6, 3, 16)
	tm.SetSolid(0, 0, 5, 0, true)
	tm.SetSolid(0, 2, 5, 2, true)
	tm.SetSolid(5, 1, 5, 1, true)
	tm.StartX, tm.StartY = 1, 1
	tm.Objects = objects
	return tm
}

func loader(maps ...*maplib.TileMap) MapLoader {
	return func(name string) (*maplib.TileMap, error) {
		for _, tm := range maps {
			if tm.Name == name {
				return tm, nil
			}
		}
		return nil, &core.ResourceError{Kind: "map", Name: name}
	}
}

func holding(frames int, buttons ...input.Button) [][]input.Button {
	out := make([][]input.Button, frames)
	for i := range out {
		out[i] = slices.Clone(buttons)
	}
	return out
}

func TestGameplayPickupAndDoor(t *testing.T) {
	first := room("first",
		maplib.Object{ID: 1, Kind: maplib.ObjectItem, X: 32, Y: 16, W: 16, H: 16, Item: "coin", Value: 1},
		maplib.Object{ID: 2, Kind: maplib.ObjectDoor, X: 64, Y: 16, W: 16, H: 16, TargetMap: "second", TargetX: 2, TargetY: 1},
	)
	second := room("second")
	store, err := save.NewFileStore(t.TempDir(), quiet())
	if err != nil {
		t.Fatal(err)
	}

	g := NewGameplay(GameplayOptions{
		Settings:   config.Default(),
		Map:        "first",
		Loader:     loader(first, second),
		Controller: &input.Scripted{Frames: holding(40, input.ButtonDPadRight)},
		Store:      store,
		Slot:       "test",
		Log:        quiet(),
	})
	d := NewDirector(quiet(), g)
	for range 200 {
		if err := d.Update(0); err != nil {
			t.Fatal(err)
		}
		if d.Current().Name() == "gameplay:second" {
			break
		}
	}
	next, ok := d.Current().(*Gameplay)
	if !ok || next.Opts.Map != "second" {
		t.Fatalf("never went through the door, current %s", d.Current().Name())
	}
	if next.Save.Inventory.Coins != 1 {
		t.Errorf("coins %d", next.Save.Inventory.Coins)
	}

	d.Update(0)
	pos, _ := core.Get[*core.Position](next.World, next.Player)
	if pos.X != 32 || pos.Y != 16 {
		t.Errorf("spawned at (%v,%v), want door target (32,16)", pos.X, pos.Y)
	}

	saved, err := store.Load(context.Background(), "test")
	if err != nil {
		t.Fatalf("door did not save: %v", err)
	}
	if saved.LastMap != "second" || saved.Inventory.Coins != 1 {
		t.Errorf("saved %+v", saved)
	}
}

func TestGameplayReadsSign(t *testing.T) {
	tm := room("signs", maplib.Object{ID: 1, Kind: maplib.ObjectSign, X: 32, Y: 16, W: 16, H: 16, Solid: true, Text: "Hello"})
	frames := append(holding(10, input.ButtonDPadRight), []input.Button{input.ButtonDPadRight, input.ButtonA})
	g := NewGameplay(GameplayOptions{
		Settings:   config.Default(),
		Map:        "signs",
		Loader:     loader(tm),
		Controller: &input.Scripted{Frames: frames},
		Log:        quiet(),
	})
	d := NewDirector(quiet(), g)
	for range len(frames) {
		d.Update(0)
	}
	if g.Dialog != "Hello" {
		t.Errorf("dialog %q", g.Dialog)
	}
	pos, _ := core.Get[*core.Position](g.World, g.Player)
	hb, _ := core.Get[*core.HitBox](g.World, g.Player)
	if hb.Right() != 32 {
		t.Errorf("player walked into the sign: right edge %d at x=%v", hb.Right(), pos.X)
	}
}

func TestGameplayReadsSignWhileSlidingAlongWall(t *testing.T) {
	tm := room("signs", maplib.Object{ID: 1, Kind: maplib.ObjectSign, X: 32, Y: 16, W: 16, H: 16, Solid: true, Text: "Hello"})
	// pressed into the bottom wall the whole way, so the sign is never a first contact
	frames := append(holding(12, input.ButtonDPadDown, input.ButtonDPadRight),
		[]input.Button{input.ButtonDPadDown, input.ButtonDPadRight, input.ButtonA})
	g := NewGameplay(GameplayOptions{
		Settings:   config.Default(),
		Map:        "signs",
		Loader:     loader(tm),
		Controller: &input.Scripted{Frames: frames},
		Log:        quiet(),
	})
	d := NewDirector(quiet(), g)
	for range len(frames) {
		d.Update(0)
	}
	if g.Dialog != "Hello" {
		t.Errorf("dialog %q", g.Dialog)
	}
}

func TestGameplayForgetsSignAfterWalkingAway(t *testing.T) {
	tm := room("signs", maplib.Object{ID: 1, Kind: maplib.ObjectSign, X: 32, Y: 16, W: 16, H: 16, Solid: true, Text: "Hello"})
	frames := append(holding(12, input.ButtonDPadDown, input.ButtonDPadRight), holding(12, input.ButtonDPadDown, input.ButtonDPadLeft)...)
	frames = append(frames, []input.Button{input.ButtonDPadDown, input.ButtonA})
	g := NewGameplay(GameplayOptions{
		Settings:   config.Default(),
		Map:        "signs",
		Loader:     loader(tm),
		Controller: &input.Scripted{Frames: frames},
		Log:        quiet(),
	})
	d := NewDirector(quiet(), g)
	for range len(frames) {
		d.Update(0)
	}
	if g.Dialog != "" {
		t.Errorf("read the sign from a distance: %q", g.Dialog)
	}
}

func TestGameplayMissingMap(t *testing.T) {
	g := NewGameplay(GameplayOptions{Settings: config.Default(), Map: "nowhere", Loader: loader(), Log: quiet()})
	d := NewDirector(quiet(), g)
	if err := d.Update(0); !errors.Is(err, core.ErrResourceNotFound) {
		t.Errorf("expected resource-not-found, got %v", err)
	}
}
