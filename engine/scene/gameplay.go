package scene

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/1siamBot/adventure-engine/engine/audio"
	"github.com/1siamBot/adventure-engine/engine/config"
	"github.com/1siamBot/adventure-engine/engine/core"
	"github.com/1siamBot/adventure-engine/engine/event"
	"github.com/1siamBot/adventure-engine/engine/input"
	"github.com/1siamBot/adventure-engine/engine/maplib"
	"github.com/1siamBot/adventure-engine/engine/pathfind"
	"github.com/1siamBot/adventure-engine/engine/save"
	"github.com/1siamBot/adventure-engine/engine/systems"
)

// MapLoader resolves a map name to a parsed map
type MapLoader func(name string) (*maplib.TileMap, error)

// DirLoader loads <dir>/<name>.json. A missing file is a core.ResourceError.
func DirLoader(dir string) MapLoader {
	return func(name string) (*maplib.TileMap, error) {
		tm, err := maplib.LoadJSON(filepath.Join(dir, name+".json"))
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &core.ResourceError{Kind: "map", Name: name, Err: err}
		}
		return tm, err
	}
}

// doorDelay is how many frames the player stands in a door before the map changes
const doorDelay = 15

// GameplayOptions configures a gameplay scene
type GameplayOptions struct {
	Settings       config.Settings
	Map            string
	Loader         MapLoader
	Controller     input.Controller
	CloseRequested func() bool
	Store          save.Store
	Slot           string
	Player         save.PlayerState
	Audio          *audio.Manager
	Log            *log.Logger
	// Spawn overrides the start position, in tile coordinates
	Spawn *[2]int
}

// Gameplay is the scene of the player walking around a map
type Gameplay struct {
	*Base
	Opts   GameplayOptions
	Map    *maplib.TileMap
	Player core.EntityID
	Save   save.PlayerState
	// Dialog is the sign text being read, empty when none
	Dialog string

	players   *systems.PlayerSystem
	cutscenes *systems.CutsceneSystem
	sounds    *audio.SoundSystem
	near      core.EntityID
	leaving   bool
	saved     bool
}

func NewGameplay(opts GameplayOptions) *Gameplay {
	if opts.Log == nil {
		opts.Log = log.Default()
	}
	if opts.Player.Inventory.HeartPieces == 0 {
		opts.Player.Inventory = save.NewInventory()
	}
	g := &Gameplay{
		Base: NewBase(opts.Controller, opts.Log),
		Opts: opts,
		Save: opts.Player,
	}
	g.CloseRequested = opts.CloseRequested
	return g
}

func (g *Gameplay) Name() string { return "gameplay:" + g.Opts.Map }

// OnEnter loads the map and builds the world
func (g *Gameplay) OnEnter() error {
	tm, err := g.Opts.Loader(g.Opts.Map)
	if err != nil {
		return err
	}
	g.Map = tm
	set := g.Opts.Settings
	w := g.World

	populated := maplib.Populate(w, tm, g.Log)

	player, err := g.spawnPlayer()
	if err != nil {
		return err
	}
	g.Player = player

	for _, obj := range populated.Enemies {
		if err := g.spawnEnemy(obj); err != nil {
			return err
		}
	}

	walk := make(map[systems.Direction][]string)
	for _, d := range []systems.Direction{systems.FacingDown, systems.FacingUp, systems.FacingLeft, systems.FacingRight} {
		if frames := set.Player.Animation[d.String()]; len(frames) > 0 {
			walk[d] = frames
		}
	}
	g.players = systems.NewPlayerSystem(w, g.Events, player, systems.PlayerConfig{
		Velocity:         set.Player.Velocity,
		VelocityDiagonal: set.Player.VelocityDiagonal,
		Walk:             walk,
		FrameTicks:       set.Player.FrameTicks,
	})
	g.cutscenes = systems.NewCutsceneSystem(g.Log)
	collisions := systems.NewCollisionSystem()
	collisions.DiagonalTolerance = set.Collision.DiagonalTolerance

	w.AddSystem(systems.NewRemovalSystem(g.Events))
	w.AddSystem(g.players)
	nav := pathfind.NewNavGrid(tm)
	for _, id := range populated.Objects {
		if hb, ok := core.Get[*core.HitBox](w, id); ok && hb.Solid {
			nav.BlockArea(hb.X, hb.Y, hb.W, hb.H)
		}
	}
	w.AddSystem(systems.NewBrainSystem(nav))
	w.AddSystem(g.cutscenes)
	w.AddSystem(&systems.MovementSystem{})
	w.AddSystem(systems.NewKineticSystem())
	w.AddSystem(systems.NewCombatSystem(w, g.Events, set.Enemy.ContactDamage))
	w.AddSystem(collisions)
	w.AddSystem(&systems.AnimationSystem{})
	if g.Opts.Audio != nil {
		g.sounds = audio.NewSoundSystem(w, g.Events, g.Opts.Audio, player)
		w.AddSystem(g.sounds)
	}

	g.handles = append(g.handles,
		event.SubscribeMethod(g.Events, g, (*Gameplay).onEnter),
		event.SubscribeMethod(g.Events, g, (*Gameplay).onExit),
		event.SubscribeMethod(g.Events, g, (*Gameplay).onSolidEnter),
		event.SubscribeMethod(g.Events, g, (*Gameplay).onSolidExit),
		event.SubscribeMethod(g.Events, g, (*Gameplay).onButton),
		event.SubscribeMethod(g.Events, g, (*Gameplay).onDied),
		event.SubscribeMethod(g.Events, g, (*Gameplay).onDamaged),
	)
	g.Log.Printf("map %s ready: %d entities", tm.Name, w.EntityCount())
	return nil
}

func (g *Gameplay) spawnPlayer() (core.EntityID, error) {
	set := g.Opts.Settings.Player
	x, y := g.Map.StartPosition()
	switch {
	case g.Opts.Spawn != nil:
		x, y = float64(g.Opts.Spawn[0]*g.Map.TileSize), float64(g.Opts.Spawn[1]*g.Map.TileSize)
	case g.Save.LastMap == g.Map.Name && (g.Save.X != 0 || g.Save.Y != 0):
		x, y = g.Save.X, g.Save.Y
	}
	hb, err := set.HitBox.Build(false)
	if err != nil {
		return 0, fmt.Errorf("player hitbox: %w", err)
	}
	pos := core.NewPosition(x, y)
	hb.SyncTo(pos)
	image := ""
	if frames := set.Animation["down"]; len(frames) > 0 {
		image = frames[0]
	}
	inv := g.Save.Inventory
	return g.World.CreateEntity(
		pos,
		&core.Velocity{},
		hb,
		&core.Renderable{Image: image, Depth: set.SpriteDepth, W: g.Map.TileSize, H: g.Map.TileSize},
		&core.Health{Points: max(inv.Health, 1), MaxPoints: inv.MaxHealth(), CooldownTime: set.Cooldown},
		&core.Interactor{},
	), nil
}

func (g *Gameplay) spawnEnemy(obj maplib.Object) error {
	set := g.Opts.Settings.Enemy
	hb, err := set.HitBox.Build(false)
	if err != nil {
		return fmt.Errorf("enemy hitbox: %w", err)
	}
	pos := core.NewPosition(float64(obj.X), float64(obj.Y))
	hb.SyncTo(pos)
	image := obj.Image
	if image == "" {
		image = set.Image
	}
	g.World.CreateEntity(
		pos,
		&core.Velocity{},
		hb,
		&core.Renderable{Image: image, Depth: g.Opts.Settings.Player.SpriteDepth, W: obj.W, H: obj.H},
		&core.Brain{ThinkFrames: set.ThinkFrames, Speed: set.Speed, Target: g.Player},
		&core.Health{Points: 2, MaxPoints: 2},
	)
	return nil
}

// onEnter handles the player walking into doors and pickups
func (g *Gameplay) onEnter(ev systems.EnterCollision) {
	if g.leaving {
		return
	}
	if _, door, ok := g.World.TryPair(ev.A, ev.B, core.CompInteractor, core.CompDoor); ok {
		g.enterDoor(door)
		return
	}
	if _, item, ok := g.World.TryPair(ev.A, ev.B, core.CompInteractor, core.CompCollectable); ok {
		if c, _ := core.Get[*core.Collectable](g.World, item); !c.InChest {
			g.collect(item)
		}
		return
	}
	if _, other, ok := g.World.TrySignature(ev.A, ev.B, core.CompInteractor); ok {
		g.near = other
	}
}

func (g *Gameplay) onExit(ev systems.ExitCollision) {
	if ev.A == g.near || ev.B == g.near {
		g.near = 0
	}
}

// solid signs and chests are read and opened while touching them. Repeat only
// says the player was already against some solid, so it is not checked here.
func (g *Gameplay) onSolidEnter(ev systems.SolidEnterCollision) {
	if ev.Entity == g.Player && g.interactive(ev.Solid) {
		g.near = ev.Solid
	}
}

func (g *Gameplay) interactive(id core.EntityID) bool {
	if _, ok := core.Get[*core.Sign](g.World, id); ok {
		return true
	}
	c, ok := core.Get[*core.Collectable](g.World, id)
	return ok && c.InChest
}

// touchingSolid reports whether the player still rests against the solid near,
// which can go stale while the player slides along other walls.
func (g *Gameplay) touchingSolid() bool {
	solid, ok := core.Get[*core.HitBox](g.World, g.near)
	if !ok || !solid.Solid {
		return true
	}
	hb, ok := core.Get[*core.HitBox](g.World, g.Player)
	if !ok {
		return false
	}
	grown := *hb
	grown.X--
	grown.Y--
	grown.W += 2
	grown.H += 2
	return grown.Overlaps(solid)
}

func (g *Gameplay) onSolidExit(ev systems.SolidExitCollision) {
	if ev.Entity != g.Player {
		return
	}
	if hb, ok := core.Get[*core.HitBox](g.World, g.near); ok && hb.Solid {
		g.near = 0
	}
}

func (g *Gameplay) onButton(ev input.ButtonPressed) {
	if ev.Button != input.ButtonA || g.leaving {
		return
	}
	if g.Dialog != "" {
		g.Dialog = ""
		return
	}
	if !g.touchingSolid() {
		g.near = 0
		return
	}
	if sign, ok := core.Get[*core.Sign](g.World, g.near); ok {
		g.Dialog = sign.Text
		return
	}
	if c, ok := core.Get[*core.Collectable](g.World, g.near); ok && c.InChest {
		g.collect(g.near)
	}
}

func (g *Gameplay) collect(item core.EntityID) {
	c, ok := core.Get[*core.Collectable](g.World, item)
	if !ok {
		return
	}
	g.Save.Inventory.Collect(c.Item, c.Value)
	g.World.RemoveComponent(item, core.CompCollectable)
	g.Queue.Add(systems.RemoveEntity{Entity: item})
	if g.Opts.Audio != nil {
		g.Opts.Audio.Play(audio.SndPickup)
	}
	if item == g.near {
		g.near = 0
	}
	g.Log.Printf("collected %s x%d", c.Item, c.Value)
}

func (g *Gameplay) onDamaged(ev systems.Damaged) {
	if ev.Entity == g.Player {
		g.Save.Inventory.Health = ev.Points
	}
}

func (g *Gameplay) onDied(ev systems.Died) {
	if ev.Entity != g.Player {
		g.Queue.Add(systems.RemoveEntity{Entity: ev.Entity})
		return
	}
	g.Log.Printf("player died on %s", g.Map.Name)
	g.Save.Inventory.Health = g.Save.Inventory.MaxHealth()
	g.saved = true // dying does not overwrite the last save
	g.Finished = true
	g.JumpToExit = true
}

// enterDoor freezes the player and changes map after a short pause
func (g *Gameplay) enterDoor(door core.EntityID) {
	d, _ := core.Get[*core.Door](g.World, door)
	target := *d
	g.leaving = true
	g.players.Frozen = true
	if g.Opts.Audio != nil {
		g.Opts.Audio.Play(audio.SndDoor)
	}
	g.cutscenes.Start(systems.Cutscene{Name: "door:" + target.TargetMap, Lists: [][]systems.Task{{
		&systems.WaitTask{Frames: doorDelay},
		&systems.FuncTask{Fn: func(*core.World) { g.travel(target) }},
	}}})
}

func (g *Gameplay) travel(d core.Door) {
	g.Save.LastMap = d.TargetMap
	g.Save.X = float64(d.TargetX * g.Map.TileSize)
	g.Save.Y = float64(d.TargetY * g.Map.TileSize)
	g.store()

	opts := g.Opts
	opts.Map = d.TargetMap
	opts.Player = g.Save
	opts.Spawn = &[2]int{d.TargetX, d.TargetY}
	g.Next = NewGameplay(opts)
	g.Finished = true
	g.Log.Printf("door to %s (%d,%d)", d.TargetMap, d.TargetX, d.TargetY)
}

func (g *Gameplay) store() {
	if g.Opts.Store == nil || g.saved {
		return
	}
	g.saved = true
	if err := g.Opts.Store.Save(context.Background(), g.Opts.Slot, g.Save); err != nil {
		g.Log.Printf("save failed: %v", err)
	}
}

// OnExit saves where the player stands unless a door already saved
func (g *Gameplay) OnExit() {
	if pos, ok := core.Get[*core.Position](g.World, g.Player); ok && !g.leaving {
		g.Save.LastMap = g.Map.Name
		g.Save.X, g.Save.Y = pos.X, pos.Y
	}
	g.store()
}

// HUD is the status line drawn over the map
func (g *Gameplay) HUD() string {
	var b strings.Builder
	inv := g.Save.Inventory
	fmt.Fprintf(&b, "HP %d/%d  Coins %d", inv.Health, inv.MaxHealth(), inv.Coins)
	if g.Debug {
		fmt.Fprintf(&b, "  [debug] entities %d tick %d", g.World.EntityCount(), g.World.TickCount)
	}
	if g.Dialog != "" {
		b.WriteString("\n\n")
		b.WriteString(g.Dialog)
	}
	return b.String()
}
