package main

import (
	"errors"

	"github.com/1siamBot/adventure-engine/engine/core"
	"github.com/1siamBot/adventure-engine/engine/event"
	"github.com/1siamBot/adventure-engine/engine/input"
	"github.com/1siamBot/adventure-engine/engine/systems"
)

// cellSize is the world size of one terminal cell
const cellSize = 4

// Sandbox is a collision playground built from an ASCII layout:
// '#' is a wall, '@' the player, '*' a coin, anything else floor.
type Sandbox struct {
	World  *core.World
	Events *event.Manager
	Player core.EntityID
	Coins  int
	Bumps  int
	Width  int
	Height int

	ctrl       input.Controller
	collisions *systems.CollisionSystem
	walls      []core.EntityID
	coins      map[core.EntityID]bool
	handles    []event.Handle
}

func NewSandbox(layout []string, ctrl input.Controller, speed float64) (*Sandbox, error) {
	s := &Sandbox{
		World:      core.NewWorld(),
		Events:     event.NewManager(),
		ctrl:       ctrl,
		collisions: systems.NewCollisionSystem(),
		coins:      make(map[core.EntityID]bool),
	}
	w := s.World
	found := false
	for y, row := range layout {
		s.Height = y + 1
		s.Width = max(s.Width, len(row))
		for x := 0; x < len(row); x++ {
			switch row[x] {
			case '#':
				start := x
				for x+1 < len(row) && row[x+1] == '#' {
					x++
				}
				hb := &core.HitBox{X: start * cellSize, Y: y * cellSize, W: (x - start + 1) * cellSize, H: cellSize, Solid: true}
				s.walls = append(s.walls, w.CreateEntity(hb))
			case '@':
				if found {
					return nil, errors.New("layout has more than one player")
				}
				found = true
				s.Player = w.CreateEntity(
					core.NewPosition(float64(x*cellSize), float64(y*cellSize)),
					&core.HitBox{W: cellSize, H: cellSize, SkinDepth: 1},
				)
			case '*':
				id := w.CreateEntity(
					core.NewPosition(float64(x*cellSize), float64(y*cellSize)),
					&core.HitBox{X: x * cellSize, Y: y * cellSize, W: cellSize, H: cellSize},
				)
				s.coins[id] = true
			}
		}
	}
	if !found {
		return nil, errors.New("layout has no player")
	}

	w.AddSystem(systems.NewPlayerSystem(w, s.Events, s.Player, systems.PlayerConfig{Velocity: speed}))
	w.AddSystem(&systems.MovementSystem{})
	w.AddSystem(s.collisions)

	s.handles = append(s.handles,
		event.SubscribeMethod(s.Events, s, (*Sandbox).onEnter),
		event.SubscribeMethod(s.Events, s, (*Sandbox).onSolidEnter),
	)
	return s, nil
}

func (s *Sandbox) onEnter(ev systems.EnterCollision) {
	for _, id := range []core.EntityID{ev.A, ev.B} {
		if s.coins[id] {
			delete(s.coins, id)
			s.World.DeleteEntity(id)
			s.Coins++
		}
	}
}

func (s *Sandbox) onSolidEnter(ev systems.SolidEnterCollision) {
	if ev.Entity == s.Player && !ev.Repeat {
		s.Bumps++
	}
}

// Step runs one fixed frame: input, last frame's collisions, then the systems
func (s *Sandbox) Step(dt float64) {
	s.ctrl.Update()
	input.Dispatch(s.Events, s.ctrl)
	s.Events.ProcessQueue(s.collisions.Events())
	s.World.Tick(dt)
}

// Cell is what a terminal cell shows
type Cell uint8

const (
	CellFloor Cell = iota
	CellWall
	CellCoin
	CellPlayer
)

// Grid rasterizes the world into terminal cells. The player covers every
// cell its hitbox overlaps.
func (s *Sandbox) Grid() [][]Cell {
	grid := make([][]Cell, s.Height)
	for y := range grid {
		grid[y] = make([]Cell, s.Width)
	}
	fill := func(hb *core.HitBox, c Cell) {
		for y := hb.Top() / cellSize; y <= (hb.Bottom()-1)/cellSize; y++ {
			for x := hb.Left() / cellSize; x <= (hb.Right()-1)/cellSize; x++ {
				if y >= 0 && y < s.Height && x >= 0 && x < s.Width {
					grid[y][x] = c
				}
			}
		}
	}
	for _, id := range s.walls {
		if hb, ok := core.Get[*core.HitBox](s.World, id); ok {
			fill(hb, CellWall)
		}
	}
	for id := range s.coins {
		if hb, ok := core.Get[*core.HitBox](s.World, id); ok {
			fill(hb, CellCoin)
		}
	}
	if hb, ok := core.Get[*core.HitBox](s.World, s.Player); ok {
		fill(hb, CellPlayer)
	}
	return grid
}
