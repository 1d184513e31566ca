package systems

import (
	"github.com/1siamBot/adventure-engine/engine/core"
)

// MovementSystem advances every entity with a velocity. It first records the
// previous position of every positioned entity, so PrevX/PrevY always hold
// the value from the start of the frame no matter which pass moves it later.
type MovementSystem struct{}

func (s *MovementSystem) Priority() int { return 10 }

func (s *MovementSystem) Update(w *core.World, _ float64) {
	for _, pos := range core.Query1[*core.Position](w) {
		pos.PrevX, pos.PrevY = pos.X, pos.Y
	}

	for id, c := range core.Query2[*core.Velocity, *core.Position](w) {
		vel, pos := c.First, c.Second
		if vel.IsZero() {
			continue
		}
		pos.X += vel.X
		pos.Y += vel.Y
		if hb, ok := core.Get[*core.HitBox](w, id); ok && !hb.Solid {
			hb.SyncTo(pos)
		}
	}
}

// Teleport moves an entity to (x, y) as if it had always been there: the
// previous position is reset too, so no movement direction is inferred.
func Teleport(w *core.World, id core.EntityID, x, y float64) bool {
	pos, ok := core.Get[*core.Position](w, id)
	if !ok {
		return false
	}
	pos.X, pos.Y = x, y
	pos.PrevX, pos.PrevY = x, y
	if hb, ok := core.Get[*core.HitBox](w, id); ok {
		hb.SyncTo(pos)
	}
	return true
}
