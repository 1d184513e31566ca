package systems

import (
	"math"

	"github.com/1siamBot/adventure-engine/engine/core"
	"github.com/1siamBot/adventure-engine/engine/event"
)

// EndMovement is emitted when an entity with a Move component reaches its goal
type EndMovement struct {
	Entity core.EntityID
}

// KineticSystem drives Move components: the first frame plans velocity and
// step count, following frames step, and the last frame snaps to the goal,
// removes the Move and reports EndMovement.
type KineticSystem struct {
	queue *event.Queue
}

func NewKineticSystem() *KineticSystem {
	return &KineticSystem{queue: event.NewQueue()}
}

func (s *KineticSystem) Priority() int { return 15 }

func (s *KineticSystem) Events() *event.Queue { return s.queue }

func (s *KineticSystem) Update(w *core.World, _ float64) {
	for id, c := range core.Query2[*core.Move, *core.Position](w) {
		mv, pos := c.First, c.Second
		switch {
		case mv.Steps < 0:
			plan(mv, pos)
		case mv.Steps == 0:
			pos.X, pos.Y = mv.GoalX, mv.GoalY
			w.RemoveComponent(id, core.CompMove)
			s.queue.Add(EndMovement{Entity: id})
		default:
			pos.X += mv.VX
			pos.Y += mv.VY
			mv.Steps--
		}
		if hb, ok := core.Get[*core.HitBox](w, id); ok && !hb.Solid {
			hb.SyncTo(pos)
		}
	}
}

func plan(mv *core.Move, pos *core.Position) {
	dx := mv.GoalX - pos.X
	dy := mv.GoalY - pos.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 || mv.Speed <= 0 {
		mv.Steps = 0
		return
	}
	mv.VX = mv.Speed * dx / dist
	mv.VY = mv.Speed * dy / dist
	mv.Steps = int(dist / mv.Speed)
}
