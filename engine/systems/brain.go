package systems

import (
	"github.com/1siamBot/adventure-engine/engine/core"
	"github.com/1siamBot/adventure-engine/engine/pathfind"
)

// DefaultFlowThreshold is how many brains must chase the same cell before
// they share a flow field instead of running A* each
const DefaultFlowThreshold = 4

// separationRadius keeps chasing NPCs from stacking on one another
const separationRadius = 12

// BrainSystem moves NPCs toward their Target. Every ThinkFrames frames a
// brain re-plans: alone it runs A* over the nav grid and keeps the smoothed
// waypoints, in a crowd it follows a flow field shared by everyone chasing
// the same cell. Between plans it steers toward the next waypoint by writing
// its Velocity, so the collision pass still keeps it out of walls.
type BrainSystem struct {
	Nav           *pathfind.NavGrid
	FlowThreshold int

	flows    map[pathfind.Point]*pathfind.FlowField
	chasers  map[pathfind.Point]int
	bodies   []brainBody
	neighbor []pathfind.Neighbor
}

type brainBody struct {
	id     core.EntityID
	brain  *core.Brain
	pos    *core.Position
	cx, cy float64
	goal   pathfind.Point
	hasTgt bool
}

func NewBrainSystem(nav *pathfind.NavGrid) *BrainSystem {
	return &BrainSystem{
		Nav:           nav,
		FlowThreshold: DefaultFlowThreshold,
		flows:         make(map[pathfind.Point]*pathfind.FlowField),
		chasers:       make(map[pathfind.Point]int),
	}
}

func (s *BrainSystem) Priority() int { return 6 }

// center returns the middle of the entity's hitbox, or its position without one
func center(w *core.World, id core.EntityID, pos *core.Position) (float64, float64) {
	if hb, ok := core.Get[*core.HitBox](w, id); ok {
		return pos.X + float64(hb.OffsetX) + float64(hb.W)/2, pos.Y + float64(hb.OffsetY) + float64(hb.H)/2
	}
	return pos.X, pos.Y
}

func (s *BrainSystem) Update(w *core.World, _ float64) {
	if s.Nav == nil {
		return
	}
	s.bodies = s.bodies[:0]
	s.neighbor = s.neighbor[:0]
	clear(s.chasers)

	for id, c := range core.Query2[*core.Brain, *core.Position](w) {
		b := brainBody{id: id, brain: c.First, pos: c.Second}
		b.cx, b.cy = center(w, id, c.Second)
		if tpos, ok := core.Get[*core.Position](w, c.First.Target); ok {
			tx, ty := center(w, c.First.Target, tpos)
			b.goal = s.Nav.Cell(tx, ty)
			b.hasTgt = true
			s.chasers[b.goal]++
		}
		s.bodies = append(s.bodies, b)
		s.neighbor = append(s.neighbor, pathfind.Neighbor{X: b.cx, Y: b.cy, Radius: separationRadius})
	}

	// drop fields nobody follows anymore
	for goal := range s.flows {
		if s.chasers[goal] < s.FlowThreshold {
			delete(s.flows, goal)
		}
	}

	for i := range s.bodies {
		b := &s.bodies[i]
		vel, ok := core.Get[*core.Velocity](w, b.id)
		if !ok {
			vel = &core.Velocity{}
			w.AddComponent(b.id, vel)
		}
		if !b.hasTgt {
			vel.X, vel.Y = 0, 0
			continue
		}
		if b.brain.Think() {
			s.plan(b)
		}
		tx, ty, ok := s.nextWaypoint(b)
		if !ok {
			vel.X, vel.Y = 0, 0
			continue
		}
		others := neighborsExcept(s.neighbor, i)
		vel.X, vel.Y = pathfind.Steer(b.cx, b.cy, b.brain.Speed, tx, ty, others)
	}
}

func (s *BrainSystem) plan(b *brainBody) {
	start := s.Nav.Cell(b.cx, b.cy)
	if s.chasers[b.goal] >= s.FlowThreshold {
		ff, ok := s.flows[b.goal]
		if !ok {
			ff = pathfind.NewFlowField(s.Nav, b.goal.X, b.goal.Y)
			s.flows[b.goal] = ff
		}
		next, ok := ff.Next(start.X, start.Y)
		if !ok {
			b.brain.Waypoints = b.brain.Waypoints[:0]
			return
		}
		x, y := s.Nav.Center(next)
		b.brain.Waypoints = append(b.brain.Waypoints[:0], [2]float64{x, y})
		return
	}

	path := pathfind.SmoothPath(s.Nav, pathfind.FindPath(s.Nav, start.X, start.Y, b.goal.X, b.goal.Y))
	b.brain.Waypoints = b.brain.Waypoints[:0]
	for i, p := range path {
		if i == 0 && p == start {
			continue
		}
		x, y := s.Nav.Center(p)
		b.brain.Waypoints = append(b.brain.Waypoints, [2]float64{x, y})
	}
}

// nextWaypoint pops reached waypoints and returns the one to steer toward
func (s *BrainSystem) nextWaypoint(b *brainBody) (float64, float64, bool) {
	reach := max(b.brain.Speed, 1)
	for len(b.brain.Waypoints) > 0 {
		wp := b.brain.Waypoints[0]
		dx, dy := wp[0]-b.cx, wp[1]-b.cy
		if dx*dx+dy*dy > reach*reach {
			return wp[0], wp[1], true
		}
		b.brain.Waypoints = b.brain.Waypoints[1:]
	}
	return 0, 0, false
}

func neighborsExcept(all []pathfind.Neighbor, skip int) []pathfind.Neighbor {
	out := make([]pathfind.Neighbor, 0, len(all)-1)
	out = append(out, all[:skip]...)
	return append(out, all[skip+1:]...)
}
