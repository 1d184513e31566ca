package systems

import (
	"cmp"
	"math"
	"slices"

	"github.com/1siamBot/adventure-engine/engine/core"
	"github.com/1siamBot/adventure-engine/engine/event"
)

// SolidEnterCollision is emitted every frame a non-solid hitbox touches a
// solid one. Repeat is set when the entity was already touching a solid on
// the previous frame, so handlers interested only in first contact can skip it.
type SolidEnterCollision struct {
	Solid  core.EntityID
	Entity core.EntityID
	Repeat bool
}

// SolidExitCollision is emitted the first frame an entity touches no solid
type SolidExitCollision struct {
	Entity core.EntityID
}

// HitboxSquished is emitted when resolution could not free an entity from
// two or more solids at once
type HitboxSquished struct {
	Entity core.EntityID
}

// EnterCollision is emitted the first frame two non-solid hitboxes overlap
type EnterCollision struct {
	A, B core.EntityID
}

// InCollision is emitted every following frame the pair keeps overlapping
type InCollision struct {
	A, B core.EntityID
}

// ExitCollision is emitted the frame the pair stops overlapping
type ExitCollision struct {
	A, B core.EntityID
}

// DefaultDiagonalTolerance is the largest |dx|-|dy| difference still treated as diagonal movement
const DefaultDiagonalTolerance = 0.01

type side uint8

const (
	sideLeft side = iota
	sideRight
	sideTop
	sideBottom
)

func (s side) horizontal() bool { return s == sideLeft || s == sideRight }

type body struct {
	id     core.EntityID
	hb     *core.HitBox
	pos    *core.Position
	dx, dy float64 // displacement this frame, captured before resolution
}

type solidContact struct {
	solid body
	other body
	area  int
}

type pairKey struct {
	lo, hi core.EntityID
}

func keyOf(a, b core.EntityID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// pairOrder remembers a pair in the order iteration met it
type pairOrder struct {
	a, b core.EntityID
}

// CollisionSystem keeps non-solid hitboxes out of solid ones and reports
// contact transitions through its queue. Its only state across frames is the
// set of entities touching solids and the set of overlapping non-solid pairs.
type CollisionSystem struct {
	DiagonalTolerance float64

	queue     *event.Queue
	prevSolid map[core.EntityID]struct{}
	prevPairs map[pairKey]pairOrder
	solids    []body
	nonSolids []body
	contacts  []solidContact
	touched   map[core.EntityID]struct{}
	pairs     map[pairKey]pairOrder
}

// NewCollisionSystem creates a collision pass with the default diagonal tolerance
func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{
		DiagonalTolerance: DefaultDiagonalTolerance,
		queue:             event.NewQueue(),
		prevSolid:         make(map[core.EntityID]struct{}),
		prevPairs:         make(map[pairKey]pairOrder),
		touched:           make(map[core.EntityID]struct{}),
		pairs:             make(map[pairKey]pairOrder),
	}
}

func (s *CollisionSystem) Priority() int { return 30 }

// Events returns the queue collision events are written to
func (s *CollisionSystem) Events() *event.Queue { return s.queue }

func (s *CollisionSystem) Update(w *core.World, _ float64) {
	s.partition(w)
	s.resolveSolids()
	s.reportSolids(w)
	s.reportSquished()
	s.reportPairs(w)
}

// partition splits hitboxes into solids and non-solids in query order and
// brings non-solid boxes in line with their positions.
func (s *CollisionSystem) partition(w *core.World) {
	s.solids = s.solids[:0]
	s.nonSolids = s.nonSolids[:0]
	for id, hb := range core.Query1[*core.HitBox](w) {
		if hb.Solid {
			s.solids = append(s.solids, body{id: id, hb: hb})
			continue
		}
		b := body{id: id, hb: hb}
		if pos, ok := core.Get[*core.Position](w, id); ok {
			hb.SyncTo(pos)
			b.pos = pos
			b.dx, b.dy = pos.Delta()
		}
		s.nonSolids = append(s.nonSolids, b)
	}
}

func (s *CollisionSystem) resolveSolids() {
	s.contacts = s.contacts[:0]
	for _, sb := range s.solids {
		for _, nb := range s.nonSolids {
			if area := sb.hb.ClipArea(nb.hb); area > 0 {
				s.contacts = append(s.contacts, solidContact{solid: sb, other: nb, area: area})
			}
		}
	}

	// deepest first; equal areas keep query order
	order := slices.Clone(s.contacts)
	slices.SortStableFunc(order, func(a, b solidContact) int {
		return cmp.Compare(b.area, a.area)
	})
	for _, c := range order {
		s.resolve(c.solid.hb, c.other)
	}
}

// resolve pushes hb out of solid along the side of least penetration and,
// when the overlap on the other axis is within the skin depth, nudges it one
// unit off the corner so it can slide past.
func (s *CollisionSystem) resolve(solid *core.HitBox, nb body) {
	hb := nb.hb
	if !solid.Overlaps(hb) {
		return
	}
	dist := [4]int{
		sideLeft:   abs(hb.Left() - solid.Right()),
		sideRight:  abs(hb.Right() - solid.Left()),
		sideTop:    abs(hb.Top() - solid.Bottom()),
		sideBottom: abs(hb.Bottom() - solid.Top()),
	}
	if min(dist[0], dist[1], dist[2], dist[3]) == 0 {
		return
	}

	primary := s.primarySide(dist, nb.dx, nb.dy)
	var secondary side
	if primary.horizontal() {
		secondary = smaller(dist, sideTop, sideBottom)
	} else {
		secondary = smaller(dist, sideLeft, sideRight)
	}

	moved := snap(hb, solid, primary)
	if !s.diagonal(nb.dx, nb.dy) && dist[secondary] > 0 && dist[secondary] <= hb.SkinDepth {
		moved |= nudge(hb, secondary)
	}

	// write back without touching PrevX/PrevY
	if nb.pos == nil {
		return
	}
	if moved&movedX != 0 {
		nb.pos.X = float64(hb.X - hb.OffsetX)
	}
	if moved&movedY != 0 {
		nb.pos.Y = float64(hb.Y - hb.OffsetY)
	}
}

// primarySide picks the side of least penetration. Ties push across the
// motion so a box hitting a corner slides past it: horizontal sides win for
// mostly vertical motion, vertical sides otherwise and when still.
func (s *CollisionSystem) primarySide(dist [4]int, dx, dy float64) side {
	best := min(dist[0], dist[1], dist[2], dist[3])
	horizontalFirst := math.Abs(dx) < math.Abs(dy)
	order := [4]side{sideTop, sideBottom, sideLeft, sideRight}
	if horizontalFirst {
		order = [4]side{sideLeft, sideRight, sideTop, sideBottom}
	}
	for _, sd := range order {
		if dist[sd] == best {
			return sd
		}
	}
	return order[0]
}

func (s *CollisionSystem) diagonal(dx, dy float64) bool {
	if math.Abs(dx) < core.ZeroThreshold || math.Abs(dy) < core.ZeroThreshold {
		return false
	}
	return math.Abs(math.Abs(dx)-math.Abs(dy)) <= s.DiagonalTolerance
}

func smaller(dist [4]int, a, b side) side {
	if dist[b] < dist[a] {
		return b
	}
	return a
}

type axisMask uint8

const (
	movedX axisMask = 1 << iota
	movedY
)

// snap places the given edge of hb flush against the opposing edge of solid
func snap(hb, solid *core.HitBox, sd side) axisMask {
	switch sd {
	case sideLeft:
		hb.X = solid.Right()
		return movedX
	case sideRight:
		hb.X = solid.Left() - hb.W
		return movedX
	case sideTop:
		hb.Y = solid.Bottom()
		return movedY
	default:
		hb.Y = solid.Top() - hb.H
		return movedY
	}
}

// nudge moves hb one unit away from the solid edge it overlaps on sd
func nudge(hb *core.HitBox, sd side) axisMask {
	switch sd {
	case sideLeft:
		hb.X++
		return movedX
	case sideRight:
		hb.X--
		return movedX
	case sideTop:
		hb.Y++
		return movedY
	default:
		hb.Y--
		return movedY
	}
}

func (s *CollisionSystem) reportSolids(w *core.World) {
	clear(s.touched)
	for _, c := range s.contacts {
		_, repeat := s.prevSolid[c.other.id]
		s.queue.Add(SolidEnterCollision{Solid: c.solid.id, Entity: c.other.id, Repeat: repeat})
		s.touched[c.other.id] = struct{}{}
	}

	pruneDead(w, s.prevSolid)
	var exits []core.EntityID
	for id := range s.prevSolid {
		if _, ok := s.touched[id]; !ok {
			exits = append(exits, id)
		}
	}
	slices.Sort(exits)
	for _, id := range exits {
		s.queue.Add(SolidExitCollision{Entity: id})
	}

	clear(s.prevSolid)
	for id := range s.touched {
		s.prevSolid[id] = struct{}{}
	}
}

func pruneDead(w *core.World, set map[core.EntityID]struct{}) {
	for id := range set {
		if !w.Alive(id) {
			delete(set, id)
		}
	}
}

func (s *CollisionSystem) reportSquished() {
	for _, nb := range s.nonSolids {
		n := 0
		for _, sb := range s.solids {
			if sb.hb.Overlaps(nb.hb) {
				n++
			}
		}
		if n >= 2 {
			s.queue.Add(HitboxSquished{Entity: nb.id})
		}
	}
}

func (s *CollisionSystem) reportPairs(w *core.World) {
	clear(s.pairs)
	for i, a := range s.nonSolids {
		for _, b := range s.nonSolids[i+1:] {
			if !a.hb.Overlaps(b.hb) {
				continue
			}
			key := keyOf(a.id, b.id)
			if _, ok := s.prevPairs[key]; ok {
				s.queue.Add(InCollision{A: a.id, B: b.id})
			} else {
				s.queue.Add(EnterCollision{A: a.id, B: b.id})
			}
			s.pairs[key] = pairOrder{a: a.id, b: b.id}
		}
	}

	var exits []pairKey
	for key := range s.prevPairs {
		if !w.Alive(key.lo) || !w.Alive(key.hi) {
			continue
		}
		if _, ok := s.pairs[key]; !ok {
			exits = append(exits, key)
		}
	}
	slices.SortFunc(exits, func(a, b pairKey) int {
		if c := cmp.Compare(a.lo, b.lo); c != 0 {
			return c
		}
		return cmp.Compare(a.hi, b.hi)
	})
	for _, key := range exits {
		last := s.prevPairs[key]
		s.queue.Add(ExitCollision{A: last.a, B: last.b})
	}

	clear(s.prevPairs)
	for key, order := range s.pairs {
		s.prevPairs[key] = order
	}
}

// Reset forgets contact history, used when a scene swaps its map
func (s *CollisionSystem) Reset() {
	clear(s.prevSolid)
	clear(s.prevPairs)
	s.queue.Clear()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
