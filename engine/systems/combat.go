package systems

import (
	"github.com/1siamBot/adventure-engine/engine/core"
	"github.com/1siamBot/adventure-engine/engine/event"
)

// Damaged is emitted when contact with a hostile took health points
type Damaged struct {
	Entity   core.EntityID
	Attacker core.EntityID
	Points   int
}

// Died is emitted when an entity's health reached zero
type Died struct {
	Entity core.EntityID
}

// CombatSystem applies contact damage: a non-solid entity with Health that
// touches an entity with a Brain loses ContactDamage points, then stays
// invincible for its Health cooldown. Update runs the cooldowns.
type CombatSystem struct {
	ContactDamage int

	world   *core.World
	queue   *event.Queue
	handles []event.Handle
}

func NewCombatSystem(w *core.World, m *event.Manager, contactDamage int) *CombatSystem {
	s := &CombatSystem{ContactDamage: contactDamage, world: w, queue: event.NewQueue()}
	s.handles = append(s.handles,
		event.SubscribeMethod(m, s, (*CombatSystem).onEnter),
		event.SubscribeMethod(m, s, (*CombatSystem).onContact),
	)
	return s
}

func (s *CombatSystem) Priority() int { return 20 }

func (s *CombatSystem) Events() *event.Queue { return s.queue }

func (s *CombatSystem) onEnter(ev EnterCollision) { s.hit(ev.A, ev.B) }

func (s *CombatSystem) onContact(ev InCollision) { s.hit(ev.A, ev.B) }

func (s *CombatSystem) hit(a, b core.EntityID) {
	victim, attacker, ok := s.world.TryPair(a, b, core.CompHealth, core.CompBrain)
	if !ok || s.world.Has(victim, core.CompBrain) {
		return
	}
	hp, _ := core.Get[*core.Health](s.world, victim)
	if hp.Points == 0 || !hp.Damage(s.ContactDamage) {
		return
	}
	s.queue.Add(Damaged{Entity: victim, Attacker: attacker, Points: hp.Points})
	if hp.Points == 0 {
		s.queue.Add(Died{Entity: victim})
	}
}

func (s *CombatSystem) Update(w *core.World, _ float64) {
	for _, hp := range core.Query1[*core.Health](w) {
		hp.Tick()
	}
}
