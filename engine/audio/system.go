package audio

import (
	"github.com/1siamBot/adventure-engine/engine/core"
	"github.com/1siamBot/adventure-engine/engine/event"
	"github.com/1siamBot/adventure-engine/engine/systems"
)

// SoundSystem turns gameplay events into sound effects positioned relative
// to the listener entity, normally the player
type SoundSystem struct {
	Audio    *Manager
	Listener core.EntityID

	world   *core.World
	handles []event.Handle
}

// NewSoundSystem subscribes to the events that make a sound. The
// subscriptions end when the system is garbage collected.
func NewSoundSystem(w *core.World, m *event.Manager, am *Manager, listener core.EntityID) *SoundSystem {
	s := &SoundSystem{Audio: am, Listener: listener, world: w}
	s.handles = append(s.handles,
		event.SubscribeMethod(m, s, (*SoundSystem).onSolidEnter),
		event.SubscribeMethod(m, s, (*SoundSystem).onSquished),
		event.SubscribeMethod(m, s, (*SoundSystem).onDamaged),
		event.SubscribeMethod(m, s, (*SoundSystem).onDied),
	)
	return s
}

func (s *SoundSystem) Priority() int { return 90 }

// Update follows the listener entity
func (s *SoundSystem) Update(w *core.World, _ float64) {
	if pos, ok := core.Get[*core.Position](w, s.Listener); ok {
		s.Audio.SetListener(pos.X, pos.Y)
	}
}

func (s *SoundSystem) playAt(id SoundID, e core.EntityID) {
	pos, ok := core.Get[*core.Position](s.world, e)
	if !ok {
		return
	}
	s.Audio.PlayAt(id, pos.X, pos.Y)
}

func (s *SoundSystem) onSolidEnter(ev systems.SolidEnterCollision) {
	if ev.Repeat {
		return
	}
	s.playAt(SndBump, ev.Entity)
}

func (s *SoundSystem) onSquished(ev systems.HitboxSquished) { s.playAt(SndSquished, ev.Entity) }

func (s *SoundSystem) onDamaged(ev systems.Damaged) { s.playAt(SndHurt, ev.Entity) }

func (s *SoundSystem) onDied(ev systems.Died) { s.playAt(SndDie, ev.Entity) }
