package systems

import (
	"github.com/1siamBot/adventure-engine/engine/core"
	"github.com/1siamBot/adventure-engine/engine/event"
)

// RemoveEntity asks for an entity to be deleted. Queue it with a delay to
// remove something a few frames later, for example after an effect played.
type RemoveEntity struct {
	Entity core.EntityID
}

// RemovalSystem deletes the entities named by RemoveEntity events. Ids that
// went stale in the meantime are ignored.
type RemovalSystem struct {
	pending []core.EntityID
	handle  event.Handle
}

// NewRemovalSystem creates the system and subscribes it to m. The
// subscription ends when the system is garbage collected.
func NewRemovalSystem(m *event.Manager) *RemovalSystem {
	s := &RemovalSystem{}
	s.handle = event.SubscribeMethod(m, s, (*RemovalSystem).onRemove)
	return s
}

func (s *RemovalSystem) onRemove(ev RemoveEntity) {
	s.pending = append(s.pending, ev.Entity)
}

func (s *RemovalSystem) Priority() int { return 0 }

// Update deletes right away: it runs between systems, never inside a query
func (s *RemovalSystem) Update(w *core.World, _ float64) {
	for _, id := range s.pending {
		w.DeleteEntityNow(id)
	}
	s.pending = s.pending[:0]
}

// Pending returns how many removals wait for the next update
func (s *RemovalSystem) Pending() int { return len(s.pending) }
