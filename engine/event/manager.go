package event

import (
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"weak"
)

// Handle names one subscription so it can be removed explicitly
type Handle struct {
	kind Kind
	id   uint64
}

// Kind returns the event kind the subscription listens to
func (h Handle) Kind() Kind { return h.kind }

// Valid reports whether the handle was issued by a manager
func (h Handle) Valid() bool { return h.id != 0 }

type subscriber struct {
	id uint64
	// call invokes the handler; false means the owner is gone
	call    func(ev any) bool
	removed atomic.Bool
}

// Manager dispatches events to subscribers registered by event kind.
//
// Plain function subscribers are held until unsubscribed. Method subscribers
// reference their owner weakly: once the owner is garbage collected the
// subscription disappears on its own, and dispatch never calls it again.
// Collection cleanups run on a runtime goroutine, hence the mutex.
type Manager struct {
	mu     sync.Mutex
	subs   map[Kind][]*subscriber
	taps   []*subscriber
	nextID uint64
}

// NewManager creates a manager with no subscribers
func NewManager() *Manager {
	return &Manager{subs: make(map[Kind][]*subscriber)}
}

// Subscribe registers fn for events of type E
func Subscribe[E any](m *Manager, fn func(E)) Handle {
	return m.add(KindFor[E](), func(ev any) bool {
		fn(ev.(E))
		return true
	})
}

// SubscribeMethod registers a handler bound to owner without keeping owner
// alive. Pass a method expression such as (*Player).OnButton so the closure
// does not capture the owner itself.
func SubscribeMethod[O, E any](m *Manager, owner *O, method func(*O, E)) Handle {
	if owner == nil {
		return Handle{}
	}
	ref := weak.Make(owner)
	h := m.add(KindFor[E](), func(ev any) bool {
		o := ref.Value()
		if o == nil {
			return false
		}
		method(o, ev.(E))
		return true
	})
	runtime.AddCleanup(owner, func(h Handle) { m.Unsubscribe(h) }, h)
	return h
}

func (m *Manager) add(kind Kind, call func(any) bool) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	s := &subscriber{id: m.nextID, call: call}
	if kind == nil {
		m.taps = append(m.taps, s)
	} else {
		m.subs[kind] = append(m.subs[kind], s)
	}
	return Handle{kind: kind, id: s.id}
}

// Tap registers an observer called with every dispatched event, before its
// subscribers. Remove it with Unsubscribe.
func (m *Manager) Tap(fn func(ev any)) Handle {
	return m.add(nil, func(ev any) bool {
		fn(ev)
		return true
	})
}

// Unsubscribe removes one subscription. Removing the last subscriber of a
// kind drops the kind entirely. Returns false for unknown or already removed handles.
func (m *Manager) Unsubscribe(h Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h.kind == nil {
		var ok bool
		m.taps, ok = removeID(m.taps, h.id)
		return ok
	}
	list, ok := removeID(m.subs[h.kind], h.id)
	if !ok {
		return false
	}
	if len(list) == 0 {
		delete(m.subs, h.kind)
	} else {
		m.subs[h.kind] = list
	}
	return true
}

func removeID(list []*subscriber, id uint64) ([]*subscriber, bool) {
	i := slices.IndexFunc(list, func(s *subscriber) bool { return s.id == id })
	if i < 0 {
		return list, false
	}
	list[i].removed.Store(true)
	// copy on removal: dispatch may be iterating a snapshot of the old slice
	return slices.Concat(list[:i], list[i+1:]), true
}

// UnsubscribeAll removes every subscriber of the given kinds, or of all kinds
// when none are given. Taps are kept.
func (m *Manager) UnsubscribeAll(kinds ...Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	drop := func(k Kind) {
		for _, s := range m.subs[k] {
			s.removed.Store(true)
		}
		delete(m.subs, k)
	}
	if len(kinds) == 0 {
		for k := range m.subs {
			drop(k)
		}
		return
	}
	for _, k := range kinds {
		drop(k)
	}
}

// Dispatch calls every live subscriber of the event's kind, in subscription
// order. Handlers may subscribe, unsubscribe or dispatch further events;
// subscribers removed during the pass are skipped, ones added are not called.
func (m *Manager) Dispatch(ev any) {
	if ev == nil {
		return
	}
	kind := KindOf(ev)

	m.mu.Lock()
	taps := m.taps
	subs := m.subs[kind]
	m.mu.Unlock()

	for _, t := range taps {
		if !t.removed.Load() {
			t.call(ev)
		}
	}
	for _, s := range subs {
		if s.removed.Load() {
			continue
		}
		if !s.call(ev) {
			m.Unsubscribe(Handle{kind: kind, id: s.id})
		}
	}
}

// ProcessQueue dispatches every ready event of q, including events that
// handlers add without delay during the pass, then advances the delayed
// countdowns by one frame.
func (m *Manager) ProcessQueue(q *Queue) {
	for {
		ev, ok := q.Pop()
		if !ok {
			break
		}
		m.Dispatch(ev)
	}
	q.Advance()
}

// Subscribers returns the number of registered subscribers for a kind
func (m *Manager) Subscribers(kind Kind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs[kind])
}

// Kinds returns the kinds that currently have subscribers
func (m *Manager) Kinds() []Kind {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Kind, 0, len(m.subs))
	for k := range m.subs {
		out = append(out, k)
	}
	return out
}
