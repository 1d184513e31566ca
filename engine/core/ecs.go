package core

import "fmt"

// EntityID is an opaque entity handle: slot index in the low 32 bits,
// slot generation in the high 32 bits. The zero value never names an entity.
type EntityID uint64

func makeEntityID(index, gen uint32) EntityID {
	return EntityID(uint64(gen)<<32 | uint64(index))
}

// Index returns the storage slot of the entity
func (id EntityID) Index() uint32 { return uint32(id) }

// Generation returns how many times the slot had been recycled when the id was issued
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }

func (id EntityID) String() string {
	return fmt.Sprintf("#%d.%d", id.Index(), id.Generation())
}

// Component is a marker interface for all components.
// Components are pointer types whose Type method must not dereference the receiver.
type Component interface {
	Type() ComponentType
}

// ComponentType identifies the type of component
type ComponentType uint8

const (
	CompPosition ComponentType = iota
	CompVelocity
	CompHitBox
	CompRenderable
	CompAnimation
	CompHealth
	CompMove
	CompBrain
	CompDoor
	CompSign
	CompCollectable
	CompInteractor
	CompMax
)

var componentNames = [CompMax]string{
	CompPosition:    "Position",
	CompVelocity:    "Velocity",
	CompHitBox:      "HitBox",
	CompRenderable:  "Renderable",
	CompAnimation:   "Animation",
	CompHealth:      "Health",
	CompMove:        "Move",
	CompBrain:       "Brain",
	CompDoor:        "Door",
	CompSign:        "Sign",
	CompCollectable: "Collectable",
	CompInteractor:  "Interactor",
}

func (ct ComponentType) String() string {
	if ct < CompMax {
		return componentNames[ct]
	}
	return fmt.Sprintf("ComponentType(%d)", uint8(ct))
}

// Mask is a per-entity presence bitset over component types
type Mask uint64

// MaskOf builds the mask for a set of component types
func MaskOf(types ...ComponentType) Mask {
	var m Mask
	for _, t := range types {
		m |= 1 << t
	}
	return m
}

// Has reports whether ct is set in the mask
func (m Mask) Has(ct ComponentType) bool { return m&(1<<ct) != 0 }

// Contains reports whether every bit of other is set in m
func (m Mask) Contains(other Mask) bool { return m&other == other }

// World holds all entities and their components
type World struct {
	generations []uint32
	alive       []bool
	masks       []Mask
	free        []uint32
	live        int

	stores   [CompMax]*store
	toRemove []EntityID

	systems   []System
	TickCount uint64
}

// System processes entities each tick
type System interface {
	Update(w *World, dt float64)
	Priority() int
}

// NewWorld creates a new ECS world
func NewWorld() *World {
	w := &World{}
	for i := range w.stores {
		w.stores[i] = newStore()
	}
	return w
}

// CreateEntity allocates an id, reusing freed slots first, and attaches the given components
func (w *World) CreateEntity(comps ...Component) EntityID {
	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		idx = uint32(len(w.generations))
		w.generations = append(w.generations, 1)
		w.alive = append(w.alive, false)
		w.masks = append(w.masks, 0)
	}
	w.alive[idx] = true
	w.masks[idx] = 0
	w.live++

	id := makeEntityID(idx, w.generations[idx])
	for _, c := range comps {
		if c != nil {
			w.attach(id, c)
		}
	}
	return id
}

// Alive reports whether id names an entity that has not been deleted
func (w *World) Alive(id EntityID) bool {
	idx := id.Index()
	if int(idx) >= len(w.generations) {
		return false
	}
	return w.alive[idx] && w.generations[idx] == id.Generation()
}

// AddComponent attaches c to the entity, replacing any component of the same type
func (w *World) AddComponent(id EntityID, c Component) error {
	if !w.Alive(id) {
		return &StaleEntityError{Entity: id}
	}
	if c == nil {
		return nil
	}
	w.attach(id, c)
	return nil
}

func (w *World) attach(id EntityID, c Component) {
	ct := c.Type()
	w.stores[ct].set(id, c)
	w.masks[id.Index()] |= 1 << ct
}

// RemoveComponent detaches a component; returns false if the entity did not have it
func (w *World) RemoveComponent(id EntityID, ct ComponentType) bool {
	if !w.Alive(id) || !w.masks[id.Index()].Has(ct) {
		return false
	}
	w.stores[ct].remove(id.Index())
	w.masks[id.Index()] &^= 1 << ct
	return true
}

// Get returns a component for an entity. Stale ids report absence.
func (w *World) Get(id EntityID, ct ComponentType) (Component, bool) {
	if !w.Has(id, ct) {
		return nil, false
	}
	return w.stores[ct].get(id.Index()), true
}

// Has checks if an entity has a component
func (w *World) Has(id EntityID, ct ComponentType) bool {
	return w.Alive(id) && w.masks[id.Index()].Has(ct)
}

// Mask returns the component presence mask of an entity, zero for stale ids
func (w *World) Mask(id EntityID) Mask {
	if !w.Alive(id) {
		return 0
	}
	return w.masks[id.Index()]
}

// DeleteEntity schedules the entity for removal at the next tick boundary.
// Deleting an already deleted or stale id is a no-op.
func (w *World) DeleteEntity(id EntityID) {
	if w.Alive(id) {
		w.toRemove = append(w.toRemove, id)
	}
}

// DeleteEntityNow removes the entity and all of its components immediately.
// Must not be called while a query over the world is being iterated.
func (w *World) DeleteEntityNow(id EntityID) {
	if !w.Alive(id) {
		return
	}
	idx := id.Index()
	m := w.masks[idx]
	for ct := ComponentType(0); ct < CompMax; ct++ {
		if m.Has(ct) {
			w.stores[ct].remove(idx)
		}
	}
	w.masks[idx] = 0
	w.alive[idx] = false
	w.generations[idx]++
	w.free = append(w.free, idx)
	w.live--
}

// ClearDead flushes entities scheduled by DeleteEntity
func (w *World) ClearDead() {
	for _, id := range w.toRemove {
		w.DeleteEntityNow(id)
	}
	w.toRemove = w.toRemove[:0]
}

// Clear removes every entity and component
func (w *World) Clear() {
	for i := range w.alive {
		if w.alive[i] {
			w.DeleteEntityNow(makeEntityID(uint32(i), w.generations[i]))
		}
	}
	w.toRemove = w.toRemove[:0]
}

// AddSystem registers a system
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	// Sort by priority (simple insertion, equal priorities keep registration order)
	for i := len(w.systems) - 1; i > 0; i-- {
		if w.systems[i].Priority() < w.systems[i-1].Priority() {
			w.systems[i], w.systems[i-1] = w.systems[i-1], w.systems[i]
		}
	}
}

// Systems returns the registered systems in execution order
func (w *World) Systems() []System {
	out := make([]System, len(w.systems))
	copy(out, w.systems)
	return out
}

// Tick runs all systems once. Deferred deletions are flushed before and after.
func (w *World) Tick(dt float64) {
	w.ClearDead()
	for _, s := range w.systems {
		s.Update(w, dt)
	}
	w.ClearDead()
	w.TickCount++
}

// EntityCount returns the number of alive entities
func (w *World) EntityCount() int {
	return w.live
}

// ---- Typed access ----

func typeOf[T Component]() ComponentType {
	var zero T
	return zero.Type()
}

// Get returns the component of type T, the "try" variant that never fails loudly
func Get[T Component](w *World, id EntityID) (T, bool) {
	var zero T
	c, ok := w.Get(id, typeOf[T]())
	if !ok {
		return zero, false
	}
	t, ok := c.(T)
	return t, ok
}

// Require returns the component of type T or an error naming what is missing
func Require[T Component](w *World, id EntityID) (T, error) {
	var zero T
	if !w.Alive(id) {
		return zero, &StaleEntityError{Entity: id}
	}
	t, ok := Get[T](w, id)
	if !ok {
		return zero, &MissingComponentError{Entity: id, Type: typeOf[T]()}
	}
	return t, nil
}

// Has reports whether the entity has a component of type T
func Has[T Component](w *World, id EntityID) bool {
	return w.Has(id, typeOf[T]())
}

// TryPair checks both permutations of (a, b) for components ct1 and ct2 and
// returns the entities ordered so that first owns ct1 and second owns ct2.
func (w *World) TryPair(a, b EntityID, ct1, ct2 ComponentType) (first, second EntityID, ok bool) {
	switch {
	case w.Has(a, ct1) && w.Has(b, ct2):
		return a, b, true
	case w.Has(b, ct1) && w.Has(a, ct2):
		return b, a, true
	}
	return 0, 0, false
}

// TrySignature returns the entity of the pair owning ct first, and the other second
func (w *World) TrySignature(a, b EntityID, ct ComponentType) (owner, other EntityID, ok bool) {
	switch {
	case w.Has(a, ct):
		return a, b, true
	case w.Has(b, ct):
		return b, a, true
	}
	return 0, 0, false
}
