package core

import (
	"iter"
	"slices"
)

// Query returns a lazy sequence of every entity that has ALL specified component types.
//
// Iteration is driven by the smallest of the requested stores and follows its
// dense order, so repeated iteration over unmodified storage yields the same
// order. Components added or removed during iteration are re-checked before an
// entity is yielded; deletions should go through DeleteEntity.
func (w *World) Query(types ...ComponentType) iter.Seq[EntityID] {
	return func(yield func(EntityID) bool) {
		if len(types) == 0 {
			return
		}
		mask := MaskOf(types...)
		driver := w.stores[types[0]]
		for _, t := range types[1:] {
			if w.stores[t].len() < driver.len() {
				driver = w.stores[t]
			}
		}
		owners := slices.Clone(driver.owners)
		for _, id := range owners {
			if !w.Alive(id) || !w.masks[id.Index()].Contains(mask) {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// Entities collects the result of Query into a slice
func (w *World) Entities(types ...ComponentType) []EntityID {
	return slices.Collect(w.Query(types...))
}

// Pair carries two component references yielded by Query2
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple carries three component references yielded by Query3
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Query1 iterates entities with component A
func Query1[A Component](w *World) iter.Seq2[EntityID, A] {
	return func(yield func(EntityID, A) bool) {
		ta := typeOf[A]()
		for id := range w.Query(ta) {
			a, _ := w.stores[ta].get(id.Index()).(A)
			if !yield(id, a) {
				return
			}
		}
	}
}

// Query2 iterates entities with components A and B
func Query2[A, B Component](w *World) iter.Seq2[EntityID, Pair[A, B]] {
	return func(yield func(EntityID, Pair[A, B]) bool) {
		ta, tb := typeOf[A](), typeOf[B]()
		for id := range w.Query(ta, tb) {
			var p Pair[A, B]
			p.First, _ = w.stores[ta].get(id.Index()).(A)
			p.Second, _ = w.stores[tb].get(id.Index()).(B)
			if !yield(id, p) {
				return
			}
		}
	}
}

// Query3 iterates entities with components A, B and C
func Query3[A, B, C Component](w *World) iter.Seq2[EntityID, Triple[A, B, C]] {
	return func(yield func(EntityID, Triple[A, B, C]) bool) {
		ta, tb, tc := typeOf[A](), typeOf[B](), typeOf[C]()
		for id := range w.Query(ta, tb, tc) {
			var t Triple[A, B, C]
			t.First, _ = w.stores[ta].get(id.Index()).(A)
			t.Second, _ = w.stores[tb].get(id.Index()).(B)
			t.Third, _ = w.stores[tc].get(id.Index()).(C)
			if !yield(id, t) {
				return
			}
		}
	}
}
