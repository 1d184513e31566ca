package core

import (
	"errors"
	"slices"
	"testing"
)

func TestCreateEntityAttachesComponents(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity(NewPosition(1, 2), &Velocity{X: 1})

	if !w.Alive(id) {
		t.Fatalf("new entity %v not alive", id)
	}
	if !w.Has(id, CompPosition) || !w.Has(id, CompVelocity) {
		t.Fatalf("expected position and velocity, mask %b", w.Mask(id))
	}
	if w.Has(id, CompHitBox) {
		t.Errorf("unexpected hitbox")
	}
	if id == 0 {
		t.Errorf("zero id issued")
	}
	if w.EntityCount() != 1 {
		t.Errorf("expected 1 entity, got %d", w.EntityCount())
	}
}

func TestGetAfterRemoveReportsAbsence(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity(NewPosition(0, 0))

	if !w.RemoveComponent(id, CompPosition) {
		t.Fatal("remove returned false for present component")
	}
	if _, ok := w.Get(id, CompPosition); ok {
		t.Error("component still reported after removal")
	}
	if w.RemoveComponent(id, CompPosition) {
		t.Error("second removal reported success")
	}
}

func TestAddComponentReplacesSameType(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity(NewPosition(0, 0))
	if err := w.AddComponent(id, NewPosition(5, 6)); err != nil {
		t.Fatalf("AddComponent: %v", err)
	}
	p, ok := Get[*Position](w, id)
	if !ok || p.X != 5 || p.Y != 6 {
		t.Fatalf("expected replaced position (5,6), got %+v", p)
	}
	if n := len(w.Entities(CompPosition)); n != 1 {
		t.Errorf("expected single position owner, got %d", n)
	}
}

func TestStaleIDNeverMatchesReusedSlot(t *testing.T) {
	w := NewWorld()
	old := w.CreateEntity(NewPosition(0, 0))
	w.DeleteEntityNow(old)

	fresh := w.CreateEntity(NewPosition(9, 9))
	if fresh.Index() != old.Index() {
		t.Fatalf("expected slot reuse, got %v after %v", fresh, old)
	}
	if fresh == old {
		t.Fatal("reused slot issued identical id")
	}
	if w.Alive(old) {
		t.Error("stale id reported alive")
	}
	if _, ok := Get[*Position](w, old); ok {
		t.Error("stale id returned a component")
	}
	if err := w.AddComponent(old, &Velocity{}); !errors.Is(err, ErrStaleEntity) {
		t.Errorf("expected ErrStaleEntity, got %v", err)
	}
	// deleting a stale id must not touch the new occupant
	w.DeleteEntityNow(old)
	w.DeleteEntity(old)
	w.ClearDead()
	if !w.Alive(fresh) {
		t.Error("stale delete removed the new occupant")
	}
}

func TestDeleteEntityIsDeferredAndIdempotent(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity(NewPosition(0, 0))

	w.DeleteEntity(id)
	w.DeleteEntity(id)
	if !w.Alive(id) {
		t.Fatal("deferred delete removed entity before flush")
	}
	w.ClearDead()
	if w.Alive(id) {
		t.Fatal("entity alive after flush")
	}
	if w.EntityCount() != 0 {
		t.Errorf("expected 0 entities, got %d", w.EntityCount())
	}
	if n := len(w.Entities(CompPosition)); n != 0 {
		t.Errorf("components of deleted entity still queryable: %d", n)
	}
}

func TestRequireReportsMissingComponent(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity(NewPosition(0, 0))

	if _, err := Require[*Position](w, id); err != nil {
		t.Fatalf("Require position: %v", err)
	}
	_, err := Require[*Health](w, id)
	var missing *MissingComponentError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingComponentError, got %v", err)
	}
	if missing.Type != CompHealth || missing.Entity != id {
		t.Errorf("unexpected error contents: %+v", missing)
	}
	if !errors.Is(err, ErrMissingComponent) {
		t.Error("error does not unwrap to ErrMissingComponent")
	}
}

func TestQueryIntersectsTypes(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity(NewPosition(0, 0), &Velocity{})
	w.CreateEntity(NewPosition(0, 0))
	c := w.CreateEntity(NewPosition(0, 0), &Velocity{}, &Health{})
	w.CreateEntity(&Velocity{})

	got := w.Entities(CompPosition, CompVelocity)
	slices.Sort(got)
	want := []EntityID{a, c}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := w.Entities(); len(got) != 0 {
		t.Errorf("empty type list matched %v", got)
	}
}

func TestQueryOrderStableWithinFrame(t *testing.T) {
	w := NewWorld()
	for i := range 20 {
		w.CreateEntity(NewPosition(float64(i), 0), &Velocity{})
	}
	first := w.Entities(CompPosition, CompVelocity)
	second := w.Entities(CompPosition, CompVelocity)
	if !slices.Equal(first, second) {
		t.Errorf("order changed between iterations:\n%v\n%v", first, second)
	}
}

func TestQuerySkipsComponentsRemovedDuringIteration(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity(NewPosition(0, 0))
	b := w.CreateEntity(NewPosition(1, 0))

	var seen []EntityID
	for id := range w.Query(CompPosition) {
		seen = append(seen, id)
		if id == a {
			w.RemoveComponent(b, CompPosition)
		}
	}
	if !slices.Equal(seen, []EntityID{a}) {
		t.Errorf("expected only %v, got %v", a, seen)
	}
}

func TestQuery2YieldsComponents(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity(NewPosition(3, 4), &Velocity{X: 1, Y: -1})

	count := 0
	for got, c := range Query2[*Position, *Velocity](w) {
		count++
		if got != id {
			t.Errorf("unexpected entity %v", got)
		}
		if c.First.X != 3 || c.Second.Y != -1 {
			t.Errorf("wrong components %+v %+v", c.First, c.Second)
		}
	}
	if count != 1 {
		t.Errorf("expected 1 result, got %d", count)
	}
}

func TestTryPairAndSignature(t *testing.T) {
	w := NewWorld()
	door := w.CreateEntity(&Door{TargetMap: "cave"}, &HitBox{W: 1, H: 1})
	player := w.CreateEntity(NewPosition(0, 0), &HitBox{W: 1, H: 1})

	first, second, ok := w.TryPair(player, door, CompDoor, CompPosition)
	if !ok || first != door || second != player {
		t.Errorf("TryPair = %v %v %v", first, second, ok)
	}
	if _, _, ok := w.TryPair(player, door, CompSign, CompPosition); ok {
		t.Error("TryPair matched a missing component")
	}
	owner, other, ok := w.TrySignature(player, door, CompDoor)
	if !ok || owner != door || other != player {
		t.Errorf("TrySignature = %v %v %v", owner, other, ok)
	}
}

type recordingSystem struct {
	name     string
	priority int
	log      *[]string
}

func (s *recordingSystem) Update(w *World, dt float64) { *s.log = append(*s.log, s.name) }
func (s *recordingSystem) Priority() int               { return s.priority }

func TestTickRunsSystemsByPriority(t *testing.T) {
	w := NewWorld()
	var log []string
	w.AddSystem(&recordingSystem{name: "render", priority: 90, log: &log})
	w.AddSystem(&recordingSystem{name: "move", priority: 10, log: &log})
	w.AddSystem(&recordingSystem{name: "collide", priority: 20, log: &log})
	w.AddSystem(&recordingSystem{name: "move2", priority: 10, log: &log})

	w.Tick(1.0 / 60)
	want := []string{"move", "move2", "collide", "render"}
	if !slices.Equal(log, want) {
		t.Errorf("expected %v, got %v", want, log)
	}
	if w.TickCount != 1 {
		t.Errorf("expected tick count 1, got %d", w.TickCount)
	}
}

type deletingSystem struct{ target EntityID }

func (s *deletingSystem) Update(w *World, dt float64) { w.DeleteEntity(s.target) }
func (s *deletingSystem) Priority() int               { return 0 }

func TestTickFlushesDeletesAfterSystems(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity(NewPosition(0, 0))
	w.AddSystem(&deletingSystem{target: id})

	w.Tick(1.0 / 60)
	if w.Alive(id) {
		t.Error("entity survived tick after DeleteEntity")
	}
}

func TestClearRemovesEverything(t *testing.T) {
	w := NewWorld()
	for range 5 {
		w.CreateEntity(NewPosition(0, 0), &HitBox{W: 1, H: 1})
	}
	w.Clear()
	if w.EntityCount() != 0 {
		t.Errorf("expected empty world, got %d", w.EntityCount())
	}
	if n := len(w.Entities(CompHitBox)); n != 0 {
		t.Errorf("expected no hitboxes, got %d", n)
	}
}
