package systems

import (
	"reflect"
	"testing"

	"github.com/1siamBot/adventure-engine/engine/core"
	"github.com/1siamBot/adventure-engine/engine/event"
)

func TestContactDamageWithCooldown(t *testing.T) {
	w := core.NewWorld()
	m := event.NewManager()
	hp := &core.Health{Points: 3, MaxPoints: 3, CooldownTime: 2}
	player := w.CreateEntity(hp)
	slime := w.CreateEntity(&core.Brain{})
	cs := NewCombatSystem(w, m, 2)

	m.Dispatch(EnterCollision{A: slime, B: player})
	m.Dispatch(InCollision{A: slime, B: player})
	if hp.Points != 1 {
		t.Fatalf("points %d after a hit inside the cooldown", hp.Points)
	}
	cs.Update(w, 0)
	cs.Update(w, 0)
	m.Dispatch(InCollision{A: player, B: slime})

	got := drain(cs.Events())
	want := []any{
		Damaged{Entity: player, Attacker: slime, Points: 1},
		Damaged{Entity: player, Attacker: slime, Points: 0},
		Died{Entity: player},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("events %v, want %v", got, want)
	}
}

func TestContactBetweenHostilesIgnored(t *testing.T) {
	w := core.NewWorld()
	m := event.NewManager()
	hp := &core.Health{Points: 3}
	a := w.CreateEntity(hp, &core.Brain{})
	b := w.CreateEntity(&core.Brain{})
	cs := NewCombatSystem(w, m, 1)
	m.Dispatch(EnterCollision{A: a, B: b})
	if hp.Points != 3 || cs.Events().Len() != 0 {
		t.Error("hostiles hurt each other")
	}
}
