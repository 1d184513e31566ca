package core

import (
	"errors"
	"testing"
)

func TestHitBoxOverlaps(t *testing.T) {
	base := &HitBox{X: 0, Y: 0, W: 10, H: 10}
	tests := []struct {
		name string
		o    *HitBox
		want bool
		area int
	}{
		{"inside", &HitBox{X: 2, Y: 2, W: 2, H: 2}, true, 4},
		{"partial", &HitBox{X: 8, Y: 5, W: 4, H: 10}, true, 10},
		{"touching edge", &HitBox{X: 10, Y: 0, W: 5, H: 5}, false, 0},
		{"disjoint", &HitBox{X: 20, Y: 20, W: 5, H: 5}, false, 0},
		{"zero width", &HitBox{X: 5, Y: 5, W: 0, H: 5}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.o); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := base.ClipArea(tt.o); got != tt.area {
				t.Errorf("ClipArea = %d, want %d", got, tt.area)
			}
		})
	}
}

func TestNewHitBoxValidation(t *testing.T) {
	if _, err := NewHitBox(HitBox{W: 0, H: 4}); !errors.Is(err, ErrConfiguration) {
		t.Errorf("zero width: expected ErrConfiguration, got %v", err)
	}
	if _, err := NewHitBox(HitBox{W: 4, H: 4, SkinDepth: -1}); !errors.Is(err, ErrConfiguration) {
		t.Errorf("negative skin: expected ErrConfiguration, got %v", err)
	}
	hb, err := NewHitBox(HitBox{W: 4, H: 6, OffsetX: 1, SkinDepth: 2})
	if err != nil {
		t.Fatalf("valid hitbox rejected: %v", err)
	}
	hb.SyncTo(NewPosition(10.4, 20.6))
	if hb.X != 11 || hb.Y != 21 {
		t.Errorf("SyncTo placed box at (%d,%d)", hb.X, hb.Y)
	}
}

func TestPositionTracksPrevious(t *testing.T) {
	p := NewPosition(1, 1)
	p.MoveBy(2, -1)
	if p.PrevX != 1 || p.PrevY != 1 || p.X != 3 || p.Y != 0 {
		t.Errorf("unexpected position after MoveBy: %+v", p)
	}
	dx, dy := p.Delta()
	if dx != 2 || dy != -1 {
		t.Errorf("Delta = (%v,%v)", dx, dy)
	}
	p.MoveTo(0, 0)
	if p.PrevX != 3 || p.PrevY != 0 {
		t.Errorf("MoveTo did not record previous: %+v", p)
	}
}

func TestAnimationAdvance(t *testing.T) {
	a := &Animation{Frames: []string{"a", "b"}, FrameTicks: 2}
	var ended bool
	seen := []string{a.Current()}
	for range 4 {
		ended = a.Advance()
		seen = append(seen, a.Current())
	}
	if !ended {
		t.Error("non-repeating animation did not end")
	}
	if seen[2] != "b" || seen[4] != "b" {
		t.Errorf("unexpected frames %v", seen)
	}

	loop := &Animation{Frames: []string{"a", "b"}, FrameTicks: 1, Repeat: true}
	loop.Advance()
	if loop.Advance() || loop.Current() != "a" {
		t.Errorf("repeating animation did not wrap: %q", loop.Current())
	}
}

func TestHealthCooldown(t *testing.T) {
	h := &Health{Points: 5, MaxPoints: 5, CooldownTime: 2}
	if !h.Damage(2) {
		t.Fatal("first hit ignored")
	}
	if h.Damage(2) {
		t.Error("hit during cooldown applied")
	}
	h.Tick()
	h.Tick()
	if !h.Damage(10) || h.Points != 0 {
		t.Errorf("expected clamp to 0, got %d", h.Points)
	}
}

func TestGameLoopFixedSteps(t *testing.T) {
	steps := 0
	paused := NewGameLoop(10, func(dt float64) { steps++ })
	paused.Advance(0.35)
	if steps != 0 {
		t.Fatalf("stepped while not playing")
	}

	gl := NewGameLoop(10, func(dt float64) { steps++ })
	gl.Play()
	alpha := gl.Advance(0.25)
	if steps != 2 || gl.CurrentTick() != 2 {
		t.Errorf("expected 2 steps, got %d", steps)
	}
	if alpha < 0.49 || alpha > 0.51 {
		t.Errorf("alpha = %v", alpha)
	}
}
