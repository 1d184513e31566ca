package main

import (
	"runtime"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/1siamBot/adventure-engine/engine/core"
	"github.com/1siamBot/adventure-engine/engine/input"
)

func holding(frames int, b ...input.Button) [][]input.Button {
	out := make([][]input.Button, frames)
	for i := range out {
		out[i] = b
	}
	return out
}

func TestSandboxWalkIntoWall(t *testing.T) {
	layout := []string{
		"#####",
		"#@ *#",
		"#####",
	}
	ctrl := &input.Scripted{Frames: holding(30, input.ButtonDPadRight)}
	sb, err := NewSandbox(layout, ctrl, 0.5)
	if err != nil {
		t.Fatalf("NewSandbox: %v", err)
	}
	for range 35 {
		sb.Step(1.0 / 60)
	}

	pos, _ := core.Get[*core.Position](sb.World, sb.Player)
	if pos.X != 12 || pos.Y != 4 {
		t.Errorf("player at (%v,%v), want (12,4)", pos.X, pos.Y)
	}
	if sb.Coins != 1 {
		t.Errorf("coins %d", sb.Coins)
	}
	if sb.Bumps != 1 {
		t.Errorf("bumps %d", sb.Bumps)
	}
	grid := sb.Grid()
	if grid[1][3] != CellPlayer || grid[1][4] != CellWall {
		t.Errorf("grid row %v", grid[1])
	}
	runtime.KeepAlive(sb)
}

func TestSandboxLayoutErrors(t *testing.T) {
	if _, err := NewSandbox([]string{"###"}, &input.Scripted{}, 1); err == nil {
		t.Error("layout without a player accepted")
	}
	if _, err := NewSandbox([]string{"@@"}, &input.Scripted{}, 1); err == nil {
		t.Error("layout with two players accepted")
	}
}

func TestTerminalHoldsKeys(t *testing.T) {
	term := NewTerminal()
	term.Hold = 3
	term.Feed(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))

	var down []bool
	for range 4 {
		term.Update()
		down = append(down, term.IsDown(input.ButtonDPadRight))
	}
	want := []bool{true, true, true, false}
	for i := range want {
		if down[i] != want[i] {
			t.Fatalf("held %v, want %v", down, want)
		}
	}
	if !term.IsReleased(input.ButtonDPadRight) {
		t.Error("release edge missing")
	}

	term.Feed(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	if !term.Quit() {
		t.Error("quit key ignored")
	}
}
