package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/1siamBot/adventure-engine/engine/core"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
}

func writeFile(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
window:
  scale: 2
player:
  velocity: 1.5
  hitbox:
    width: 12
    height: 8
    skin_depth: 2
debug:
  tap_addr: "127.0.0.1:7070"
`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Window.Scale != 2 || s.Window.Width != 320 {
		t.Errorf("window %+v", s.Window)
	}
	if s.Player.Velocity != 1.5 || s.Player.VelocityDiagonal != 0.75 {
		t.Errorf("player velocity %v/%v", s.Player.Velocity, s.Player.VelocityDiagonal)
	}
	if s.Player.HitBox.Width != 12 || s.Player.HitBox.OffsetX != 3 {
		t.Errorf("hitbox %+v", s.Player.HitBox)
	}
	if s.Debug.TapAddr != "127.0.0.1:7070" {
		t.Errorf("tap addr %q", s.Debug.TapAddr)
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative skin", "player:\n  hitbox: {width: 4, height: 4, skin_depth: -1}\n"},
		{"zero hitbox", "enemy:\n  hitbox: {width: 0, height: 4}\n"},
		{"zero scale", "window:\n  scale: 0\n"},
		{"negative velocity", "player:\n  velocity: -1\n"},
		{"loud", "audio:\n  volume: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.yaml))
			if !errors.Is(err, core.ErrConfiguration) {
				t.Errorf("expected a configuration error, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist, got %v", err)
	}
}
