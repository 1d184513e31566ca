package config

import (
	"fmt"
	"os"

	"github.com/1siamBot/adventure-engine/engine/core"
	"gopkg.in/yaml.v3"
)

type Settings struct {
	Window    Window              `yaml:"window"`
	Player    Player              `yaml:"player"`
	Enemy     Enemy               `yaml:"enemy"`
	Collision Collision           `yaml:"collision"`
	Audio     Audio               `yaml:"audio"`
	Debug     Debug               `yaml:"debug"`
	Keys      map[string][]string `yaml:"keys"`
}

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Scale  int    `yaml:"scale"`
	TPS    int    `yaml:"tps"`
}

type Player struct {
	Velocity         float64 `yaml:"velocity"`
	VelocityDiagonal float64 `yaml:"velocity_diagonal"`
	HitBox           HitBox  `yaml:"hitbox"`
	SpriteDepth      int     `yaml:"sprite_depth"`
	// Animation maps a facing direction (down, up, left, right) to its walk frames
	Animation  map[string][]string `yaml:"animation"`
	FrameTicks int                 `yaml:"frame_ticks"`
	Health     int                 `yaml:"health"`
	Cooldown   int                 `yaml:"cooldown"`
}

type HitBox struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	OffsetX   int `yaml:"offset_x"`
	OffsetY   int `yaml:"offset_y"`
	SkinDepth int `yaml:"skin_depth"`
}

type Enemy struct {
	Speed         float64 `yaml:"speed"`
	ThinkFrames   int     `yaml:"think_frames"`
	ContactDamage int     `yaml:"contact_damage"`
	HitBox        HitBox  `yaml:"hitbox"`
	Image         string  `yaml:"image"`
}

type Collision struct {
	DiagonalTolerance float64 `yaml:"diagonal_tolerance"`
}

type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

type Debug struct {
	Hitboxes bool   `yaml:"hitboxes"`
	TapAddr  string `yaml:"tap_addr"`
}

// Default returns a complete, valid set of settings
func Default() Settings {
	return Settings{
		Window: Window{Title: "Adventure", Width: 320, Height: 240, Scale: 3, TPS: 60},
		Player: Player{
			Velocity:         1,
			VelocityDiagonal: 0.75,
			HitBox:           HitBox{Width: 10, Height: 8, OffsetX: 3, OffsetY: 8, SkinDepth: 4},
			SpriteDepth:      100,
			Animation: map[string][]string{
				"down":  {"player-down-0", "player-down-1"},
				"up":    {"player-up-0", "player-up-1"},
				"left":  {"player-left-0", "player-left-1"},
				"right": {"player-right-0", "player-right-1"},
			},
			FrameTicks: 8,
			Health:     6,
			Cooldown:   60,
		},
		Enemy: Enemy{
			Speed:         0.5,
			ThinkFrames:   30,
			ContactDamage: 1,
			HitBox:        HitBox{Width: 12, Height: 12, OffsetX: 2, OffsetY: 2},
			Image:         "slime",
		},
		Collision: Collision{DiagonalTolerance: 0.01},
		Audio:     Audio{Enabled: true, Volume: 0.5},
	}
}

// Load reads a YAML file over the defaults and validates the result
func Load(path string) (Settings, error) {
	s := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate rejects settings the engine cannot run with
func (s Settings) Validate() error {
	switch {
	case s.Window.Width <= 0 || s.Window.Height <= 0:
		return &core.ConfigError{Field: "window.width/height", Reason: "must be positive"}
	case s.Window.Scale <= 0:
		return &core.ConfigError{Field: "window.scale", Reason: "must be positive"}
	case s.Window.TPS <= 0:
		return &core.ConfigError{Field: "window.tps", Reason: "must be positive"}
	case s.Player.Velocity <= 0:
		return &core.ConfigError{Field: "player.velocity", Reason: "must be positive"}
	case s.Player.VelocityDiagonal <= 0:
		return &core.ConfigError{Field: "player.velocity_diagonal", Reason: "must be positive"}
	case s.Enemy.Speed < 0:
		return &core.ConfigError{Field: "enemy.speed", Reason: "must not be negative"}
	case s.Collision.DiagonalTolerance < 0:
		return &core.ConfigError{Field: "collision.diagonal_tolerance", Reason: "must not be negative"}
	case s.Audio.Volume < 0 || s.Audio.Volume > 1:
		return &core.ConfigError{Field: "audio.volume", Reason: "must be within [0, 1]"}
	}
	if _, err := s.Player.HitBox.Build(false); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	if _, err := s.Enemy.HitBox.Build(false); err != nil {
		return fmt.Errorf("enemy: %w", err)
	}
	return nil
}

// Build turns the settings into a validated hitbox component
func (h HitBox) Build(solid bool) (*core.HitBox, error) {
	return core.NewHitBox(core.HitBox{
		W: h.Width, H: h.Height,
		OffsetX: h.OffsetX, OffsetY: h.OffsetY,
		SkinDepth: h.SkinDepth,
		Solid:     solid,
	})
}
