package systems

import (
	"math"

	"github.com/1siamBot/adventure-engine/engine/core"
	"github.com/1siamBot/adventure-engine/engine/event"
	"github.com/1siamBot/adventure-engine/engine/input"
)

// Direction is the way the player faces
type Direction uint8

const (
	FacingDown Direction = iota
	FacingUp
	FacingLeft
	FacingRight
)

var directionNames = [...]string{"down", "up", "left", "right"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// PlayerConfig holds the walking parameters of the player entity
type PlayerConfig struct {
	Velocity         float64
	VelocityDiagonal float64
	// Walk holds one animation per direction; missing directions keep the current one
	Walk       map[Direction][]string
	FrameTicks int
}

// PlayerSystem turns held direction buttons into the player's velocity.
// Velocity is rebuilt every frame from ButtonDown events, so releasing every
// button stops the player on the next update.
type PlayerSystem struct {
	world  *core.World
	player core.EntityID
	cfg    PlayerConfig
	// Frozen ignores the buttons, used while a cutscene moves the player
	Frozen bool

	vx, vy float64
	facing Direction
	moving bool

	handles []event.Handle
}

// NewPlayerSystem creates the system for the given player entity and
// subscribes it to the button events of m
func NewPlayerSystem(w *core.World, m *event.Manager, player core.EntityID, cfg PlayerConfig) *PlayerSystem {
	if cfg.VelocityDiagonal <= 0 {
		cfg.VelocityDiagonal = cfg.Velocity / math.Sqrt2
	}
	s := &PlayerSystem{world: w, player: player, cfg: cfg}
	s.handles = append(s.handles,
		event.SubscribeMethod(m, s, (*PlayerSystem).onButtonDown),
		event.SubscribeMethod(m, s, (*PlayerSystem).onButtonReleased),
	)
	return s
}

func (s *PlayerSystem) Priority() int { return 5 }

// Player returns the controlled entity
func (s *PlayerSystem) Player() core.EntityID { return s.player }

// SetPlayer switches the controlled entity, used when a scene respawns it
func (s *PlayerSystem) SetPlayer(id core.EntityID) {
	s.player = id
	s.vx, s.vy = 0, 0
	s.moving = false
}

// Facing returns the direction the player last walked in
func (s *PlayerSystem) Facing() Direction { return s.facing }

func (s *PlayerSystem) onButtonDown(ev input.ButtonDown) {
	v := s.cfg.Velocity
	switch ev.Button {
	case input.ButtonDPadUp:
		s.vy -= v
	case input.ButtonDPadDown:
		s.vy += v
	case input.ButtonDPadLeft:
		s.vx -= v
	case input.ButtonDPadRight:
		s.vx += v
	}
}

// onButtonReleased snaps the released axis to a whole unit so the player
// stops aligned with the pixel grid
func (s *PlayerSystem) onButtonReleased(ev input.ButtonReleased) {
	pos, ok := core.Get[*core.Position](s.world, s.player)
	if !ok {
		return
	}
	switch ev.Button {
	case input.ButtonDPadUp, input.ButtonDPadDown:
		pos.Y = math.Round(pos.Y)
	case input.ButtonDPadLeft, input.ButtonDPadRight:
		pos.X = math.Round(pos.X)
	}
}

func (s *PlayerSystem) Update(w *core.World, _ float64) {
	vx, vy := s.vx, s.vy
	s.vx, s.vy = 0, 0
	if s.Frozen {
		vx, vy = 0, 0
	}
	if !w.Alive(s.player) {
		return
	}

	if vx != 0 && vy != 0 {
		d := s.cfg.VelocityDiagonal
		vx = math.Copysign(d, vx)
		vy = math.Copysign(d, vy)
	}

	vel, ok := core.Get[*core.Velocity](w, s.player)
	if !ok {
		vel = &core.Velocity{}
		w.AddComponent(s.player, vel)
	}
	vel.X, vel.Y = vx, vy

	moving := !vel.IsZero()
	facing := s.facing
	// vertical facing wins on diagonals
	switch {
	case vy < 0:
		facing = FacingUp
	case vy > 0:
		facing = FacingDown
	case vx < 0:
		facing = FacingLeft
	case vx > 0:
		facing = FacingRight
	}
	if facing != s.facing || moving != s.moving {
		s.facing, s.moving = facing, moving
		s.animate(w)
	}
}

// animate swaps the walking animation: a looping walk while moving, the first
// frame of the direction when standing
func (s *PlayerSystem) animate(w *core.World) {
	frames, ok := s.cfg.Walk[s.facing]
	if !ok || len(frames) == 0 {
		return
	}
	if !s.moving {
		w.RemoveComponent(s.player, core.CompAnimation)
		if r, ok := core.Get[*core.Renderable](w, s.player); ok {
			r.Image = frames[0]
		}
		return
	}
	w.AddComponent(s.player, &core.Animation{Frames: frames, FrameTicks: s.cfg.FrameTicks, Repeat: true})
}
