package core

import "time"

// GameState represents the overall game state
type GameState uint8

const (
	StateMenu GameState = iota
	StatePlaying
	StatePaused
	StateGameOver
	StateLoading
)

func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game-over"
	case StateLoading:
		return "loading"
	}
	return "unknown"
}

// maxFrameTime caps a single frame to avoid the spiral of death
const maxFrameTime = 0.25

// GameLoop runs a step function at a fixed rate, for hosts that do not
// already tick at a fixed rate (ebiten does; the terminal sandbox does not).
type GameLoop struct {
	Step        func(dt float64)
	State       GameState
	TickRate    float64 // fixed ticks per second
	Ticks       uint64
	accumulator float64
	lastTime    time.Time
}

// NewGameLoop creates a game loop with fixed tick rate
func NewGameLoop(tickRate float64, step func(dt float64)) *GameLoop {
	return &GameLoop{
		Step:     step,
		TickRate: tickRate,
		lastTime: time.Now(),
	}
}

// Update should be called every render frame with the wall clock.
// Returns the interpolation alpha for smooth rendering.
func (gl *GameLoop) Update() float64 {
	now := time.Now()
	frameTime := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now
	return gl.Advance(frameTime)
}

// Advance feeds frameTime seconds into the accumulator and runs as many
// fixed steps as fit. Steps only run while playing.
func (gl *GameLoop) Advance(frameTime float64) float64 {
	if frameTime > maxFrameTime {
		frameTime = maxFrameTime
	}
	if frameTime < 0 {
		frameTime = 0
	}

	dt := 1.0 / gl.TickRate
	gl.accumulator += frameTime

	for gl.accumulator >= dt {
		if gl.State == StatePlaying && gl.Step != nil {
			gl.Step(dt)
			gl.Ticks++
		}
		gl.accumulator -= dt
	}

	return gl.accumulator / dt
}

// Play starts or resumes the game
func (gl *GameLoop) Play() {
	gl.State = StatePlaying
	gl.lastTime = time.Now()
}

// Pause pauses the game
func (gl *GameLoop) Pause() {
	gl.State = StatePaused
}

// CurrentTick returns the number of steps run so far
func (gl *GameLoop) CurrentTick() uint64 {
	return gl.Ticks
}
