package audio

import (
	"math"
)

// SoundID identifies a sound effect
type SoundID string

const (
	SndBump     SoundID = "bump"
	SndHurt     SoundID = "hurt"
	SndDie      SoundID = "die"
	SndPickup   SoundID = "pickup"
	SndDoor     SoundID = "door"
	SndSquished SoundID = "squished"
)

// DefaultMaxDistance is the distance in world units past which effects are inaudible
const DefaultMaxDistance = 240.0

// Sink plays sound effects. Volume is already attenuated, within [0, 1].
type Sink interface {
	Play(id SoundID, volume float64)
}

// Manager holds the volume settings and the listener position used for
// positional effects
type Manager struct {
	MasterVolume float64
	SFXVolume    float64
	MaxDistance  float64
	ListenerX    float64
	ListenerY    float64
	Muted        bool

	sink Sink
}

func NewManager(sink Sink) *Manager {
	return &Manager{
		MasterVolume: 1.0,
		SFXVolume:    0.8,
		MaxDistance:  DefaultMaxDistance,
		sink:         sink,
	}
}

// SetListener updates the listener position for positional audio
func (am *Manager) SetListener(x, y float64) {
	am.ListenerX = x
	am.ListenerY = y
}

// PlayAt plays a sound effect at a world position. Returns the volume used,
// zero when nothing was played.
func (am *Manager) PlayAt(id SoundID, worldX, worldY float64) float64 {
	vol := am.volumeAt(worldX, worldY)
	if vol <= 0 || am.Muted || am.sink == nil {
		return 0
	}
	am.sink.Play(id, vol)
	return vol
}

// Play plays a non-positional effect
func (am *Manager) Play(id SoundID) float64 {
	vol := am.SFXVolume * am.MasterVolume
	if vol <= 0 || am.Muted || am.sink == nil {
		return 0
	}
	am.sink.Play(id, vol)
	return vol
}

// volumeAt computes volume based on distance from the listener
func (am *Manager) volumeAt(wx, wy float64) float64 {
	dx := wx - am.ListenerX
	dy := wy - am.ListenerY
	dist := math.Sqrt(dx*dx + dy*dy)
	maxDist := am.MaxDistance
	if maxDist <= 0 {
		maxDist = DefaultMaxDistance
	}
	if dist >= maxDist {
		return 0
	}
	return (1.0 - dist/maxDist) * am.SFXVolume * am.MasterVolume
}

// SetVolume sets master volume (0-1)
func (am *Manager) SetVolume(v float64) {
	am.MasterVolume = math.Min(math.Max(v, 0), 1)
}
