package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// tone describes a synthesized effect: a square wave sliding from one
// frequency to another
type tone struct {
	from, to float64
	length   time.Duration
}

var tones = map[SoundID]tone{
	SndBump:     {from: 180, to: 120, length: 40 * time.Millisecond},
	SndHurt:     {from: 520, to: 220, length: 120 * time.Millisecond},
	SndDie:      {from: 400, to: 60, length: 400 * time.Millisecond},
	SndPickup:   {from: 660, to: 1320, length: 90 * time.Millisecond},
	SndDoor:     {from: 90, to: 140, length: 150 * time.Millisecond},
	SndSquished: {from: 70, to: 50, length: 200 * time.Millisecond},
}

// sweep generates a square wave gliding linearly between two frequencies
type sweep struct {
	from, to float64
	phase    float64
	pos, n   int
	rate     beep.SampleRate
}

func newSweep(t tone, rate beep.SampleRate) *sweep {
	return &sweep{from: t.from, to: t.to, n: rate.N(t.length), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if s.pos >= s.n {
			return i, i > 0
		}
		val := 1.0
		if s.phase >= 0.5 {
			val = -1.0
		}
		// fade the last fifth out to avoid clicks
		if tail := s.n / 5; tail > 0 && s.n-s.pos < tail {
			val *= float64(s.n-s.pos) / float64(tail)
		}
		samples[i][0], samples[i][1] = val, val

		freq := s.from + (s.to-s.from)*float64(s.pos)/float64(s.n)
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// BeepSink synthesizes the effects and plays them through the speaker
type BeepSink struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewBeepSink() *BeepSink {
	return &BeepSink{mixer: &beep.Mixer{}}
}

// Init opens the speaker. Calling it again is a no-op.
func (b *BeepSink) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Close silences everything still playing
func (b *BeepSink) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	b.initialized = false
}

func (b *BeepSink) Play(id SoundID, volume float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return
	}
	s := streamer(id, volume, sampleRate)
	if s == nil {
		return
	}
	speaker.Lock()
	b.mixer.Add(s)
	speaker.Unlock()
}

// streamer builds the effect for id at the given linear volume
func streamer(id SoundID, volume float64, rate beep.SampleRate) beep.Streamer {
	t, ok := tones[id]
	if !ok || volume <= 0 {
		return nil
	}
	return &effects.Volume{Streamer: newSweep(t, rate), Base: 2, Volume: math.Log2(math.Min(volume, 1))}
}
