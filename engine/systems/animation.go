package systems

import (
	"github.com/1siamBot/adventure-engine/engine/core"
)

// AnimationSystem writes the current animation frame into the Renderable and
// removes animations that ran to their end
type AnimationSystem struct{}

func (s *AnimationSystem) Priority() int { return 60 }

func (s *AnimationSystem) Update(w *core.World, _ float64) {
	for id, c := range core.Query2[*core.Animation, *core.Renderable](w) {
		anim, r := c.First, c.Second
		if img := anim.Current(); img != "" {
			r.Image = img
		}
		if anim.Advance() && !anim.Repeat {
			w.RemoveComponent(id, core.CompAnimation)
		}
	}
}
