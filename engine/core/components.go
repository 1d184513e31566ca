package core

import "math"

// ---- Position & Velocity ----

// Position is the absolute world position of an entity together with the
// value it had before the most recent move. Relative positions are screen
// space (HUD elements) and ignored by the camera.
type Position struct {
	X, Y         float64
	PrevX, PrevY float64
	Relative     bool
}

func (p *Position) Type() ComponentType { return CompPosition }

// NewPosition creates a position whose previous value equals the current one
func NewPosition(x, y float64) *Position {
	return &Position{X: x, Y: y, PrevX: x, PrevY: y}
}

// MoveBy records the current value as previous and advances by (dx, dy)
func (p *Position) MoveBy(dx, dy float64) {
	p.PrevX, p.PrevY = p.X, p.Y
	p.X += dx
	p.Y += dy
}

// MoveTo records the current value as previous and jumps to (x, y)
func (p *Position) MoveTo(x, y float64) {
	p.PrevX, p.PrevY = p.X, p.Y
	p.X, p.Y = x, y
}

// Delta returns the displacement of the most recent move
func (p *Position) Delta() (dx, dy float64) {
	return p.X - p.PrevX, p.Y - p.PrevY
}

// DistanceTo returns euclidean distance to another position
func (p *Position) DistanceTo(other *Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// ZeroThreshold is the magnitude below which a velocity component counts as stopped
const ZeroThreshold = 1e-3

// Velocity is a per-frame displacement
type Velocity struct {
	X, Y float64
}

func (v *Velocity) Type() ComponentType { return CompVelocity }

// IsZero reports whether both components are below ZeroThreshold
func (v *Velocity) IsZero() bool {
	return math.Abs(v.X) < ZeroThreshold && math.Abs(v.Y) < ZeroThreshold
}

// ---- Collision ----

// HitBox is an axis-aligned rectangle in world units. Its absolute X, Y are
// kept in sync with the owning Position (rounded) plus Offset. Solid boxes are
// immovable world geometry. SkinDepth is the secondary-axis overlap within
// which the collision pass slides the box around a corner instead of sticking.
type HitBox struct {
	X, Y             int
	W, H             int
	Solid            bool
	OffsetX, OffsetY int
	SkinDepth        int
}

func (h *HitBox) Type() ComponentType { return CompHitBox }

// NewHitBox validates a hitbox description and returns a component for it
func NewHitBox(desc HitBox) (*HitBox, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	hb := desc
	return &hb, nil
}

// Validate rejects degenerate sizes and negative skin depth
func (h HitBox) Validate() error {
	if h.W <= 0 || h.H <= 0 {
		return &ConfigError{Field: "hitbox size", Reason: "width and height must be positive"}
	}
	if h.SkinDepth < 0 {
		return &ConfigError{Field: "hitbox skin_depth", Reason: "must not be negative"}
	}
	return nil
}

func (h *HitBox) Left() int   { return h.X }
func (h *HitBox) Right() int  { return h.X + h.W }
func (h *HitBox) Top() int    { return h.Y }
func (h *HitBox) Bottom() int { return h.Y + h.H }

// Overlaps reports a strictly positive-area intersection. Touching edges and
// zero-size rectangles never overlap.
func (h *HitBox) Overlaps(o *HitBox) bool {
	if h.W <= 0 || h.H <= 0 || o.W <= 0 || o.H <= 0 {
		return false
	}
	return h.Left() < o.Right() && o.Left() < h.Right() &&
		h.Top() < o.Bottom() && o.Top() < h.Bottom()
}

// ClipArea returns the area of the intersection, zero when not overlapping
func (h *HitBox) ClipArea(o *HitBox) int {
	if !h.Overlaps(o) {
		return 0
	}
	w := min(h.Right(), o.Right()) - max(h.Left(), o.Left())
	hh := min(h.Bottom(), o.Bottom()) - max(h.Top(), o.Top())
	return w * hh
}

// SyncTo places the box at the rounded position plus its offset
func (h *HitBox) SyncTo(p *Position) {
	h.X = int(math.Round(p.X)) + h.OffsetX
	h.Y = int(math.Round(p.Y)) + h.OffsetY
}

// ---- Rendering ----

// Renderable references an image by resource key. Lower depth draws first:
// background 0, sprites around 100, foreground 1000 and above.
type Renderable struct {
	Image string
	Depth int
	W, H  int
}

func (r *Renderable) Type() ComponentType { return CompRenderable }

// Animation plays a sequence of image keys, advancing every FrameTicks frames
type Animation struct {
	Frames     []string
	FrameTicks int
	Repeat     bool
	Frame      int
	timer      int
}

func (a *Animation) Type() ComponentType { return CompAnimation }

// Advance steps the frame timer and reports whether the sequence ran past its end
func (a *Animation) Advance() (ended bool) {
	if len(a.Frames) == 0 {
		return true
	}
	ticks := max(a.FrameTicks, 1)
	a.timer++
	if a.timer < ticks {
		return false
	}
	a.timer = 0
	a.Frame++
	if a.Frame >= len(a.Frames) {
		if !a.Repeat {
			a.Frame = len(a.Frames) - 1
			return true
		}
		a.Frame = 0
	}
	return false
}

// Current returns the image key of the current frame
func (a *Animation) Current() string {
	if len(a.Frames) == 0 {
		return ""
	}
	return a.Frames[min(a.Frame, len(a.Frames)-1)]
}

// ---- Health ----

// Health represents hit points with an invincibility cooldown after each hit
type Health struct {
	Points       int
	MaxPoints    int
	CooldownTime int
	cooldown     int
}

func (h *Health) Type() ComponentType { return CompHealth }

// Damage subtracts points unless the cooldown is running; reports whether it applied
func (h *Health) Damage(n int) bool {
	if h.cooldown > 0 {
		return false
	}
	h.Points = max(h.Points-n, 0)
	h.cooldown = h.CooldownTime
	return true
}

// Tick counts down the invincibility cooldown
func (h *Health) Tick() {
	if h.cooldown > 0 {
		h.cooldown--
	}
}

func (h *Health) Ratio() float64 {
	if h.MaxPoints <= 0 {
		return 0
	}
	return float64(h.Points) / float64(h.MaxPoints)
}

// ---- Movement ----

// Move drives an entity to a goal at a fixed speed. Steps is -1 until the
// kinetic pass plans the trip.
type Move struct {
	Speed        float64
	GoalX, GoalY float64
	Steps        int
	VX, VY       float64
}

func (m *Move) Type() ComponentType { return CompMove }

// NewMove creates an unplanned move toward (x, y)
func NewMove(x, y, speed float64) *Move {
	return &Move{Speed: speed, GoalX: x, GoalY: y, Steps: -1}
}

// Brain is given to NPCs: every ThinkFrames frames they re-plan toward Target
type Brain struct {
	ThinkFrames int
	Speed       float64
	Target      EntityID
	Waypoints   [][2]float64
	timer       int
}

func (b *Brain) Type() ComponentType { return CompBrain }

// Think advances the think timer and reports when a new plan is due
func (b *Brain) Think() bool {
	if b.timer > 0 {
		b.timer--
		return false
	}
	b.timer = max(b.ThinkFrames, 1) - 1
	return true
}

// ---- Interaction ----

// Door teleports the traversing entity to another map
type Door struct {
	TargetMap        string
	TargetX, TargetY int
}

func (d *Door) Type() ComponentType { return CompDoor }

// Sign holds dialog text shown when the player interacts with it
type Sign struct {
	Text string
}

func (s *Sign) Type() ComponentType { return CompSign }

// Collectable tags pickups and the value they grant
type Collectable struct {
	Item    string
	Value   int
	InChest bool
}

func (c *Collectable) Type() ComponentType { return CompCollectable }

// Interactor tags the hitbox the player uses to interact with colliding objects
type Interactor struct{}

func (i *Interactor) Type() ComponentType { return CompInteractor }
