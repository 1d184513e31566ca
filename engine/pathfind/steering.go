package pathfind

import "math"

// Neighbor is another moving body to keep clear of
type Neighbor struct {
	X, Y   float64
	Radius float64
}

// arriveDist is how close to the target counts as arrived
const arriveDist = 0.5

// separation scales how hard crowding bodies push apart, relative to speed
const separation = 0.5

// Steer returns a per-frame velocity from (ux, uy) toward (tx, ty), bent away
// from neighbors closer than their radius. The result never exceeds speed and
// never overshoots the target. All values are in world units.
func Steer(ux, uy, speed, tx, ty float64, others []Neighbor) (vx, vy float64) {
	dx, dy := tx-ux, ty-uy
	dist := math.Hypot(dx, dy)
	if dist < arriveDist {
		return 0, 0
	}
	seek := min(speed, dist)
	vx, vy = dx/dist*seek, dy/dist*seek

	for _, o := range others {
		ox, oy := ux-o.X, uy-o.Y
		d := math.Hypot(ox, oy)
		if d >= o.Radius || d < 1e-3 {
			continue
		}
		push := (o.Radius - d) / o.Radius * speed * separation
		vx += ox / d * push
		vy += oy / d * push
	}

	if v := math.Hypot(vx, vy); v > speed {
		vx, vy = vx/v*speed, vy/v*speed
	}
	return vx, vy
}
