package pathfind

import (
	"container/heap"
	"math"
)

// FindPath returns the cells from start to goal, both included, or nil when
// the goal is blocked or unreachable
func FindPath(ng *NavGrid, sx, sy, gx, gy int) []Point {
	start, goal := Point{sx, sy}, Point{gx, gy}
	if !ng.InBounds(start) || !ng.Passable(gx, gy) {
		return nil
	}

	cost := make([]float64, ng.Width*ng.Height)
	for i := range cost {
		cost[i] = math.Inf(1)
	}
	from := make([]int, len(cost))
	cost[ng.index(start)] = 0
	from[ng.index(start)] = -1

	open := &frontier{}
	heap.Push(open, &node{p: start, f: octile(start, goal)})
	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if cur.p == goal {
			return walkBack(ng, from, goal)
		}
		if cur.g > cost[ng.index(cur.p)] {
			continue // stale entry
		}
		for next, step := range ng.steps(cur.p) {
			g := cur.g + step
			i := ng.index(next)
			if g >= cost[i] {
				continue
			}
			cost[i] = g
			from[i] = ng.index(cur.p)
			heap.Push(open, &node{p: next, g: g, f: g + octile(next, goal)})
		}
	}
	return nil
}

func walkBack(ng *NavGrid, from []int, goal Point) []Point {
	var path []Point
	for i := ng.index(goal); i >= 0; i = from[i] {
		path = append(path, Point{i % ng.Width, i / ng.Width})
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

// octile is the exact distance on an empty 8-connected grid
func octile(a, b Point) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	return max(dx, dy) + (math.Sqrt2-1)*min(dx, dy)
}

// SmoothPath drops the cells a walker can skip by heading straight for a
// later cell it has a clear line to. Endpoints are kept.
func SmoothPath(ng *NavGrid, path []Point) []Point {
	if len(path) <= 2 {
		return path
	}
	out := []Point{path[0]}
	for cur := 0; cur < len(path)-1; {
		next := cur + 1
		for i := len(path) - 1; i > cur+1; i-- {
			if clearLine(ng, path[cur], path[i]) {
				next = i
				break
			}
		}
		out = append(out, path[next])
		cur = next
	}
	return out
}

// clearLine walks the cells between a and b. Diagonal moves must not clip a
// blocked corner, matching the step rule of the grid.
func clearLine(ng *NavGrid, a, b Point) bool {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if b.X < a.X {
		sx = -1
	}
	if b.Y < a.Y {
		sy = -1
	}
	e := dx + dy
	p := a
	for {
		if !ng.Passable(p.X, p.Y) {
			return false
		}
		if p == b {
			return true
		}
		e2 := 2 * e
		stepX, stepY := e2 >= dy, e2 <= dx
		if stepX && stepY && (!ng.Passable(p.X+sx, p.Y) || !ng.Passable(p.X, p.Y+sy)) {
			return false
		}
		if stepX {
			e += dy
			p.X += sx
		}
		if stepY {
			e += dx
			p.Y += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

type node struct {
	p    Point
	g, f float64
}

// frontier is the A* open set ordered by estimated total cost
type frontier []*node

func (h frontier) Len() int           { return len(h) }
func (h frontier) Less(i, j int) bool { return h[i].f < h[j].f }
func (h frontier) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *frontier) Push(x any)        { *h = append(*h, x.(*node)) }
func (h *frontier) Pop() any {
	old := *h
	n := old[len(old)-1]
	*h = old[:len(old)-1]
	return n
}
