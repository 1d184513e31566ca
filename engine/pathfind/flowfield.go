package pathfind

import (
	"container/heap"
	"math"
)

// FlowField maps every cell to its next step toward one goal cell. Brains
// chasing the same goal share a field instead of running A* each.
type FlowField struct {
	Goal Point
	ng   *NavGrid
	dist []float64
	next []int // index of the next cell, -1 for the goal and unreachable cells
}

// NewFlowField runs Dijkstra outward from (gx, gy) over the grid's step rule
func NewFlowField(ng *NavGrid, gx, gy int) *FlowField {
	n := ng.Width * ng.Height
	ff := &FlowField{Goal: Point{gx, gy}, ng: ng, dist: make([]float64, n), next: make([]int, n)}
	for i := range n {
		ff.dist[i] = math.Inf(1)
		ff.next[i] = -1
	}
	if !ng.Passable(gx, gy) {
		return ff
	}
	ff.dist[ng.index(ff.Goal)] = 0

	open := &frontier{{p: ff.Goal}}
	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		ci := ng.index(cur.p)
		if cur.g > ff.dist[ci] {
			continue
		}
		// steps are symmetric, so the neighbors of cur are the cells that can step into it
		for prev, step := range ng.steps(cur.p) {
			d := cur.g + step
			pi := ng.index(prev)
			if d >= ff.dist[pi] {
				continue
			}
			ff.dist[pi] = d
			ff.next[pi] = ci
			heap.Push(open, &node{p: prev, g: d, f: d})
		}
	}
	return ff
}

// Reachable reports whether the goal can be reached from (x, y)
func (ff *FlowField) Reachable(x, y int) bool {
	p := Point{x, y}
	return ff.ng.InBounds(p) && !math.IsInf(ff.dist[ff.ng.index(p)], 1)
}

// Next returns the cell to step to from (x, y). False at the goal and from
// cells that cannot reach it.
func (ff *FlowField) Next(x, y int) (Point, bool) {
	p := Point{x, y}
	if !ff.ng.InBounds(p) {
		return Point{}, false
	}
	i := ff.next[ff.ng.index(p)]
	if i < 0 {
		return Point{}, false
	}
	return Point{i % ff.ng.Width, i / ff.ng.Width}, true
}

// Direction returns the unit vector of the next step from (x, y), zero when
// there is none
func (ff *FlowField) Direction(x, y int) (float64, float64) {
	n, ok := ff.Next(x, y)
	if !ok {
		return 0, 0
	}
	dx, dy := float64(n.X-x), float64(n.Y-y)
	l := math.Hypot(dx, dy)
	return dx / l, dy / l
}
