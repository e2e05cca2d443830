package geom

import (
	"cmp"
	"slices"
)

// HullBuilder accumulates points and computes their convex hull. It can be
// reused across computations with Clear; internal buffers are kept.
//
// The hull is built by sorting the points, splitting them at the line from
// the leftmost to the rightmost point into an upper chain (pushed on the
// front of a deque) and a lower chain (pushed on the back), then walking the
// deque once while popping vertices that fail to make a strict left turn.
type HullBuilder struct {
	pts   []Point
	front []Point // upper chain, in reverse deque order
	back  []Point // lower chain, in deque order
	hull  []Point
}

// Add appends p to the point set.
func (h *HullBuilder) Add(p Point) {
	h.pts = append(h.pts, p)
}

// AddXY appends the point (x, y).
func (h *HullBuilder) AddXY(x, y float64) {
	h.Add(Pt(x, y))
}

// Len returns the number of points added since the last Clear.
func (h *HullBuilder) Len() int {
	return len(h.pts)
}

// Clear drops all points.
func (h *HullBuilder) Clear() {
	h.pts = h.pts[:0]
}

// Hull returns the convex hull of the accumulated points in
// counter-clockwise order, starting from the rightmost point. Collinear
// boundary points are dropped. With fewer than three points the points are
// returned as added.
//
// The result is appended to dst[:0] when dst has room for it; otherwise a
// new slice is allocated.
func (h *HullBuilder) Hull(dst []Point) []Point {
	if len(h.pts) < 3 {
		return fill(dst, h.pts)
	}

	slices.SortFunc(h.pts, func(a, b Point) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})

	left := h.pts[0]
	right := h.pts[len(h.pts)-1]
	h.front = h.front[:0]
	h.back = h.back[:0]
	for i, p := range h.pts {
		if i == len(h.pts)-1 || Cross(left, right, p) > 0 {
			h.front = append(h.front, p)
		} else {
			h.back = append(h.back, p)
		}
	}

	h.hull = h.hull[:0]
	for i := len(h.front) - 1; i >= 0; i-- {
		h.push(h.front[i])
	}
	for _, p := range h.back {
		h.push(p)
	}
	// Close the seam between the last and first vertex.
	h.prune(h.hull[0])
	return fill(dst, h.hull)
}

func (h *HullBuilder) push(p Point) {
	h.prune(p)
	h.hull = append(h.hull, p)
}

// prune pops trailing hull vertices until the last two vertices and p make a
// strict left turn.
func (h *HullBuilder) prune(p Point) {
	for n := len(h.hull); n >= 2; n = len(h.hull) {
		p1, p2 := h.hull[n-1], h.hull[n-2]
		if (p1.X-p2.X)*(p.Y-p1.Y)-(p1.Y-p2.Y)*(p.X-p1.X) > 0 {
			return
		}
		h.hull = h.hull[:n-1]
	}
}

func fill(dst, src []Point) []Point {
	if cap(dst) < len(src) {
		dst = make([]Point, 0, len(src))
	}
	return append(dst[:0], src...)
}
