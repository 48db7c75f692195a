// Package spline evaluates a cubic curve through a sequence of 2D points,
// parametrized on [0,1] and sampled at N points. This is a deliberately
// small, dependency-free Catmull-Rom interpolant: it passes exactly
// through every input point, unlike an approximating B-spline built from
// the same points as control vertices.
package spline

import "github.com/elvisdt/scarapath/pkg/toolpath/model"

// Sample returns n points along the Catmull-Rom curve through pts,
// uniformly parametrized on [0,1]. Requires len(pts) >= 2; with exactly 2
// points the result degenerates to a straight line.
func Sample(pts []model.Point2, n int) []model.Point2 {
	if len(pts) < 2 || n < 2 {
		return append([]model.Point2(nil), pts...)
	}
	segs := len(pts) - 1
	out := make([]model.Point2, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		// Map t in [0,1] to a segment index and local parameter.
		scaled := t * float64(segs)
		seg := int(scaled)
		if seg >= segs {
			seg = segs - 1
		}
		local := scaled - float64(seg)
		p0 := pointAt(pts, seg-1)
		p1 := pointAt(pts, seg)
		p2 := pointAt(pts, seg+1)
		p3 := pointAt(pts, seg+2)
		out[i] = catmullRom(p0, p1, p2, p3, local)
	}
	return out
}

// pointAt clamps i to the valid range, duplicating the endpoint tangent
// the way Catmull-Rom curves conventionally handle open curves.
func pointAt(pts []model.Point2, i int) model.Point2 {
	if i < 0 {
		return pts[0]
	}
	if i >= len(pts) {
		return pts[len(pts)-1]
	}
	return pts[i]
}

func catmullRom(p0, p1, p2, p3 model.Point2, t float64) model.Point2 {
	t2 := t * t
	t3 := t2 * t
	x := 0.5 * ((2 * p1.X) +
		(-p0.X+p2.X)*t +
		(2*p0.X-5*p1.X+4*p2.X-p3.X)*t2 +
		(-p0.X+3*p1.X-3*p2.X+p3.X)*t3)
	y := 0.5 * ((2 * p1.Y) +
		(-p0.Y+p2.Y)*t +
		(2*p0.Y-5*p1.Y+4*p2.Y-p3.Y)*t2 +
		(-p0.Y+3*p1.Y-3*p2.Y+p3.Y)*t3)
	return model.Point2{X: x, Y: y}
}
