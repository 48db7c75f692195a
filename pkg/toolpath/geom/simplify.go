package geom

import (
	clipper "github.com/go-clipper/clipper2/port"

	"github.com/elvisdt/scarapath/pkg/toolpath/model"
)

// Simplify applies Douglas-Peucker-style simplification to a closed ring,
// dropping vertices within tol of the line between their neighbors.
func Simplify(ring model.Ring, tol float64) model.Ring {
	if len(ring.Points) < 4 || tol <= 0 {
		return ring
	}
	// Drop the duplicated closing vertex: Clipper2 paths are implicitly
	// closed and a literal repeat confuses its closed-path simplifier.
	open := ring.Points[:len(ring.Points)-1]
	simplified, err := clipper.SimplifyPath64(toClipperPath(open), tol*scale, true)
	if err != nil || len(simplified) < 3 {
		return ring
	}
	pts := fromClipperPath(simplified)
	pts = append(pts, pts[0])
	return model.Ring{Points: pts}
}
