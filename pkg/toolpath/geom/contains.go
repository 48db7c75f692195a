package geom

import (
	clipper "github.com/go-clipper/clipper2/port"

	"github.com/elvisdt/scarapath/pkg/toolpath/model"
)

// Contains reports whether point lies inside (or on the boundary of) ring,
// using an even-odd point-in-polygon test.
func Contains(ring model.Ring, point model.Point2) bool {
	if len(ring.Points) < 4 {
		return false
	}
	open := ring.Points[:len(ring.Points)-1]
	loc := clipper.PointInPolygon64(toClipperPoint(point), toClipperPath(open), clipper.EvenOdd)
	return loc == clipper.Inside || loc == clipper.OnBoundary
}
