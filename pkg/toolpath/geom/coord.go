// Package geom turns snapped/merged chains into simple polygons: a
// bespoke planar-arrangement face tracer extracts minimal enclosed
// rings, then a vendored Clipper2 port simplifies, repairs, measures,
// and containment-tests them. Polygonizing an open chain arrangement is
// outside what any clipping library (Clipper2 included) does — it only
// performs boolean ops over already-closed polygons — so the face tracer
// here is hand-rolled; everything downstream of "I already have a ring"
// is delegated to the vendored port.
package geom

import (
	"math"

	clipper "github.com/go-clipper/clipper2/port"

	"github.com/elvisdt/scarapath/pkg/toolpath/model"
)

// scale maps millimeters to the int64 fixed-point grid Clipper2 requires.
// 1e4 gives 1e-4 mm (0.1 micron) resolution, comfortably below any
// plausible cutting tolerance.
const scale = 1e4

func toClipperPoint(p model.Point2) clipper.Point64 {
	return clipper.Point64{X: int64(math.Round(p.X * scale)), Y: int64(math.Round(p.Y * scale))}
}

func fromClipperPoint(p clipper.Point64) model.Point2 {
	return model.Point2{X: float64(p.X) / scale, Y: float64(p.Y) / scale}
}

func toClipperPath(pts []model.Point2) clipper.Path64 {
	out := make(clipper.Path64, len(pts))
	for i, p := range pts {
		out[i] = toClipperPoint(p)
	}
	return out
}

func fromClipperPath(path clipper.Path64) []model.Point2 {
	out := make([]model.Point2, len(path))
	for i, p := range path {
		out[i] = fromClipperPoint(p)
	}
	return out
}
