// Package flatten reduces CAD entities (the external collaborator's
// output) to sampled 2D polylines. Each primitive kind is dispatched on
// an explicit tag rather than duck-typed on attribute presence.
package flatten

import (
	"math"

	"github.com/elvisdt/scarapath/pkg/toolpath/errs"
	"github.com/elvisdt/scarapath/pkg/toolpath/model"
	"github.com/elvisdt/scarapath/pkg/toolpath/spline"
)

// EntityKind tags the CAD primitive kinds the pipeline understands.
type EntityKind string

const (
	KindLine     EntityKind = "LINE"
	KindPolyline EntityKind = "POLYLINE"
	KindCircle   EntityKind = "CIRCLE"
	KindArc      EntityKind = "ARC"
	KindSpline   EntityKind = "SPLINE"
)

// ColorTag is the resolved color attribute: either a palette index or an
// explicit RGB triple. ByLayer resolution happens upstream, at the
// decoder boundary, before the entity reaches this package.
type ColorTag struct {
	Index int
	RGB   *[3]int
}

// CADEntity is the tagged-variant input the flattener dispatches on.
// Only the fields relevant to Kind are populated.
type CADEntity struct {
	Kind EntityKind

	// LINE
	Start, End model.Point2

	// POLYLINE
	Vertices []model.Point2

	// CIRCLE / ARC
	Center model.Point2
	Radius float64

	// ARC: degrees, a2 may be < a1 (wraps around 2π)
	StartAngleDeg, EndAngleDeg float64

	// SPLINE
	FitPoints     []model.Point2
	ControlPoints []model.Point2

	Color ColorTag
	Layer string
}

// Flatten converts one CAD entity to a Polyline, or reports failure via
// diag and returns ok=false. Individual entity failures never abort the
// caller.
func Flatten(e CADEntity, cfg model.Config, diag *errs.Diagnostics) (model.Polyline, bool) {
	var pts []model.Point2

	switch e.Kind {
	case KindLine:
		pts = []model.Point2{e.Start, e.End}

	case KindPolyline:
		pts = append(pts, e.Vertices...)

	case KindCircle:
		n := cfg.InterpolationPoints
		if n <= 0 {
			n = 200
		}
		pts = make([]model.Point2, n)
		for i := 0; i < n; i++ {
			a := 2 * math.Pi * float64(i) / float64(n-1)
			pts[i] = model.Point2{
				X: e.Center.X + e.Radius*math.Cos(a),
				Y: e.Center.Y + e.Radius*math.Sin(a),
			}
		}

	case KindArc:
		n := cfg.InterpolationPoints / 2
		if n < 10 {
			n = 10
		}
		a1 := e.StartAngleDeg * math.Pi / 180
		a2 := e.EndAngleDeg * math.Pi / 180
		if a2 < a1 {
			a2 += 2 * math.Pi
		}
		pts = make([]model.Point2, n)
		for i := 0; i < n; i++ {
			t := float64(i) / float64(n-1)
			a := a1 + t*(a2-a1)
			pts[i] = model.Point2{
				X: e.Center.X + e.Radius*math.Cos(a),
				Y: e.Center.Y + e.Radius*math.Sin(a),
			}
		}

	case KindSpline:
		n := cfg.InterpolationPoints
		if n <= 0 {
			n = 200
		}
		ctrl := e.FitPoints
		if len(ctrl) < 2 {
			ctrl = e.ControlPoints
		}
		if len(ctrl) < 2 {
			diag.Warnf("SPLINE entity has fewer than 2 fit/control points, dropped")
			return model.Polyline{}, false
		}
		pts = spline.Sample(ctrl, n)

	default:
		diag.Warnf("unsupported entity kind %q, dropped", e.Kind)
		return model.Polyline{}, false
	}

	pts = collapseDuplicates(pts)
	if len(pts) < 2 {
		diag.Warnf("%s entity collapsed to fewer than 2 distinct points, dropped", e.Kind)
		return model.Polyline{}, false
	}

	return model.Polyline{Points: pts, Layer: e.Layer}, true
}

// FlattenAll flattens every entity, collecting failures into diag and
// returning only the successes — mirroring the teacher's pattern of
// appending entity-level problems to ImportResult.Warnings while still
// returning every Part that did parse (internal/importer/dxf.go). The
// returned colors slice is parallel to the polylines, carrying forward
// each source entity's color for the classifier.
func FlattenAll(entities []CADEntity, cfg model.Config, diag *errs.Diagnostics) ([]model.Polyline, []ColorTag) {
	var out []model.Polyline
	var colors []ColorTag
	for _, e := range entities {
		if pl, ok := Flatten(e, cfg, diag); ok {
			out = append(out, pl)
			colors = append(colors, e.Color)
		}
	}
	return out, colors
}

func collapseDuplicates(pts []model.Point2) []model.Point2 {
	if len(pts) == 0 {
		return pts
	}
	out := pts[:1]
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
