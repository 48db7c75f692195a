// Package dxfbridge adapts a DXF drawing (via github.com/yofu/dxf, the
// same reader the cut-list importer uses) into the flatten package's
// CADEntity collaborator type. Geometry-only: like the importer this is
// modeled on, it does not resolve per-entity layer or color — a caller
// that needs layer-based classification should post-process the
// returned entities' Layer/Color fields itself.
package dxfbridge

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/elvisdt/scarapath/pkg/toolpath/flatten"
	"github.com/elvisdt/scarapath/pkg/toolpath/model"
)

// Load opens a DXF file and converts every supported entity to a
// CADEntity. Unsupported entity types are silently skipped, mirroring
// the cut-list importer's own default case.
func Load(path string) ([]flatten.CADEntity, error) {
	drawing, err := dxf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening DXF file: %w", err)
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		return nil, fmt.Errorf("DXF file %q contains no entities", path)
	}

	var out []flatten.CADEntity
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.Line:
			out = append(out, flatten.CADEntity{
				Kind:  flatten.KindLine,
				Start: model.Point2{X: e.Start[0], Y: e.Start[1]},
				End:   model.Point2{X: e.End[0], Y: e.End[1]},
				Color: defaultColor(),
			})

		case *entity.Circle:
			out = append(out, flatten.CADEntity{
				Kind:   flatten.KindCircle,
				Center: model.Point2{X: e.Center[0], Y: e.Center[1]},
				Radius: e.Radius,
				Color:  defaultColor(),
			})

		case *entity.Arc:
			out = append(out, flatten.CADEntity{
				Kind:          flatten.KindArc,
				Center:        model.Point2{X: e.Circle.Center[0], Y: e.Circle.Center[1]},
				Radius:        e.Circle.Radius,
				StartAngleDeg: e.Angle[0],
				EndAngleDeg:   e.Angle[1],
				Color:         defaultColor(),
			})

		case *entity.LwPolyline:
			out = append(out, flatten.CADEntity{
				Kind:     flatten.KindPolyline,
				Vertices: lwPolylineVertices(e),
				Color:    defaultColor(),
			})

		default:
			// Unsupported entity types are silently skipped.
		}
	}

	return out, nil
}

// lwPolylineVertices flattens a LWPOLYLINE's vertex list, interpolating
// bulge-arc segments the same way the cut-list importer's
// bulgeArcPoints does.
func lwPolylineVertices(lw *entity.LwPolyline) []model.Point2 {
	var out []model.Point2
	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := model.Point2{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if bulge == 0 {
			out = append(out, current)
			continue
		}

		nextIdx := (i + 1) % len(lw.Vertices)
		next := model.Point2{X: lw.Vertices[nextIdx][0], Y: lw.Vertices[nextIdx][1]}
		arcPts := bulgeArcPoints(current, next, bulge, 16)
		out = append(out, arcPts[:len(arcPts)-1]...)
	}
	return out
}

// bulgeArcPoints reproduces the DXF bulge-factor arc reconstruction: the
// bulge is the tangent of one quarter of the arc's included angle.
func bulgeArcPoints(p1, p2 model.Point2, bulge float64, segments int) []model.Point2 {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	chordLen := math.Hypot(dx, dy)
	if chordLen < 1e-9 {
		return []model.Point2{p1, p2}
	}

	mx, my := (p1.X+p2.X)/2, (p1.Y+p2.Y)/2
	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	perpX, perpY := -dy/chordLen, dx/chordLen
	dist := radius - sagitta
	if bulge < 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx, cy := mx+perpX*dist, my+perpY*dist

	startAngle := math.Atan2(p1.Y-cy, p1.X-cx)
	endAngle := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 {
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else if endAngle < startAngle {
		endAngle += 2 * math.Pi
	}

	pts := make([]model.Point2, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		angle := startAngle + t*(endAngle-startAngle)
		pts[i] = model.Point2{X: cx + radius*math.Cos(angle), Y: cy + radius*math.Sin(angle)}
	}
	return pts
}

func defaultColor() flatten.ColorTag {
	return flatten.ColorTag{Index: 1}
}
