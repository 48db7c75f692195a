package geom

import (
	"math"

	clipper "github.com/go-clipper/clipper2/port"

	"github.com/elvisdt/scarapath/pkg/toolpath/model"
)

// Repair resolves self-intersections in a candidate ring via a
// buffer-by-zero: unioning the ring against nothing forces Clipper2 to
// rebuild it as a set of simple, non-self-intersecting paths. The
// largest-area result becomes the exterior; any remainder are holes cut
// from it.
func Repair(ring model.Ring) (exterior model.Ring, holes []model.Ring, ok bool) {
	if len(ring.Points) < 4 {
		return model.Ring{}, nil, false
	}
	open := ring.Points[:len(ring.Points)-1]
	subject := clipper.Paths64{toClipperPath(open)}
	result, err := clipper.Union64(subject, nil, clipper.NonZero)
	if err != nil || len(result) == 0 {
		return model.Ring{}, nil, false
	}

	bestIdx := 0
	bestArea := math.Abs(clipper.Area64(result[0]))
	for i := 1; i < len(result); i++ {
		a := math.Abs(clipper.Area64(result[i]))
		if a > bestArea {
			bestArea = a
			bestIdx = i
		}
	}

	exteriorPts := fromClipperPath(result[bestIdx])
	exteriorPts = append(exteriorPts, exteriorPts[0])
	exterior = model.Ring{Points: exteriorPts}

	for i, path := range result {
		if i == bestIdx {
			continue
		}
		pts := fromClipperPath(path)
		pts = append(pts, pts[0])
		holes = append(holes, model.Ring{Points: pts})
	}
	return exterior, holes, true
}

// Area returns the unsigned area of a closed ring, in mm^2.
func Area(ring model.Ring) float64 {
	if len(ring.Points) < 4 {
		return 0
	}
	open := ring.Points[:len(ring.Points)-1]
	return math.Abs(clipper.Area64(toClipperPath(open))) / (scale * scale)
}
