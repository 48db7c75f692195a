// Package model defines the data types that flow through the toolpath
// pipeline: raw 2D geometry, classified and stitched topology, the
// containment hierarchy, and the planned cartesian/joint sample streams.
package model

import (
	"math"

	"github.com/google/uuid"
)

// Point2 is a 2D point in millimeters.
type Point2 struct {
	X, Y float64
}

// Polyline is an ordered sequence of points with a cut classification and
// source layer. It is produced by the primitive flattener (one per CAD
// entity) and later by the endpoint snapper and line merger.
type Polyline struct {
	Points []Point2
	Class  CutClass
	Layer  string
}

// Closed reports whether the first and last point coincide exactly.
func (p Polyline) Closed() bool {
	if len(p.Points) < 2 {
		return false
	}
	first, last := p.Points[0], p.Points[len(p.Points)-1]
	return first == last
}

// CutClass tags a polyline as material-removing or annotation/keep.
type CutClass int

const (
	CUT CutClass = iota
	NOCUT
)

func (c CutClass) String() string {
	if c == CUT {
		return "CUT"
	}
	return "NO_CUT"
}

// Chain is a Polyline produced by endpoint snapping and line merging.
// Two chains may only intersect at a shared cluster centroid.
type Chain struct {
	Points []Point2
	Class  CutClass
}

// Closed reports whether the chain forms a closed loop.
func (c Chain) Closed() bool {
	if len(c.Points) < 3 {
		return false
	}
	return c.Points[0] == c.Points[len(c.Points)-1]
}

// Length returns the chain's total arc length.
func (c Chain) Length() float64 {
	return polylineLength(c.Points)
}

// Ring is a closed Chain whose length exceeds the ring-length threshold.
// Invariant: Points[0] == Points[len(Points)-1] exactly.
type Ring struct {
	Points []Point2
}

func (r Ring) Length() float64 {
	return polylineLength(r.Points)
}

func polylineLength(pts []Point2) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		dx := pts[i].X - pts[i-1].X
		dy := pts[i].Y - pts[i-1].Y
		total += math.Hypot(dx, dy)
	}
	return total
}

// Polygon is a Ring promoted to a simple polygon, possibly with holes,
// after Douglas-Peucker simplification and buffer-by-zero repair.
type Polygon struct {
	ID      string
	Exterior Ring
	Holes    []Ring
	Area     float64
}

// NewPolygon stamps a fresh ID the way the teacher stamps Part/StockSheet IDs.
func NewPolygon(exterior Ring, holes []Ring, area float64) Polygon {
	return Polygon{
		ID:       uuid.New().String()[:8],
		Exterior: exterior,
		Holes:    holes,
		Area:     area,
	}
}

// HierarchyNode records one polygon's place in the containment forest.
type HierarchyNode struct {
	Index              int
	Parent             int // -1 if root
	Area               float64
	RepresentativePoint Point2
}

// Supergroup is a maximal containment tree of CUT polygons: a root
// HierarchyNode and all of its transitive descendants, emitted as an
// ordered contour list (holes before the enclosing exterior, ascending by
// ring length).
type Supergroup struct {
	ID       string
	Members  []int // polygon indices belonging to this supergroup
	Contours []Ring
}

// Flag marks a cartesian/joint sample's motion mode.
type Flag int

const (
	FlagCut      Flag = 1
	FlagRest     Flag = 2
	FlagTraverse Flag = 3
)

// CartSample is one planner output row: position in mm (pre-export) or m
// (post-export), flag, and linear speed.
type CartSample struct {
	X, Y, Z float64
	Flag    Flag
	V       float64
}

// JointSample is one kinematics-stage output row.
type JointSample struct {
	D1, Theta2, Theta3 float64
	Flag               Flag
	V                   float64
}

// Block is a contiguous run of CartSamples sharing a single flag (after
// planning), one contour's worth of motion between NaN separators.
type Block struct {
	Samples []CartSample
	Flag    Flag
}
