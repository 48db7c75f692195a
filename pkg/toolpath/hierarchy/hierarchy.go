// Package hierarchy builds the containment forest over classified CUT
// polygons and orders their contours into a cuttable stream.
package hierarchy

import (
	"github.com/elvisdt/scarapath/pkg/toolpath/geom"
	"github.com/elvisdt/scarapath/pkg/toolpath/model"
)

// bbox is an axis-aligned bounding box, used only to cheaply rule out
// containment candidates before the exact point-in-polygon test runs.
type bbox struct{ minX, minY, maxX, maxY float64 }

func ringBBox(r model.Ring) bbox {
	b := bbox{minX: r.Points[0].X, minY: r.Points[0].Y, maxX: r.Points[0].X, maxY: r.Points[0].Y}
	for _, p := range r.Points[1:] {
		if p.X < b.minX {
			b.minX = p.X
		}
		if p.Y < b.minY {
			b.minY = p.Y
		}
		if p.X > b.maxX {
			b.maxX = p.X
		}
		if p.Y > b.maxY {
			b.maxY = p.Y
		}
	}
	return b
}

func (a bbox) contains(b bbox) bool {
	return a.minX <= b.minX && a.minY <= b.minY && a.maxX >= b.maxX && a.maxY >= b.maxY
}

// Build assigns each polygon a parent: the smallest-area polygon whose
// exterior strictly contains it, or -1 if it is a forest root. A
// bounding-box test filters candidates before the exact (and more
// expensive) point-in-polygon test runs.
func Build(polygons []model.Polygon) []model.HierarchyNode {
	n := len(polygons)
	boxes := make([]bbox, n)
	for i, p := range polygons {
		boxes[i] = ringBBox(p.Exterior)
	}

	nodes := make([]model.HierarchyNode, n)
	for i, p := range polygons {
		nodes[i] = model.HierarchyNode{
			Index:               i,
			Parent:              -1,
			Area:                p.Area,
			RepresentativePoint: p.Exterior.Points[0],
		}

		bestParent := -1
		bestArea := 0.0
		for j, cand := range polygons {
			if j == i || cand.Area <= p.Area {
				continue
			}
			if !boxes[j].contains(boxes[i]) {
				continue
			}
			if !geom.Contains(cand.Exterior, p.Exterior.Points[0]) {
				continue
			}
			if bestParent == -1 || cand.Area < bestArea {
				bestParent = j
				bestArea = cand.Area
			}
		}
		nodes[i].Parent = bestParent
	}

	breakCycles(nodes)
	return nodes
}

// breakCycles defensively clears any parent chain that loops back on
// itself (a malformed polygon set should never produce one, but a
// pipeline stage that can hang on bad input is worse than one that drops
// a spurious parent edge).
func breakCycles(nodes []model.HierarchyNode) {
	for i := range nodes {
		seen := map[int]bool{i: true}
		cur := nodes[i].Parent
		for cur != -1 {
			if seen[cur] {
				nodes[i].Parent = -1
				break
			}
			seen[cur] = true
			cur = nodes[cur].Parent
		}
	}
}
