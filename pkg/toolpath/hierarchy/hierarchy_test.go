package hierarchy

import (
	"testing"

	"github.com/elvisdt/scarapath/pkg/toolpath/model"
)

func ring(x0, y0, x1, y1 float64) model.Ring {
	return model.Ring{Points: []model.Point2{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0},
	}}
}

func TestBuildAssignsNestedParent(t *testing.T) {
	outer := model.NewPolygon(ring(0, 0, 10, 10), nil, 100)
	inner := model.NewPolygon(ring(2, 2, 4, 4), nil, 4)
	nodes := Build([]model.Polygon{outer, inner})

	if nodes[0].Parent != -1 {
		t.Errorf("expected outer polygon to be a root, got parent %d", nodes[0].Parent)
	}
	if nodes[1].Parent != 0 {
		t.Errorf("expected inner polygon's parent to be outer (index 0), got %d", nodes[1].Parent)
	}
}

func TestBuildPicksSmallestStrictContainer(t *testing.T) {
	biggest := model.NewPolygon(ring(0, 0, 20, 20), nil, 400)
	middle := model.NewPolygon(ring(0, 0, 10, 10), nil, 100)
	innermost := model.NewPolygon(ring(2, 2, 4, 4), nil, 4)
	nodes := Build([]model.Polygon{biggest, middle, innermost})

	if nodes[2].Parent != 1 {
		t.Errorf("expected innermost's parent to be the smallest strict container (index 1), got %d", nodes[2].Parent)
	}
	if nodes[1].Parent != 0 {
		t.Errorf("expected middle's parent to be biggest (index 0), got %d", nodes[1].Parent)
	}
}

func TestBuildDisjointPolygonsAreBothRoots(t *testing.T) {
	a := model.NewPolygon(ring(0, 0, 5, 5), nil, 25)
	b := model.NewPolygon(ring(100, 100, 105, 105), nil, 25)
	nodes := Build([]model.Polygon{a, b})
	if nodes[0].Parent != -1 || nodes[1].Parent != -1 {
		t.Error("expected both disjoint polygons to be roots")
	}
}

func TestBuildSupergroupsOrdersContoursAscendingByLength(t *testing.T) {
	outer := model.NewPolygon(ring(0, 0, 10, 10), nil, 100)
	inner := model.NewPolygon(ring(2, 2, 4, 4), nil, 4)
	nodes := Build([]model.Polygon{outer, inner})
	groups := BuildSupergroups([]model.Polygon{outer, inner}, nodes)

	if len(groups) != 1 {
		t.Fatalf("expected 1 supergroup, got %d", len(groups))
	}
	contours := groups[0].Contours
	if len(contours) != 2 {
		t.Fatalf("expected 2 contours, got %d", len(contours))
	}
	if contours[0].Length() > contours[1].Length() {
		t.Error("expected contours ascending by length")
	}
}
