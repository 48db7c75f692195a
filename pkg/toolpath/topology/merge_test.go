package topology

import (
	"testing"

	"github.com/elvisdt/scarapath/pkg/toolpath/model"
)

func TestMergeChainsStitchesDegreeTwoNodes(t *testing.T) {
	a := model.Point2{X: 0, Y: 0}
	b := model.Point2{X: 1, Y: 0}
	c := model.Point2{X: 2, Y: 0}
	d := model.Point2{X: 3, Y: 0}

	polylines := []model.Polyline{
		{Points: []model.Point2{a, b}, Class: model.CUT},
		{Points: []model.Point2{b, c}, Class: model.CUT},
		{Points: []model.Point2{c, d}, Class: model.CUT},
	}
	chains := MergeChains(polylines)
	if len(chains) != 1 {
		t.Fatalf("expected 1 merged chain, got %d", len(chains))
	}
	got := chains[0].Points
	want := []model.Point2{a, b, c, d}
	if len(got) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestMergeChainsClosesTriangleLoop(t *testing.T) {
	a := model.Point2{X: 0, Y: 0}
	b := model.Point2{X: 1, Y: 0}
	c := model.Point2{X: 0.5, Y: 1}

	polylines := []model.Polyline{
		{Points: []model.Point2{a, b}, Class: model.CUT},
		{Points: []model.Point2{b, c}, Class: model.CUT},
		{Points: []model.Point2{c, a}, Class: model.CUT},
	}
	chains := MergeChains(polylines)
	if len(chains) != 1 {
		t.Fatalf("expected 1 merged chain, got %d", len(chains))
	}
	if !chains[0].Closed() {
		t.Error("expected merged triangle to be closed")
	}
}

func TestMergeChainsStopsAtJunction(t *testing.T) {
	center := model.Point2{X: 0, Y: 0}
	polylines := []model.Polyline{
		{Points: []model.Point2{{X: -1, Y: 0}, center}, Class: model.CUT},
		{Points: []model.Point2{center, {X: 1, Y: 0}}, Class: model.CUT},
		{Points: []model.Point2{center, {X: 0, Y: 1}}, Class: model.CUT},
	}
	chains := MergeChains(polylines)
	if len(chains) != 3 {
		t.Fatalf("expected 3 chains to remain separate at a junction, got %d", len(chains))
	}
}

func TestMergeChainsKeepsClassesSeparate(t *testing.T) {
	a := model.Point2{X: 0, Y: 0}
	b := model.Point2{X: 1, Y: 0}
	c := model.Point2{X: 2, Y: 0}
	polylines := []model.Polyline{
		{Points: []model.Point2{a, b}, Class: model.CUT},
		{Points: []model.Point2{b, c}, Class: model.NOCUT},
	}
	chains := MergeChains(polylines)
	if len(chains) != 2 {
		t.Fatalf("expected classes to block merging, got %d chains", len(chains))
	}
}
