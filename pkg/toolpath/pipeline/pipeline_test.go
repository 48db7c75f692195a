package pipeline

import (
	"testing"

	"github.com/elvisdt/scarapath/pkg/toolpath/flatten"
	"github.com/elvisdt/scarapath/pkg/toolpath/model"
)

func squareLines(x0, y0, x1, y1 float64) []flatten.CADEntity {
	corners := []model.Point2{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
	var out []flatten.CADEntity
	for i := 0; i < len(corners); i++ {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		out = append(out, flatten.CADEntity{Kind: flatten.KindLine, Start: a, End: b, Color: flatten.ColorTag{Index: 1}, Layer: "CUT"})
	}
	return out
}

func TestRunPlansASingleSquare(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Step = 2

	entities := squareLines(0, 0, 20, 20)
	result, err := Run(cfg, entities)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.CartSamples) == 0 {
		t.Fatal("expected planned cartesian samples")
	}
	if len(result.JointSamples) != len(result.CartSamples) {
		t.Fatalf("expected one joint sample per cartesian sample, got %d vs %d", len(result.JointSamples), len(result.CartSamples))
	}

	first := result.CartSamples[0]
	if first.V != 0 {
		t.Errorf("expected the stream to start at rest, got V=%f", first.V)
	}
	last := result.CartSamples[len(result.CartSamples)-1]
	if last.V != 0 {
		t.Errorf("expected the stream to end at rest, got V=%f", last.V)
	}
}

func TestRunSequencesNoCutGeometryAfterCut(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Step = 2

	entities := squareLines(0, 0, 20, 20)
	for _, e := range squareLines(40, 40, 50, 50) {
		e.Layer = "NOCUT"
		e.Color = flatten.ColorTag{Index: 2}
		entities = append(entities, e)
	}

	result, err := Run(cfg, entities)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lastCutIdx, firstNoCutRegionIdx := -1, -1
	for i, s := range result.CartSamples {
		if s.Flag == model.FlagCut {
			lastCutIdx = i
		}
		if firstNoCutRegionIdx == -1 && s.X >= 35 && s.Y >= 35 {
			firstNoCutRegionIdx = i
		}
	}
	if lastCutIdx == -1 {
		t.Fatal("expected at least one FlagCut sample from the CUT square")
	}
	if firstNoCutRegionIdx == -1 {
		t.Fatal("expected the planner to visit the NO_CUT square's region")
	}
	if firstNoCutRegionIdx < lastCutIdx {
		t.Error("expected NO_CUT geometry to be sequenced after all CUT work")
	}
}

func TestRunRejectsGeometryWithNoCuttablePolylines(t *testing.T) {
	cfg := model.DefaultConfig()
	entities := []flatten.CADEntity{
		{Kind: flatten.KindLine, Start: model.Point2{X: 0, Y: 0}, End: model.Point2{X: 1, Y: 1}, Color: flatten.ColorTag{Index: 2}},
	}
	_, err := Run(cfg, entities)
	if err == nil {
		t.Fatal("expected error when every entity classifies as NO_CUT")
	}
}
