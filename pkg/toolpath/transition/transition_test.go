package transition

import (
	"testing"

	"github.com/elvisdt/scarapath/pkg/toolpath/model"
)

func TestSynthesizeInsertsLegBetweenBlocks(t *testing.T) {
	cfg := model.DefaultConfig()
	b1 := model.Block{Flag: model.FlagCut, Samples: []model.CartSample{{X: 0, Y: 0, Z: cfg.ZCut, Flag: model.FlagCut}, {X: 1, Y: 0, Z: cfg.ZCut, Flag: model.FlagCut}}}
	b2 := model.Block{Flag: model.FlagCut, Samples: []model.CartSample{{X: 5, Y: 5, Z: cfg.ZCut, Flag: model.FlagCut}, {X: 6, Y: 5, Z: cfg.ZCut, Flag: model.FlagCut}}}

	out := Synthesize([]model.Block{b1, b2}, cfg)
	// leg, b1, leg, b2, final rest leg
	if len(out) != 5 {
		t.Fatalf("expected 5 blocks, got %d", len(out))
	}
	if out[0].Flag != model.FlagTraverse {
		t.Error("expected first block to be a traverse leg")
	}
	if out[1].Flag != model.FlagCut {
		t.Error("expected second block to be the cut block")
	}
	if out[len(out)-1].Flag != model.FlagRest {
		t.Error("expected final block to be a rest leg")
	}
}

func TestSynthesizeLegPlungesToZCut(t *testing.T) {
	cfg := model.DefaultConfig()
	b1 := model.Block{Flag: model.FlagCut, Samples: []model.CartSample{{X: 3, Y: 4, Z: cfg.ZCut, Flag: model.FlagCut}}}
	out := Synthesize([]model.Block{b1}, cfg)
	leg := out[0]
	lastLegSample := leg.Samples[len(leg.Samples)-1]
	if lastLegSample.Z != cfg.ZCut {
		t.Errorf("expected leg to plunge to ZCut=%f, got %f", cfg.ZCut, lastLegSample.Z)
	}
	if lastLegSample.X != 3 || lastLegSample.Y != 4 {
		t.Errorf("expected plunge at cut start (3,4), got (%f,%f)", lastLegSample.X, lastLegSample.Y)
	}
}

func TestSynthesizeLegPinsCutEntry(t *testing.T) {
	cfg := model.DefaultConfig()
	b1 := model.Block{Flag: model.FlagCut, Samples: []model.CartSample{{X: 3, Y: 4, Z: cfg.ZCut, Flag: model.FlagCut}}}
	out := Synthesize([]model.Block{b1}, cfg)
	leg := out[0]
	lastLegSample := leg.Samples[len(leg.Samples)-1]
	if lastLegSample.Flag != model.FlagCut {
		t.Errorf("expected the last plunge sample to be reflagged FlagCut, got %v", lastLegSample.Flag)
	}
	if lastLegSample.V != 0 {
		t.Errorf("expected the cut-entry pin sample to carry v=0, got %f", lastLegSample.V)
	}
}

func TestSynthesizeLegIsDensifiedByStep(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Step = 1.0
	b1 := model.Block{Flag: model.FlagCut, Samples: []model.CartSample{{X: 50, Y: 0, Z: cfg.ZCut, Flag: model.FlagCut}}}
	out := Synthesize([]model.Block{b1}, cfg)
	leg := out[0]
	// seam marker + no lift (the leg starts at ZHome) + horizontal traverse (50 steps) + plunge (ZHome-ZCut steps)
	if len(leg.Samples) < 50 {
		t.Errorf("expected the horizontal traverse alone to contribute on the order of 50 samples at step 1, got %d total", len(leg.Samples))
	}
}
