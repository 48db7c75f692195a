// Package transition synthesizes the lift/traverse/plunge moves that
// connect one cut contour's block to the next, and the final
// lift-and-return-to-rest move after the last contour.
package transition

import (
	"math"

	"github.com/elvisdt/scarapath/pkg/toolpath/model"
)

const epsZ = 1e-9

// Synthesize interleaves a densified traverse leg (flagged FlagTraverse,
// with its last sample pinned to FlagCut/v=0) before every non-empty
// block, and appends a final lift+rest move after the last one if the
// tool isn't already parked at home. The leg before the very first block
// starts from (0,0,ZHome), where the tool is assumed parked.
func Synthesize(blocks []model.Block, cfg model.Config) []model.Block {
	var out []model.Block
	cur := model.CartSample{X: 0, Y: 0, Z: cfg.ZHome, Flag: model.FlagRest}

	for _, b := range blocks {
		if len(b.Samples) == 0 {
			continue
		}
		start := b.Samples[0]
		out = append(out, leg(cur, start, cfg))
		out = append(out, b)
		cur = b.Samples[len(b.Samples)-1]
	}

	if len(out) > 0 && (math.Abs(cur.Z-cfg.ZHome) > epsZ || cur.Flag != model.FlagRest) {
		lift := liftSamples(cur, cfg.ZHome, cfg)
		rest := model.CartSample{X: 0, Y: 0, Z: cfg.ZHome, Flag: model.FlagRest, V: 0}
		samples := append(lift, rest)
		out = append(out, model.Block{Flag: model.FlagRest, Samples: samples})
	}

	return out
}

// leg builds the seam marker, lift, horizontal traverse, and plunge that
// move the tool from cur to the start of the next cut. Every move is
// densified to cfg.Step so the stream carries a uniform dense-sample
// invariant throughout, and the final plunge sample is pinned to
// FlagCut/v=0 — the cut-entry marker the velocity profiler stops on.
func leg(cur, next model.CartSample, cfg model.Config) model.Block {
	samples := []model.CartSample{{X: cur.X, Y: cur.Y, Z: cur.Z, Flag: model.FlagTraverse, V: cfg.SpeedTraverse}}

	samples = append(samples, liftSamples(cur, cfg.ZHome, cfg)...)

	traverseStart := model.Point2{X: cur.X, Y: cur.Y}
	traverseEnd := model.Point2{X: next.X, Y: next.Y}
	samples = append(samples, horizontalSamples(traverseStart, traverseEnd, cfg.ZHome, cfg)...)

	plunge := plungeSamples(model.Point2{X: next.X, Y: next.Y}, cfg.ZHome, next.Z, cfg)
	plunge[len(plunge)-1].Flag = model.FlagCut
	plunge[len(plunge)-1].V = 0
	samples = append(samples, plunge...)

	return model.Block{Flag: model.FlagTraverse, Samples: samples}
}

// liftSamples densifies a pure-Z move from cur.Z to zHome at step cfg.Step,
// skipping entirely when the two heights already coincide.
func liftSamples(cur model.CartSample, zHome float64, cfg model.Config) []model.CartSample {
	if math.Abs(zHome-cur.Z) <= epsZ {
		return nil
	}
	return zSamples(cur.X, cur.Y, cur.Z, zHome, cfg)
}

func plungeSamples(p model.Point2, zHome, zNext float64, cfg model.Config) []model.CartSample {
	return zSamples(p.X, p.Y, zHome, zNext, cfg)
}

func zSamples(x, y, zFrom, zTo float64, cfg model.Config) []model.CartSample {
	steps := int(math.Ceil(math.Abs(zTo-zFrom) / cfg.Step))
	if steps < 1 {
		steps = 1
	}
	out := make([]model.CartSample, 0, steps)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		out = append(out, model.CartSample{X: x, Y: y, Z: zFrom + t*(zTo-zFrom), Flag: model.FlagTraverse, V: cfg.SpeedTraverse})
	}
	return out
}

// horizontalSamples densifies the XY traverse at zHome, always emitting at
// least two steps even when the start and end coincide or are closer than
// cfg.Step apart.
func horizontalSamples(from, to model.Point2, zHome float64, cfg model.Config) []model.CartSample {
	dist := math.Hypot(to.X-from.X, to.Y-from.Y)
	steps := int(math.Ceil(dist / cfg.Step))
	if steps < 2 {
		steps = 2
	}
	out := make([]model.CartSample, 0, steps)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		out = append(out, model.CartSample{
			X:    from.X + t*(to.X-from.X),
			Y:    from.Y + t*(to.Y-from.Y),
			Z:    zHome,
			Flag: model.FlagTraverse,
			V:    cfg.SpeedTraverse,
		})
	}
	return out
}
