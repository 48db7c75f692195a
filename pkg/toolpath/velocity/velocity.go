// Package velocity assigns per-flag target speeds and runs a
// forward/backward trapezoidal pass so the planned speed never exceeds
// what the configured acceleration limit allows between two samples.
package velocity

import (
	"math"

	"github.com/elvisdt/scarapath/pkg/toolpath/model"
)

// minFloor keeps a moving sample's planned speed from rounding to
// exactly zero mid-path, which would make downstream time reconstruction
// divide by zero. The two ends of the stream and every REST, cut-entry
// and cut-exit sample are pinned to zero and never floored.
const minFloor = 1e-3

// AssignDesired sets each sample's target speed from its flag, mutating
// blocks in place. FlagTraverse samples target SpeedTraverse, FlagRest
// samples target 0. FlagCut samples target SpeedTraverse on every sample
// but the last, which targets 0 — the planner never asks the arm to hold
// cutting feed at the very last point of a contour, since that point is
// also a cut-exit the velocity profiler stops on. When
// CutInteriorAtTraverseSpeed is false, CUT blocks fall back to a flat
// SpeedCut target instead.
func AssignDesired(blocks []model.Block, cfg model.Config) {
	for bi := range blocks {
		b := &blocks[bi]
		switch b.Flag {
		case model.FlagRest:
			for i := range b.Samples {
				b.Samples[i].V = 0
			}
		case model.FlagTraverse:
			for i := range b.Samples {
				b.Samples[i].V = cfg.SpeedTraverse
			}
		case model.FlagCut:
			if !cfg.CutInteriorAtTraverseSpeed {
				for i := range b.Samples {
					b.Samples[i].V = cfg.SpeedCut
				}
				continue
			}
			for i := range b.Samples {
				b.Samples[i].V = cfg.SpeedTraverse
			}
			if len(b.Samples) > 0 {
				b.Samples[len(b.Samples)-1].V = 0
			}
		}
	}
}

// Profile runs a forward acceleration-limited pass followed by a
// backward deceleration-limited pass over the full concatenated sample
// stream, so the achievable speed at every point respects cfg.AccelMax in
// both directions of travel. Beyond the stream's two global endpoints,
// the arm is also stopped dead at every REST sample and at every
// cut-entry (TRAVERSE/REST -> CUT) and cut-exit (CUT -> TRAVERSE/REST)
// transition, since those are the points the tool plunges into or lifts
// out of the material. Feed rates per mm/min are converted internally to
// mm/s for the accel-limit arithmetic.
func Profile(blocks []model.Block, cfg model.Config) {
	samples, index := flattenIndex(blocks)
	n := len(samples)
	if n == 0 {
		return
	}

	ds := make([]float64, n)
	for i := 1; i < n; i++ {
		ds[i] = math.Hypot(samples[i].X-samples[i-1].X, samples[i].Y-samples[i-1].Y)
	}

	desired := make([]float64, n)
	for i, s := range samples {
		desired[i] = s.V / 60.0 // mm/min -> mm/s
	}

	v := make([]float64, n)
	accel := cfg.AccelMax

	pinned := make([]bool, n)
	pinned[0], pinned[n-1] = true, true

	v[0] = 0
	for i := 1; i < n; i++ {
		vTarget, vPrev := desired[i], v[i-1]
		if stopsForward(samples, i) {
			vTarget, vPrev = 0, 0
			pinned[i] = true
		}
		vMax := math.Sqrt(vPrev*vPrev + 2*accel*ds[i])
		v[i] = math.Min(vTarget, vMax)
	}

	v[n-1] = 0
	for i := n - 2; i >= 0; i-- {
		vNext := v[i+1]
		if stopsBackward(samples, i) {
			vNext = 0
		}
		vMax := math.Sqrt(vNext*vNext + 2*accel*ds[i+1])
		if v[i] > vMax {
			v[i] = vMax
		}
		if samples[i].Flag == model.FlagCut && samples[i+1].Flag != model.FlagCut {
			v[i] = 0
			pinned[i] = true
		}
	}

	// Samples the stop conditions pinned to exactly zero (both global
	// endpoints and every REST/cut-entry/cut-exit sample) stay at zero;
	// every other interior sample is floored so time reconstruction never
	// divides by a speed that only rounded down to zero.
	for i := 1; i < n-1; i++ {
		if pinned[i] {
			continue
		}
		if v[i] < minFloor {
			v[i] = minFloor
		}
	}

	for i, loc := range index {
		blocks[loc.block].Samples[loc.sample].V = v[i] * 60.0 // back to mm/min
	}
}

// stopsForward reports whether the forward pass must treat sample i as
// unreachable above zero speed: i itself is REST, the prior sample was
// REST, or the move from i-1 to i is a cut-entry or cut-exit.
func stopsForward(samples []model.CartSample, i int) bool {
	cur, prev := samples[i].Flag, samples[i-1].Flag
	if cur == model.FlagRest || prev == model.FlagRest {
		return true
	}
	if cur == model.FlagCut && prev != model.FlagCut {
		return true
	}
	if cur == model.FlagTraverse && prev == model.FlagCut {
		return true
	}
	return false
}

// stopsBackward mirrors stopsForward for the deceleration pass: the
// transition is examined from i to i+1 instead of i-1 to i.
func stopsBackward(samples []model.CartSample, i int) bool {
	cur, next := samples[i].Flag, samples[i+1].Flag
	if cur == model.FlagRest || next == model.FlagRest {
		return true
	}
	if next == model.FlagCut && cur != model.FlagCut {
		return true
	}
	if next == model.FlagTraverse && cur == model.FlagCut {
		return true
	}
	return false
}

type sampleLoc struct{ block, sample int }

func flattenIndex(blocks []model.Block) ([]model.CartSample, []sampleLoc) {
	var samples []model.CartSample
	var index []sampleLoc
	for bi, b := range blocks {
		for si, s := range b.Samples {
			samples = append(samples, s)
			index = append(index, sampleLoc{bi, si})
		}
	}
	return samples, index
}
