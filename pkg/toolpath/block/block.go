// Package block resamples a contour at a fixed arc-length step, turning
// an arbitrary-density ring into a CartSample stream suitable for
// trajectory planning.
package block

import (
	"math"

	"github.com/elvisdt/scarapath/pkg/toolpath/model"
)

// Interpolate resamples pts at uniform arc-length step, always including
// the first and last point of pts exactly (even if the final segment is
// shorter than step). z is forced onto every emitted sample.
func Interpolate(pts []model.Point2, step float64, z float64, flag model.Flag, v float64) model.Block {
	if len(pts) == 0 {
		return model.Block{Flag: flag}
	}
	if len(pts) == 1 || step <= 0 {
		return model.Block{Flag: flag, Samples: []model.CartSample{{X: pts[0].X, Y: pts[0].Y, Z: z, Flag: flag, V: v}}}
	}

	cum := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		cum[i] = cum[i-1] + math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	total := cum[len(cum)-1]

	var samples []model.CartSample
	segIdx := 0
	for s := 0.0; s < total; s += step {
		for segIdx < len(cum)-2 && cum[segIdx+1] < s {
			segIdx++
		}
		segLen := cum[segIdx+1] - cum[segIdx]
		var t float64
		if segLen > 0 {
			t = (s - cum[segIdx]) / segLen
		}
		p := lerp(pts[segIdx], pts[segIdx+1], t)
		samples = append(samples, model.CartSample{X: p.X, Y: p.Y, Z: z, Flag: flag, V: v})
	}

	last := pts[len(pts)-1]
	if len(samples) == 0 || samples[len(samples)-1].X != last.X || samples[len(samples)-1].Y != last.Y {
		samples = append(samples, model.CartSample{X: last.X, Y: last.Y, Z: z, Flag: flag, V: v})
	}

	return model.Block{Samples: samples, Flag: flag}
}

func lerp(a, b model.Point2, t float64) model.Point2 {
	return model.Point2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}
