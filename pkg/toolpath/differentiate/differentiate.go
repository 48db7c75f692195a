// Package differentiate reconstructs a time axis from the planned speed
// profile and derives smoothed joint velocities and accelerations from
// it via centered differences.
package differentiate

import (
	"math"

	"github.com/elvisdt/scarapath/pkg/toolpath/model"
)

const minSpeedFloor = 1e-6

// ReconstructTime integrates dt = ds / v_avg along the sample stream,
// using the average of each pair of consecutive speeds (in mm/s) so a
// single near-zero sample doesn't produce an infinite dt.
func ReconstructTime(samples []model.CartSample) []float64 {
	n := len(samples)
	t := make([]float64, n)
	for i := 1; i < n; i++ {
		ds := math.Hypot(samples[i].X-samples[i-1].X, samples[i].Y-samples[i-1].Y)
		vAvg := (samples[i-1].V + samples[i].V) / 2 / 60.0 // mm/min -> mm/s
		if vAvg < minSpeedFloor {
			vAvg = minSpeedFloor
		}
		t[i] = t[i-1] + ds/vAvg
	}
	return t
}

// CenteredDiff returns the derivative of x with respect to t at every
// sample: a centered difference at interior points, one-sided at the
// first and last.
func CenteredDiff(x, t []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	if n < 2 {
		return out
	}
	out[0] = (x[1] - x[0]) / safeDt(t[1]-t[0])
	out[n-1] = (x[n-1] - x[n-2]) / safeDt(t[n-1]-t[n-2])
	for i := 1; i < n-1; i++ {
		out[i] = (x[i+1] - x[i-1]) / safeDt(t[i+1]-t[i-1])
	}
	return out
}

func safeDt(dt float64) float64 {
	if dt == 0 {
		return minSpeedFloor
	}
	return dt
}

// SmoothMovingAverage applies a centered moving average of the given odd
// window size, clamping to the available range at the ends.
func SmoothMovingAverage(x []float64, window int) []float64 {
	if window < 3 || window%2 == 0 {
		return append([]float64(nil), x...)
	}
	half := window / 2
	n := len(x)
	out := make([]float64, n)
	for i := range x {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi > n-1 {
			hi = n - 1
		}
		var sum float64
		for k := lo; k <= hi; k++ {
			sum += x[k]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

// Sanitize replaces NaN/Inf with 0 and rounds magnitudes below eps to 0.
func Sanitize(x []float64, eps float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out[i] = 0
			continue
		}
		if math.Abs(v) < eps {
			out[i] = 0
			continue
		}
		out[i] = v
	}
	return out
}

// Clamp bounds every value's magnitude to limit, a no-op when limit <= 0.
func Clamp(x []float64, limit float64) []float64 {
	if limit <= 0 {
		return append([]float64(nil), x...)
	}
	out := make([]float64, len(x))
	for i, v := range x {
		if v > limit {
			out[i] = limit
		} else if v < -limit {
			out[i] = -limit
		} else {
			out[i] = v
		}
	}
	return out
}

// JointDerivatives holds the smoothed velocity and acceleration curves
// for every joint axis.
type JointDerivatives struct {
	Time               []float64
	D1Vel, D1Acc       []float64
	Theta2Vel, Theta2Acc []float64
	Theta3Vel, Theta3Acc []float64
}

// Differentiate reconstructs time from the cartesian speed profile, then
// computes smoothed, clamped velocity and acceleration for each joint.
func Differentiate(joints []model.JointSample, cart []model.CartSample, cfg model.Config, smoothWindow int) JointDerivatives {
	t := ReconstructTime(cart)

	d1 := make([]float64, len(joints))
	th2 := make([]float64, len(joints))
	th3 := make([]float64, len(joints))
	for i, j := range joints {
		d1[i] = j.D1
		th2[i] = j.Theta2
		th3[i] = j.Theta3
	}

	d1v := finish(CenteredDiff(d1, t), smoothWindow, cfg.JointVelMax[0])
	th2v := finish(CenteredDiff(th2, t), smoothWindow, cfg.JointVelMax[1])
	th3v := finish(CenteredDiff(th3, t), smoothWindow, cfg.JointVelMax[2])

	d1a := finish(CenteredDiff(d1v, t), smoothWindow, cfg.JointAccMax[0])
	th2a := finish(CenteredDiff(th2v, t), smoothWindow, cfg.JointAccMax[1])
	th3a := finish(CenteredDiff(th3v, t), smoothWindow, cfg.JointAccMax[2])

	return JointDerivatives{
		Time:       t,
		D1Vel:      d1v, D1Acc: d1a,
		Theta2Vel:  th2v, Theta2Acc: th2a,
		Theta3Vel:  th3v, Theta3Acc: th3a,
	}
}

func finish(x []float64, window int, limit float64) []float64 {
	x = SmoothMovingAverage(x, window)
	x = Sanitize(x, 1e-9)
	return Clamp(x, limit)
}
