// Package kinematics converts between cartesian tool positions and the
// joint coordinates of a prismatic-revolute-revolute (P-R-R) SCARA arm:
// a vertical prismatic joint d1 carrying a two-link planar arm (L1, L2).
package kinematics

import (
	"math"

	"github.com/elvisdt/scarapath/pkg/toolpath/errs"
	"github.com/elvisdt/scarapath/pkg/toolpath/model"
)

// Forward computes the tool position reached by the given joint angles.
func Forward(j model.JointSample, l1, l2 float64) model.CartSample {
	x := l1*math.Cos(j.Theta2) + l2*math.Cos(j.Theta2+j.Theta3)
	y := l1*math.Sin(j.Theta2) + l2*math.Sin(j.Theta2+j.Theta3)
	return model.CartSample{X: x, Y: y, Z: j.D1, Flag: j.Flag, V: j.V}
}

// Inverse solves for the elbow-down joint configuration that reaches c.
// Elbow-down is the branch with Theta3 in [0, pi] (non-negative sine).
func Inverse(c model.CartSample, l1, l2 float64) (model.JointSample, error) {
	r2 := c.X*c.X + c.Y*c.Y
	cosTheta3 := (r2 - l1*l1 - l2*l2) / (2 * l1 * l2)
	if cosTheta3 < -1 || cosTheta3 > 1 {
		return model.JointSample{}, errs.New(errs.ParameterInvalid, "target position unreachable by the configured arm lengths")
	}

	theta3 := math.Acos(cosTheta3)
	theta2 := math.Atan2(c.Y, c.X) - math.Atan2(l2*math.Sin(theta3), l1+l2*math.Cos(theta3))

	return model.JointSample{D1: c.Z, Theta2: theta2, Theta3: theta3, Flag: c.Flag, V: c.V}, nil
}

// InverseAll converts a full cartesian sample stream to joint space,
// failing immediately (rather than emitting a partial path) on the first
// unreachable sample.
func InverseAll(samples []model.CartSample, l1, l2 float64) ([]model.JointSample, error) {
	out := make([]model.JointSample, len(samples))
	for i, s := range samples {
		j, err := Inverse(s, l1, l2)
		if err != nil {
			return nil, errs.Wrap(errs.ParameterInvalid, "inverse kinematics failed", err)
		}
		out[i] = j
	}
	return out, nil
}
