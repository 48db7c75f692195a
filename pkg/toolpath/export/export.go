// Package export writes and reads the planner's comma-separated sample
// streams: the full 5-column cartesian stream, a 4-column topology-only
// preview, and a per-chain Z-dip preview for reviewing cut ordering
// without running full trajectory planning.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/elvisdt/scarapath/pkg/toolpath/differentiate"
	"github.com/elvisdt/scarapath/pkg/toolpath/model"
)

// WritePlanner writes one "X,Y,Z,Flag,V" row per sample. Coordinates are
// converted to meters first when exportInMeters is set.
func WritePlanner(w io.Writer, samples []model.CartSample, exportInMeters bool) error {
	unit := 1.0
	if exportInMeters {
		unit = 1e-3
	}
	for _, s := range samples {
		_, err := fmt.Fprintf(w, "%g,%g,%g,%d,%g\n", s.X*unit, s.Y*unit, s.Z*unit, s.Flag, s.V)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadPlanner parses the format WritePlanner produces, reversing the
// meter conversion when exportInMeters is set.
func ReadPlanner(r io.Reader, exportInMeters bool) ([]model.CartSample, error) {
	unit := 1.0
	if exportInMeters {
		unit = 1e3
	}
	var out []model.CartSample
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 5 {
			return nil, fmt.Errorf("expected 5 fields, got %d in line %q", len(fields), line)
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, err
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, err
		}
		z, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, err
		}
		flag, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return nil, err
		}
		out = append(out, model.CartSample{X: x * unit, Y: y * unit, Z: z * unit, Flag: model.Flag(flag), V: v})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteTopology writes a 4-column "X,Y,RingIndex,Closed" preview of the
// post-arrangement rings, cheap enough to inspect before committing to
// full trajectory planning.
func WriteTopology(w io.Writer, rings []model.Ring) error {
	for idx, r := range rings {
		closed := 0
		if len(r.Points) > 0 && r.Points[0] == r.Points[len(r.Points)-1] {
			closed = 1
		}
		for _, p := range r.Points {
			if _, err := fmt.Fprintf(w, "%g,%g,%d,%d\n", p.X, p.Y, idx, closed); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteDerivatives writes one "t,d1_v,d1_a,theta2_v,theta2_a,theta3_v,theta3_a"
// row per reconstructed time sample, so a caller can inspect the smoothed
// joint velocity/acceleration curves without re-running differentiation.
func WriteDerivatives(w io.Writer, d differentiate.JointDerivatives) error {
	for i := range d.Time {
		_, err := fmt.Fprintf(w, "%g,%g,%g,%g,%g,%g,%g\n",
			d.Time[i], d.D1Vel[i], d.D1Acc[i], d.Theta2Vel[i], d.Theta2Acc[i], d.Theta3Vel[i], d.Theta3Acc[i])
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteChainPreview writes a per-chain "X,Y,Z,ChainIndex" preview that
// holds Z at zHome on each chain's two endpoints and at zCut on every
// interior point (a two-point chain stays at zHome throughout), giving a
// quick visual of cut ordering and extent without interpolation,
// transitions, or velocity planning.
func WriteChainPreview(w io.Writer, chains []model.Chain, zHome, zCut float64) error {
	for idx, c := range chains {
		n := len(c.Points)
		for i, p := range c.Points {
			z := zHome
			if n > 2 && i > 0 && i < n-1 {
				z = zCut
			}
			if _, err := fmt.Fprintf(w, "%g,%g,%g,%d\n", p.X, p.Y, z, idx); err != nil {
				return err
			}
		}
	}
	return nil
}
