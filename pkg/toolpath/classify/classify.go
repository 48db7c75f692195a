// Package classify tags polylines as CUT or NO_CUT based on their
// source color and layer.
package classify

import (
	"strings"

	"github.com/elvisdt/scarapath/pkg/toolpath/errs"
	"github.com/elvisdt/scarapath/pkg/toolpath/flatten"
	"github.com/elvisdt/scarapath/pkg/toolpath/model"
)

// Classify applies a deterministic rule: NO_CUT if color is the integer
// 2, or an RGB triple with r,g >= 200 and b <= 120, or the uppercased
// layer name contains "NO"; CUT otherwise.
func Classify(color flatten.ColorTag, layer string) model.CutClass {
	if color.RGB != nil {
		r, g, b := color.RGB[0], color.RGB[1], color.RGB[2]
		if r >= 200 && g >= 200 && b <= 120 {
			return model.NOCUT
		}
	} else if color.Index == 2 {
		return model.NOCUT
	}
	if strings.Contains(strings.ToUpper(layer), "NO") {
		return model.NOCUT
	}
	return model.CUT
}

// ClassifyAll tags every polyline in place (using its accompanying color)
// and fails hard if the resulting CUT set is empty.
func ClassifyAll(polylines []model.Polyline, colors []flatten.ColorTag) ([]model.Polyline, error) {
	if len(polylines) != len(colors) {
		return nil, errs.New(errs.ParameterInvalid, "polylines and colors length mismatch")
	}
	hasCut := false
	out := make([]model.Polyline, len(polylines))
	for i, p := range polylines {
		p.Class = Classify(colors[i], p.Layer)
		if p.Class == model.CUT {
			hasCut = true
		}
		out[i] = p
	}
	if !hasCut {
		return nil, errs.New(errs.NoCuttable, "classification yields zero CUT polylines")
	}
	return out, nil
}
