package spline

import (
	"testing"

	"github.com/elvisdt/scarapath/pkg/toolpath/model"
	"github.com/stretchr/testify/assert"
)

func TestSamplePassesThroughEndpoints(t *testing.T) {
	pts := []model.Point2{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: 0}, {X: 3, Y: 2}}
	out := Sample(pts, 50)
	assert.InDelta(t, pts[0].X, out[0].X, 1e-9)
	assert.InDelta(t, pts[0].Y, out[0].Y, 1e-9)
	last := out[len(out)-1]
	assert.InDelta(t, pts[len(pts)-1].X, last.X, 1e-9)
	assert.InDelta(t, pts[len(pts)-1].Y, last.Y, 1e-9)
}

func TestSampleStraightLineDegenerate(t *testing.T) {
	pts := []model.Point2{{X: 0, Y: 0}, {X: 10, Y: 0}}
	out := Sample(pts, 5)
	for _, p := range out {
		assert.InDelta(t, 0.0, p.Y, 1e-9)
	}
}

func TestSampleFewerThanTwoPointsReturnsCopy(t *testing.T) {
	pts := []model.Point2{{X: 1, Y: 1}}
	out := Sample(pts, 10)
	if len(out) != 1 {
		t.Fatalf("expected 1 point, got %d", len(out))
	}
}
