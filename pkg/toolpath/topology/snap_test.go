package topology

import (
	"testing"

	"github.com/elvisdt/scarapath/pkg/toolpath/model"
	"github.com/stretchr/testify/assert"
)

func TestSnapEndpointsMergesNearbyEndpoints(t *testing.T) {
	a := model.Polyline{Points: []model.Point2{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	b := model.Polyline{Points: []model.Point2{{X: 1.01, Y: 0.01}, {X: 2, Y: 0}}}
	out := SnapEndpoints([]model.Polyline{a, b}, 0.05)

	aEnd := out[0].Points[len(out[0].Points)-1]
	bStart := out[1].Points[0]
	assert.Equal(t, aEnd, bStart, "endpoints within tolerance must become exactly equal")
}

func TestSnapEndpointsLeavesFarPointsAlone(t *testing.T) {
	a := model.Polyline{Points: []model.Point2{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	b := model.Polyline{Points: []model.Point2{{X: 5, Y: 5}, {X: 6, Y: 6}}}
	out := SnapEndpoints([]model.Polyline{a, b}, 0.05)

	assert.Equal(t, model.Point2{X: 0, Y: 0}, out[0].Points[0])
	assert.Equal(t, model.Point2{X: 6, Y: 6}, out[1].Points[1])
}

func TestSnapEndpointsLeavesInteriorVerticesUntouched(t *testing.T) {
	a := model.Polyline{Points: []model.Point2{{X: 0, Y: 0}, {X: 0.5, Y: 0.5}, {X: 1, Y: 0}}}
	out := SnapEndpoints([]model.Polyline{a}, 0.05)
	assert.Equal(t, model.Point2{X: 0.5, Y: 0.5}, out[0].Points[1])
}

func TestSnapEndpointsClusterCentroid(t *testing.T) {
	a := model.Polyline{Points: []model.Point2{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	b := model.Polyline{Points: []model.Point2{{X: 1.02, Y: 0}, {X: 2, Y: 0}}}
	c := model.Polyline{Points: []model.Point2{{X: 0.98, Y: 0}, {X: 3, Y: 0}}}
	out := SnapEndpoints([]model.Polyline{a, b, c}, 0.05)

	expectedX := (1.0 + 1.02 + 0.98) / 3.0
	assert.InDelta(t, expectedX, out[0].Points[1].X, 1e-9)
	assert.InDelta(t, expectedX, out[1].Points[0].X, 1e-9)
	assert.InDelta(t, expectedX, out[2].Points[0].X, 1e-9)
}
