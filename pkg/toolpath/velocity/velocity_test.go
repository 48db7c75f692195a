package velocity

import (
	"testing"

	"github.com/elvisdt/scarapath/pkg/toolpath/model"
	"github.com/stretchr/testify/assert"
)

func TestAssignDesiredCutInteriorAtTraverseSpeed(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.CutInteriorAtTraverseSpeed = true
	blocks := []model.Block{{
		Flag: model.FlagCut,
		Samples: []model.CartSample{
			{X: 0, Y: 0, Flag: model.FlagCut},
			{X: 1, Y: 0, Flag: model.FlagCut},
			{X: 2, Y: 0, Flag: model.FlagCut},
		},
	}}
	AssignDesired(blocks, cfg)
	assert.Equal(t, cfg.SpeedTraverse, blocks[0].Samples[0].V)
	assert.Equal(t, cfg.SpeedTraverse, blocks[0].Samples[1].V)
	assert.Equal(t, 0.0, blocks[0].Samples[2].V)
}

func TestAssignDesiredCutFlatSpeedWhenInteriorDisabled(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.CutInteriorAtTraverseSpeed = false
	blocks := []model.Block{{
		Flag: model.FlagCut,
		Samples: []model.CartSample{
			{X: 0, Y: 0, Flag: model.FlagCut},
			{X: 1, Y: 0, Flag: model.FlagCut},
			{X: 2, Y: 0, Flag: model.FlagCut},
		},
	}}
	AssignDesired(blocks, cfg)
	for _, s := range blocks[0].Samples {
		assert.Equal(t, cfg.SpeedCut, s.V)
	}
}

func TestProfilePinsEndsToZero(t *testing.T) {
	cfg := model.DefaultConfig()
	blocks := []model.Block{{
		Flag: model.FlagTraverse,
		Samples: []model.CartSample{
			{X: 0, Y: 0, V: cfg.SpeedTraverse},
			{X: 10, Y: 0, V: cfg.SpeedTraverse},
			{X: 20, Y: 0, V: cfg.SpeedTraverse},
		},
	}}
	Profile(blocks, cfg)
	assert.Equal(t, 0.0, blocks[0].Samples[0].V)
	assert.Equal(t, 0.0, blocks[0].Samples[len(blocks[0].Samples)-1].V)
}

func TestProfilePinsCutEntryAndExitToZero(t *testing.T) {
	cfg := model.DefaultConfig()
	blocks := []model.Block{{
		Flag: model.FlagTraverse,
		Samples: []model.CartSample{
			{X: 0, Y: 0, Z: cfg.ZHome, Flag: model.FlagTraverse, V: cfg.SpeedTraverse},
			{X: 1, Y: 0, Z: cfg.ZHome, Flag: model.FlagTraverse, V: cfg.SpeedTraverse},
			{X: 2, Y: 0, Z: cfg.ZCut, Flag: model.FlagCut, V: cfg.SpeedTraverse},
			{X: 3, Y: 0, Z: cfg.ZCut, Flag: model.FlagCut, V: cfg.SpeedTraverse},
			{X: 4, Y: 0, Z: cfg.ZCut, Flag: model.FlagCut, V: 0},
			{X: 4, Y: 0, Z: cfg.ZHome, Flag: model.FlagTraverse, V: cfg.SpeedTraverse},
			{X: 5, Y: 0, Z: cfg.ZHome, Flag: model.FlagTraverse, V: cfg.SpeedTraverse},
		},
	}}
	Profile(blocks, cfg)
	samples := blocks[0].Samples
	assert.Equal(t, 0.0, samples[0].V)
	assert.Equal(t, 0.0, samples[2].V, "cut-entry sample must be pinned to zero")
	assert.Equal(t, 0.0, samples[4].V, "cut-exit sample must be pinned to zero")
	assert.Equal(t, 0.0, samples[5].V, "sample immediately after cut-exit must be pinned to zero")
	assert.Equal(t, 0.0, samples[len(samples)-1].V)
}

func TestProfileNeverExceedsDesiredSpeed(t *testing.T) {
	cfg := model.DefaultConfig()
	blocks := []model.Block{{
		Flag: model.FlagTraverse,
		Samples: []model.CartSample{
			{X: 0, Y: 0, V: cfg.SpeedTraverse},
			{X: 1, Y: 0, V: cfg.SpeedTraverse},
			{X: 2, Y: 0, V: cfg.SpeedTraverse},
			{X: 3, Y: 0, V: cfg.SpeedTraverse},
		},
	}}
	Profile(blocks, cfg)
	for _, s := range blocks[0].Samples {
		if s.V > cfg.SpeedTraverse+1e-6 {
			t.Errorf("profiled speed %f exceeds desired %f", s.V, cfg.SpeedTraverse)
		}
	}
}
