package model

import "testing"

func TestDefaultConfigPositiveDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TopoTolerance <= 0 {
		t.Error("expected positive TopoTolerance")
	}
	if cfg.Step <= 0 {
		t.Error("expected positive Step")
	}
	if cfg.ZHome <= cfg.ZCut {
		t.Error("expected ZHome above ZCut")
	}
	if cfg.SpeedTraverse <= cfg.SpeedCut {
		t.Error("expected SpeedTraverse faster than SpeedCut")
	}
	if !cfg.CutInteriorAtTraverseSpeed {
		t.Error("expected CutInteriorAtTraverseSpeed default true")
	}
	if !cfg.ExportInMeters {
		t.Error("expected ExportInMeters default true")
	}
}
