package model

// Config holds every tunable of the pipeline, passed explicitly into the
// entry point rather than read from module-scope constants.
type Config struct {
	// Topology
	TopoTolerance float64 // τ_topo, mm endpoint-snap radius (default 0.05)

	// Geometry
	SimplifyTolerance float64 // τ_simplify, Douglas-Peucker tolerance, mm (default 0.01)
	MinRingLength     float64 // ε_ring, discard rings shorter than this, mm (default 1e-6)
	InterpolationPoints int   // N, CIRCLE/ARC/SPLINE sample resolution (default 200)

	// Block interpolation
	Step float64 // Δs, arc-length sampling step, mm (default 1.0)

	// Z heights
	ZHome float64 // safe-travel height, mm
	ZCut  float64 // cutting height, mm

	// Feed rates (mm/min) and acceleration (mm/s^2)
	SpeedCut       float64
	SpeedTraverse  float64
	AccelMax       float64

	// CutInteriorAtTraverseSpeed reproduces the planner's desired-velocity
	// rule verbatim: interior CUT samples target V_traverse, not V_cut.
	// Left true by default; a reviewer who wants the "natural" semantics
	// can flip it.
	CutInteriorAtTraverseSpeed bool

	// Kinematics
	ArmL1, ArmL2 float64 // meters

	// Differentiation
	SampleRateHz float64             // F_s, default 200
	JointVelMax  [3]float64          // q̇_max per joint, 0 = unclamped
	JointAccMax  [3]float64          // q̈_max per joint, 0 = unclamped

	// Export
	ExportInMeters bool
}

// DefaultConfig mirrors the teacher's model.DefaultSettings constructor:
// one function that returns every default in one place.
func DefaultConfig() Config {
	return Config{
		TopoTolerance:              0.05,
		SimplifyTolerance:          0.01,
		MinRingLength:              1e-6,
		InterpolationPoints:        200,
		Step:                       1.0,
		ZHome:                      10.0,
		ZCut:                       0.0,
		SpeedCut:                   5000.0,
		SpeedTraverse:              15000.0,
		AccelMax:                   2000.0,
		CutInteriorAtTraverseSpeed: true,
		ArmL1:                      0.5,
		ArmL2:                      0.45,
		SampleRateHz:               200.0,
		ExportInMeters:             true,
	}
}
