// Command toolpath turns a DXF drawing into a planned SCARA joint-space
// trajectory: flatten, classify, snap, merge, arrange, sequence,
// interpolate, profile, invert kinematics, export.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/elvisdt/scarapath/pkg/toolpath/classify"
	"github.com/elvisdt/scarapath/pkg/toolpath/dxfbridge"
	"github.com/elvisdt/scarapath/pkg/toolpath/errs"
	"github.com/elvisdt/scarapath/pkg/toolpath/export"
	"github.com/elvisdt/scarapath/pkg/toolpath/flatten"
	"github.com/elvisdt/scarapath/pkg/toolpath/geom"
	"github.com/elvisdt/scarapath/pkg/toolpath/model"
	"github.com/elvisdt/scarapath/pkg/toolpath/pipeline"
	"github.com/elvisdt/scarapath/pkg/toolpath/topology"
)

func main() {
	inPath := flag.String("in", "", "input DXF file")
	outPath := flag.String("out", "", "output sample file (default: stdout)")
	derivativesPath := flag.String("derivatives-out", "", "optional output file for smoothed joint velocity/acceleration curves")

	tolTopo := flag.Float64("tol-topo", 0.05, "endpoint-snap radius, mm")
	step := flag.Float64("step", 1.0, "arc-length interpolation step, mm")
	zHome := flag.Float64("z-home", 10.0, "safe-travel Z height, mm")
	zCut := flag.Float64("z-cut", 0.0, "cutting Z height, mm")
	speedCut := flag.Float64("speed-cut", 5000.0, "cut feed rate, mm/min")
	speedTraverse := flag.Float64("speed-traverse", 15000.0, "traverse feed rate, mm/min")
	accel := flag.Float64("accel", 2000.0, "acceleration limit, mm/s^2")
	l1 := flag.Float64("l1", 0.5, "first arm link length, m")
	l2 := flag.Float64("l2", 0.45, "second arm link length, m")
	sampleRate := flag.Float64("sample-rate", 200.0, "differentiation sample rate, Hz")
	meters := flag.Bool("meters", true, "export cartesian coordinates in meters")
	topologyOnly := flag.Bool("topology-only", false, "stop after arrangement and write a topology preview instead of a full trajectory")

	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "error: -in DXF file is required")
		os.Exit(1)
	}

	cfg := model.DefaultConfig()
	cfg.TopoTolerance = *tolTopo
	cfg.Step = *step
	cfg.ZHome = *zHome
	cfg.ZCut = *zCut
	cfg.SpeedCut = *speedCut
	cfg.SpeedTraverse = *speedTraverse
	cfg.AccelMax = *accel
	cfg.ArmL1 = *l1
	cfg.ArmL2 = *l2
	cfg.SampleRateHz = *sampleRate
	cfg.ExportInMeters = *meters

	entities, err := dxfbridge.Load(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening DXF: %v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if *outPath != "" && *outPath != "-" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if *topologyOnly {
		if err := runTopologyOnly(cfg, entities, out); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	result, err := pipeline.Run(cfg, entities)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error planning trajectory: %v\n", err)
		os.Exit(1)
	}

	for _, w := range result.Diagnostics.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if err := export.WritePlanner(out, result.CartSamples, cfg.ExportInMeters); err != nil {
		fmt.Fprintf(os.Stderr, "error writing output: %v\n", err)
		os.Exit(1)
	}

	if *derivativesPath != "" {
		df, err := os.Create(*derivativesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating derivatives file: %v\n", err)
			os.Exit(1)
		}
		defer df.Close()
		if err := export.WriteDerivatives(df, result.Derivatives); err != nil {
			fmt.Fprintf(os.Stderr, "error writing derivatives: %v\n", err)
			os.Exit(1)
		}
	}
}

// runTopologyOnly replays only the geometry stages — flatten, classify,
// snap, merge, arrange — and writes the resulting rings, skipping
// interpolation, transitions, velocity, and kinematics entirely.
func runTopologyOnly(cfg model.Config, entities []flatten.CADEntity, out *os.File) error {
	var diag errs.Diagnostics

	polylines, colors := flatten.FlattenAll(entities, cfg, &diag)
	classified, err := classify.ClassifyAll(polylines, colors)
	if err != nil {
		return err
	}

	snapped := topology.SnapEndpoints(classified, cfg.TopoTolerance)
	chains := topology.MergeChains(snapped)

	var cutChains []model.Chain
	for _, c := range chains {
		if c.Class == model.CUT {
			cutChains = append(cutChains, c)
		}
	}

	rings := geom.Arrange(cutChains)

	for _, w := range diag.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	return export.WriteTopology(out, rings)
}
