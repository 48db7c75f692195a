// Package pipeline wires every stage — flatten, classify, topology,
// geom, hierarchy, block, transition, velocity, kinematics,
// differentiate — into the single entry point that turns CAD entities
// into a planned joint-space trajectory.
package pipeline

import (
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/elvisdt/scarapath/pkg/toolpath/block"
	"github.com/elvisdt/scarapath/pkg/toolpath/classify"
	"github.com/elvisdt/scarapath/pkg/toolpath/differentiate"
	"github.com/elvisdt/scarapath/pkg/toolpath/errs"
	"github.com/elvisdt/scarapath/pkg/toolpath/flatten"
	"github.com/elvisdt/scarapath/pkg/toolpath/geom"
	"github.com/elvisdt/scarapath/pkg/toolpath/hierarchy"
	"github.com/elvisdt/scarapath/pkg/toolpath/kinematics"
	"github.com/elvisdt/scarapath/pkg/toolpath/model"
	"github.com/elvisdt/scarapath/pkg/toolpath/topology"
	"github.com/elvisdt/scarapath/pkg/toolpath/transition"
	"github.com/elvisdt/scarapath/pkg/toolpath/velocity"
)

// Result is everything a caller needs after planning: the cartesian
// stream (pre-kinematics), the joint stream the arm actually follows,
// the reconstructed time axis with smoothed joint velocities and
// accelerations, and every non-fatal anomaly collected along the way.
type Result struct {
	CartSamples  []model.CartSample
	JointSamples []model.JointSample
	Derivatives  differentiate.JointDerivatives
	Diagnostics  errs.Diagnostics
}

// Run executes every stage in sequence and returns the planned output.
// Independent cut units (supergroups and leftover open chains) are
// interpolated concurrently; everything downstream of that point runs
// over one ordered, concatenated stream because transition synthesis and
// velocity profiling carry state from one sample to the next.
func Run(cfg model.Config, entities []flatten.CADEntity) (Result, error) {
	var diag errs.Diagnostics

	polylines, colors := flatten.FlattenAll(entities, cfg, &diag)
	classified, err := classify.ClassifyAll(polylines, colors)
	if err != nil {
		return Result{}, err
	}

	snapped := topology.SnapEndpoints(classified, cfg.TopoTolerance)
	chains := topology.MergeChains(snapped)

	var cutChains, nocutChains []model.Chain
	for _, c := range chains {
		if c.Class == model.CUT {
			cutChains = append(cutChains, c)
		} else {
			nocutChains = append(nocutChains, c)
		}
	}

	var openCutChains []model.Chain
	for _, c := range cutChains {
		if !c.Closed() {
			openCutChains = append(openCutChains, c)
		}
	}
	sort.Slice(openCutChains, func(i, j int) bool { return openCutChains[i].Length() < openCutChains[j].Length() })

	var openNoCutChains []model.Chain
	for _, c := range nocutChains {
		if !c.Closed() {
			openNoCutChains = append(openNoCutChains, c)
		}
	}
	sort.Slice(openNoCutChains, func(i, j int) bool { return openNoCutChains[i].Length() < openNoCutChains[j].Length() })

	rings := geom.Arrange(cutChains)

	var polygons []model.Polygon
	for _, ring := range rings {
		if ring.Length() < cfg.MinRingLength {
			continue
		}
		exterior, holes, ok := geom.Repair(ring)
		if !ok {
			diag.Warnf("discarded a ring that could not be repaired into a simple polygon")
			continue
		}
		exterior = geom.Simplify(exterior, cfg.SimplifyTolerance)
		for i := range holes {
			holes[i] = geom.Simplify(holes[i], cfg.SimplifyTolerance)
		}
		area := geom.Area(exterior)
		polygons = append(polygons, model.NewPolygon(exterior, holes, area))
	}

	// NO_CUT rings never enter the containment hierarchy: each survives as
	// its own singleton sequence unit, simplified but not repaired into a
	// polygon, since there is no nesting to resolve for annotation geometry.
	var nocutRingChains []model.Chain
	for _, ring := range geom.Arrange(nocutChains) {
		if ring.Length() < cfg.MinRingLength {
			continue
		}
		simplified := geom.Simplify(ring, cfg.SimplifyTolerance)
		nocutRingChains = append(nocutRingChains, model.Chain{Points: simplified.Points, Class: model.NOCUT})
	}

	if len(polygons) == 0 && len(openCutChains) == 0 {
		return Result{}, errs.New(errs.NoCuttable, "no cuttable geometry survived topology and arrangement")
	}

	nodes := hierarchy.Build(polygons)
	groups := hierarchy.BuildSupergroups(polygons, nodes)

	units := buildSequenceUnits(groups, openCutChains, nocutRingChains, openNoCutChains)
	ordered := hierarchy.GreedySequence(units, model.Point2{X: 0, Y: 0})

	perUnitBlocks := interpolateConcurrently(ordered, cfg)

	var allBlocks []model.Block
	for _, blocks := range perUnitBlocks {
		allBlocks = append(allBlocks, blocks...)
	}

	fullBlocks := transition.Synthesize(allBlocks, cfg)
	velocity.AssignDesired(fullBlocks, cfg)
	velocity.Profile(fullBlocks, cfg)

	var cartSamples []model.CartSample
	for _, b := range fullBlocks {
		cartSamples = append(cartSamples, b.Samples...)
	}

	jointSamples, err := kinematics.InverseAll(cartSamples, cfg.ArmL1, cfg.ArmL2)
	if err != nil {
		return Result{}, err
	}

	derivatives := differentiate.Differentiate(jointSamples, cartSamples, cfg, smoothWindow(len(cartSamples)))

	return Result{CartSamples: cartSamples, JointSamples: jointSamples, Derivatives: derivatives, Diagnostics: diag}, nil
}

// smoothWindow reproduces the documented odd-window formula:
// w = max(3, 2*floor(0.05*N/2)+1).
func smoothWindow(n int) int {
	w := 2*int(math.Floor(0.05*float64(n)/2)) + 1
	if w < 3 {
		return 3
	}
	return w
}

func buildSequenceUnits(groups []model.Supergroup, openCutChains, nocutRingChains, openNoCutChains []model.Chain) []hierarchy.SequenceUnit {
	units := make([]hierarchy.SequenceUnit, 0, len(groups)+len(openCutChains)+len(nocutRingChains)+len(openNoCutChains))
	for i := range groups {
		g := groups[i]
		units = append(units, hierarchy.SequenceUnit{
			Centroid: contoursCentroid(g.Contours),
			Class:    model.CUT,
			Group:    &g,
		})
	}
	for i := range openCutChains {
		c := openCutChains[i]
		units = append(units, hierarchy.SequenceUnit{
			Centroid: chainCentroid(c.Points),
			Class:    model.CUT,
			Chain:    &c,
		})
	}
	for i := range nocutRingChains {
		c := nocutRingChains[i]
		units = append(units, hierarchy.SequenceUnit{
			Centroid: chainCentroid(c.Points),
			Class:    model.NOCUT,
			Chain:    &c,
		})
	}
	for i := range openNoCutChains {
		c := openNoCutChains[i]
		units = append(units, hierarchy.SequenceUnit{
			Centroid: chainCentroid(c.Points),
			Class:    model.NOCUT,
			Chain:    &c,
		})
	}
	return units
}

func contoursCentroid(contours []model.Ring) model.Point2 {
	if len(contours) == 0 {
		return model.Point2{}
	}
	longest := contours[len(contours)-1]
	return chainCentroid(longest.Points)
}

func chainCentroid(pts []model.Point2) model.Point2 {
	if len(pts) == 0 {
		return model.Point2{}
	}
	var sx, sy float64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(pts))
	return model.Point2{X: sx / n, Y: sy / n}
}

// interpolateConcurrently resamples each ordered unit's contours into
// blocks using a bounded worker pool (independent units never touch
// shared state), writing results back in original order so the caller's
// global sequencing survives the fan-out.
func interpolateConcurrently(units []hierarchy.SequenceUnit, cfg model.Config) [][]model.Block {
	results := make([][]model.Block, len(units))

	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > len(units) {
		workers = len(units)
	}
	if workers == 0 {
		return results
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = interpolateUnit(units[i], cfg)
			}
		}()
	}
	for i := range units {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// interpolateUnit resamples a unit's contours at cfg.Step. A CUT supergroup
// always cuts at z_cut; a NO_CUT chain is annotation geometry that the head
// only traces at traverse height, never plunging into the material.
func interpolateUnit(u hierarchy.SequenceUnit, cfg model.Config) []model.Block {
	if u.Group != nil {
		blocks := make([]model.Block, len(u.Group.Contours))
		for i, ring := range u.Group.Contours {
			blocks[i] = block.Interpolate(ring.Points, cfg.Step, cfg.ZCut, model.FlagCut, cfg.SpeedCut)
		}
		return blocks
	}
	if u.Chain != nil {
		if u.Class == model.NOCUT {
			return []model.Block{block.Interpolate(u.Chain.Points, cfg.Step, cfg.ZHome, model.FlagTraverse, cfg.SpeedTraverse)}
		}
		return []model.Block{block.Interpolate(u.Chain.Points, cfg.Step, cfg.ZCut, model.FlagCut, cfg.SpeedCut)}
	}
	return nil
}
