package topology

import "github.com/elvisdt/scarapath/pkg/toolpath/model"

// MergeChains stitches snapped polylines sharing a class into maximal
// chains: any vertex touched by exactly two polyline endpoints (a degree-2
// node) is an interior point of the merged chain, not a break. Polylines
// already closed on their own are returned unchanged. A vertex touched by
// more than two endpoints is a junction and no merge crosses it.
//
// Merging is performed independently per CutClass: a CUT polyline and a
// NO_CUT polyline sharing an endpoint never merge into one chain.
func MergeChains(polylines []model.Polyline) []model.Chain {
	byClass := map[model.CutClass][]model.Polyline{}
	for _, p := range polylines {
		if len(p.Points) < 2 {
			continue
		}
		byClass[p.Class] = append(byClass[p.Class], p)
	}

	var out []model.Chain
	for class, group := range byClass {
		out = append(out, mergeGroup(group, class)...)
	}
	return out
}

func mergeGroup(polylines []model.Polyline, class model.CutClass) []model.Chain {
	type endpointKey = model.Point2

	// degree counts how many polyline endpoints land on a given vertex.
	degree := map[endpointKey]int{}
	for _, p := range polylines {
		if p.Closed() {
			continue
		}
		degree[p.Points[0]]++
		degree[p.Points[len(p.Points)-1]]++
	}

	// adjacency: vertex -> list of polyline indices touching it as an
	// endpoint. Used to walk from a chain's current end to its continuation.
	adj := map[endpointKey][]int{}
	used := make([]bool, len(polylines))
	for i, p := range polylines {
		if p.Closed() {
			continue
		}
		adj[p.Points[0]] = append(adj[p.Points[0]], i)
		last := p.Points[len(p.Points)-1]
		if last != p.Points[0] {
			adj[last] = append(adj[last], i)
		}
	}

	var chains []model.Chain

	for _, p := range polylines {
		if p.Closed() {
			chains = append(chains, model.Chain{Points: append([]model.Point2(nil), p.Points...), Class: class})
		}
	}

	for start := range polylines {
		if used[start] || polylines[start].Closed() {
			continue
		}
		// Only begin a walk from a polyline whose start endpoint is NOT a
		// pass-through degree-2 junction, so each maximal chain is emitted
		// exactly once from one of its two true ends (or from an arbitrary
		// point on a cycle composed entirely of degree-2 nodes).
		startVertex := polylines[start].Points[0]
		if degree[startVertex] == 2 {
			continue
		}
		chains = append(chains, walkChain(polylines, used, adj, degree, start, class))
	}

	// Any remaining unused polylines form closed degree-2 cycles with no
	// distinguished start; walk each starting from its own first endpoint.
	for start := range polylines {
		if used[start] || polylines[start].Closed() {
			continue
		}
		chains = append(chains, walkChain(polylines, used, adj, degree, start, class))
	}

	return chains
}

// walkChain follows degree-2 connections from polyline `start` in both
// directions, consuming each polyline exactly once, and returns the
// concatenated point sequence as a single chain.
func walkChain(polylines []model.Polyline, used []bool, adj map[model.Point2][]int, degree map[model.Point2]int, start int, class model.CutClass) model.Chain {
	pts := append([]model.Point2(nil), polylines[start].Points...)
	used[start] = true

	// Extend forward from the current tail as long as it's a degree-2
	// junction with exactly one unused continuation.
	for {
		tail := pts[len(pts)-1]
		if degree[tail] != 2 {
			break
		}
		next := findContinuation(polylines, used, adj, tail, start)
		if next < 0 {
			break
		}
		seg := polylines[next].Points
		if seg[0] == tail {
			pts = append(pts, seg[1:]...)
		} else {
			pts = append(pts, reversed(seg[:len(seg)-1])...)
		}
		used[next] = true
	}

	// Extend backward from the current head symmetrically.
	for {
		head := pts[0]
		if degree[head] != 2 {
			break
		}
		prev := findContinuation(polylines, used, adj, head, start)
		if prev < 0 {
			break
		}
		seg := polylines[prev].Points
		if seg[len(seg)-1] == head {
			pts = append(append([]model.Point2(nil), seg[:len(seg)-1]...), pts...)
		} else {
			pts = append(reversed(seg[1:]), pts...)
		}
		used[prev] = true
	}

	return model.Chain{Points: pts, Class: class}
}

func findContinuation(polylines []model.Polyline, used []bool, adj map[model.Point2][]int, vertex model.Point2, self int) int {
	for _, idx := range adj[vertex] {
		if idx == self || used[idx] {
			continue
		}
		return idx
	}
	return -1
}

func reversed(pts []model.Point2) []model.Point2 {
	out := make([]model.Point2, len(pts))
	for i, p := range pts {
		out[len(out)-1-i] = p
	}
	return out
}
