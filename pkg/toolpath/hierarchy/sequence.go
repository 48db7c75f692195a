package hierarchy

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/elvisdt/scarapath/pkg/toolpath/model"
)

// BuildSupergroups groups every polygon with its root ancestor (a
// polygon with Parent == -1) into one Supergroup per forest tree, with
// every contour of the tree (holes and exteriors alike) ordered
// ascending by ring length — innermost, shortest cuts first.
func BuildSupergroups(polygons []model.Polygon, nodes []model.HierarchyNode) []model.Supergroup {
	rootOf := make([]int, len(nodes))
	for i := range nodes {
		r := i
		for nodes[r].Parent != -1 {
			r = nodes[r].Parent
		}
		rootOf[i] = r
	}

	byRoot := map[int][]int{}
	for i, r := range rootOf {
		byRoot[r] = append(byRoot[r], i)
	}

	var groups []model.Supergroup
	for _, members := range byRoot {
		var contours []model.Ring
		for _, idx := range members {
			contours = append(contours, polygons[idx].Holes...)
			contours = append(contours, polygons[idx].Exterior)
		}
		sort.Slice(contours, func(i, j int) bool {
			return contours[i].Length() < contours[j].Length()
		})
		groups = append(groups, model.Supergroup{
			ID:       uuid.New().String()[:8],
			Members:  members,
			Contours: contours,
		})
	}
	return groups
}

// SequenceUnit is one cuttable object the global sequencer can order: a
// containment supergroup or a leftover chain that never closed into a
// ring (an open cut, or an annotation left as NO_CUT).
type SequenceUnit struct {
	Centroid model.Point2
	Class    model.CutClass
	Group    *model.Supergroup
	Chain    *model.Chain
}

// GreedySequence orders units by repeated nearest-centroid selection
// starting from origin, CUT units before NO_CUT units. Within each class
// it is a simple nearest-neighbor tour, not an optimal TSP solve — the
// tool only needs a short non-crossing-heavy traversal, not a minimal one.
func GreedySequence(units []SequenceUnit, origin model.Point2) []SequenceUnit {
	var cut, nocut []SequenceUnit
	for _, u := range units {
		if u.Class == model.CUT {
			cut = append(cut, u)
		} else {
			nocut = append(nocut, u)
		}
	}

	ordered := make([]SequenceUnit, 0, len(units))
	ordered = append(ordered, nearestNeighborOrder(cut, origin)...)
	cursor := origin
	if len(ordered) > 0 {
		cursor = ordered[len(ordered)-1].Centroid
	}
	ordered = append(ordered, nearestNeighborOrder(nocut, cursor)...)
	return ordered
}

func nearestNeighborOrder(units []SequenceUnit, start model.Point2) []SequenceUnit {
	remaining := append([]SequenceUnit(nil), units...)
	ordered := make([]SequenceUnit, 0, len(remaining))
	cur := start
	for len(remaining) > 0 {
		best := 0
		bestDist := math.Hypot(remaining[0].Centroid.X-cur.X, remaining[0].Centroid.Y-cur.Y)
		for i := 1; i < len(remaining); i++ {
			d := math.Hypot(remaining[i].Centroid.X-cur.X, remaining[i].Centroid.Y-cur.Y)
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
		ordered = append(ordered, remaining[best])
		cur = remaining[best].Centroid
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return ordered
}
