package geom

import (
	"math"
	"sort"

	"github.com/elvisdt/scarapath/pkg/toolpath/model"
)

// Arrange traces the minimal enclosed faces of a planar arrangement built
// from chains (already endpoint-snapped and merged, so every crossing is
// a shared vertex). For each connected component of the arrangement it
// discards the single largest-area face — the unbounded outer face — and
// returns every other traced face as a candidate ring.
//
// This walks the half-edge "most-clockwise-turn" rule: at each vertex,
// neighbors are sorted by polar angle, and a directed edge continues into
// whichever neighbor sits immediately clockwise of the edge it arrived
// on. Every directed edge belongs to exactly one traced face, so the
// traversal terminates in O(V+E).
type directedEdge struct{ from, to model.Point2 }

func Arrange(chains []model.Chain) []model.Ring {
	neighbors := buildAdjacency(chains)
	sortNeighborsByAngle(neighbors)

	visited := map[directedEdge]bool{}

	var faces [][]model.Point2
	for v, nbrs := range neighbors {
		for _, w := range nbrs {
			start := directedEdge{v, w}
			if visited[start] {
				continue
			}
			faces = append(faces, traceFace(neighbors, visited, v, w))
		}
	}

	componentOf := assignComponents(neighbors)

	type faceInfo struct {
		pts  []model.Point2
		area float64
		comp int
	}
	byComp := map[int][]faceInfo{}
	for _, pts := range faces {
		if len(pts) < 4 {
			continue
		}
		comp := componentOf[pts[0]]
		byComp[comp] = append(byComp[comp], faceInfo{pts: pts, area: math.Abs(shoelace(pts)), comp: comp})
	}

	var rings []model.Ring
	for _, infos := range byComp {
		if len(infos) == 0 {
			continue
		}
		outerIdx := 0
		for i := 1; i < len(infos); i++ {
			if infos[i].area > infos[outerIdx].area {
				outerIdx = i
			}
		}
		for i, fi := range infos {
			if i == outerIdx {
				continue
			}
			rings = append(rings, model.Ring{Points: fi.pts})
		}
	}
	return rings
}

func buildAdjacency(chains []model.Chain) map[model.Point2][]model.Point2 {
	adj := map[model.Point2]map[model.Point2]bool{}
	add := func(a, b model.Point2) {
		if adj[a] == nil {
			adj[a] = map[model.Point2]bool{}
		}
		adj[a][b] = true
	}
	for _, c := range chains {
		for i := 1; i < len(c.Points); i++ {
			a, b := c.Points[i-1], c.Points[i]
			if a == b {
				continue
			}
			add(a, b)
			add(b, a)
		}
	}
	out := make(map[model.Point2][]model.Point2, len(adj))
	for v, set := range adj {
		lst := make([]model.Point2, 0, len(set))
		for w := range set {
			lst = append(lst, w)
		}
		out[v] = lst
	}
	return out
}

func sortNeighborsByAngle(neighbors map[model.Point2][]model.Point2) {
	for v, nbrs := range neighbors {
		sort.Slice(nbrs, func(i, j int) bool {
			ai := math.Atan2(nbrs[i].Y-v.Y, nbrs[i].X-v.X)
			aj := math.Atan2(nbrs[j].Y-v.Y, nbrs[j].X-v.X)
			return ai < aj
		})
	}
}

func traceFace(neighbors map[model.Point2][]model.Point2, visited map[directedEdge]bool, u, v model.Point2) []model.Point2 {
	path := []model.Point2{u}
	curFrom, curTo := u, v
	for {
		path = append(path, curTo)
		visited[directedEdge{curFrom, curTo}] = true

		nbrs := neighbors[curTo]
		idx := indexOfPoint(nbrs, curFrom)
		nextIdx := (idx - 1 + len(nbrs)) % len(nbrs)
		nxt := nbrs[nextIdx]

		if curTo == u && nxt == v {
			break
		}
		curFrom, curTo = curTo, nxt
	}
	return path
}

func indexOfPoint(pts []model.Point2, p model.Point2) int {
	for i, q := range pts {
		if q == p {
			return i
		}
	}
	return 0
}

func assignComponents(neighbors map[model.Point2][]model.Point2) map[model.Point2]int {
	comp := map[model.Point2]int{}
	id := 0
	for v := range neighbors {
		if _, ok := comp[v]; ok {
			continue
		}
		queue := []model.Point2{v}
		comp[v] = id
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, w := range neighbors[cur] {
				if _, ok := comp[w]; !ok {
					comp[w] = id
					queue = append(queue, w)
				}
			}
		}
		id++
	}
	return comp
}

func shoelace(pts []model.Point2) float64 {
	var sum float64
	for i := 1; i < len(pts); i++ {
		sum += pts[i-1].X*pts[i].Y - pts[i].X*pts[i-1].Y
	}
	return sum / 2
}
