package topology

import (
	"math"

	"github.com/elvisdt/scarapath/pkg/toolpath/model"
)

// SnapEndpoints clusters every polyline's first and last point by
// proximity (single-linkage at radius tol) and rewrites each endpoint to
// its cluster centroid. Interior vertices are untouched. Two endpoints
// within tol of each other are guaranteed literally equal afterward.
func SnapEndpoints(polylines []model.Polyline, tol float64) []model.Polyline {
	n := len(polylines)
	endpoints := make([]model.Point2, 0, 2*n)
	for _, p := range polylines {
		if len(p.Points) == 0 {
			continue
		}
		endpoints = append(endpoints, p.Points[0], p.Points[len(p.Points)-1])
	}

	clusterOf := clusterEndpoints(endpoints, tol)
	centroids := computeCentroids(endpoints, clusterOf)

	out := make([]model.Polyline, n)
	idx := 0
	for i, p := range polylines {
		out[i] = p
		if len(p.Points) == 0 {
			continue
		}
		pts := append([]model.Point2(nil), p.Points...)
		startCluster := clusterOf[idx]
		endCluster := clusterOf[idx+1]
		pts[0] = centroids[startCluster]
		pts[len(pts)-1] = centroids[endCluster]
		out[i].Points = pts
		idx += 2
	}
	return out
}

// clusterEndpoints bins points into a spatial hash of cell size tol, then
// unions any pair of points (within a cell and its 8 neighbors) whose
// distance is <= tol. This is single-linkage clustering at radius tol.
func clusterEndpoints(pts []model.Point2, tol float64) []int {
	n := len(pts)
	uf := newUnionFind(n)
	if tol <= 0 || n == 0 {
		labels := make([]int, n)
		for i := range labels {
			labels[i] = i
		}
		return normalizeLabels(uf, n)
	}

	type cell struct{ cx, cy int }
	grid := make(map[cell][]int)
	cellOf := func(p model.Point2) cell {
		return cell{cx: int(math.Floor(p.X / tol)), cy: int(math.Floor(p.Y / tol))}
	}
	for i, p := range pts {
		c := cellOf(p)
		grid[c] = append(grid[c], i)
	}

	for i, p := range pts {
		c := cellOf(p)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				neighbors := grid[cell{cx: c.cx + dx, cy: c.cy + dy}]
				for _, j := range neighbors {
					if j <= i {
						continue
					}
					ddx := pts[i].X - pts[j].X
					ddy := pts[i].Y - pts[j].Y
					if math.Hypot(ddx, ddy) <= tol {
						uf.union(i, j)
					}
				}
			}
		}
	}

	return normalizeLabels(uf, n)
}

// normalizeLabels maps union-find roots to dense 0..k-1 cluster ids.
func normalizeLabels(uf *unionFind, n int) []int {
	labels := make([]int, n)
	rootToLabel := make(map[int]int)
	next := 0
	for i := 0; i < n; i++ {
		r := uf.find(i)
		lbl, ok := rootToLabel[r]
		if !ok {
			lbl = next
			rootToLabel[r] = lbl
			next++
		}
		labels[i] = lbl
	}
	return labels
}

func computeCentroids(pts []model.Point2, labels []int) []model.Point2 {
	maxLabel := -1
	for _, l := range labels {
		if l > maxLabel {
			maxLabel = l
		}
	}
	sums := make([]model.Point2, maxLabel+1)
	counts := make([]int, maxLabel+1)
	for i, p := range pts {
		l := labels[i]
		sums[l].X += p.X
		sums[l].Y += p.Y
		counts[l]++
	}
	centroids := make([]model.Point2, maxLabel+1)
	for l := range sums {
		if counts[l] == 0 {
			continue
		}
		centroids[l] = model.Point2{X: sums[l].X / float64(counts[l]), Y: sums[l].Y / float64(counts[l])}
	}
	return centroids
}
