// math/kdtree.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"slices"
)

// KDNode is a node in a 2D KD-tree over Point2LL; each point carries the
// integer id it was given at construction time, so callers can associate
// tree points with their own records.
type KDNode struct {
	Location Point2LL
	Id       int
	Left     *KDNode
	Right    *KDNode
}

type kdPoint struct {
	p  Point2LL
	id int
}

// BuildKDTree constructs a balanced KD-tree from a slice of points; the
// i'th point is given id i. The tree alternates splitting by X
// (longitude) and Y (latitude) at each level.
func BuildKDTree(points []Point2LL) *KDNode {
	kp := make([]kdPoint, len(points))
	for i, p := range points {
		kp[i] = kdPoint{p: p, id: i}
	}
	return buildKDTreeRecursive(kp, 0)
}

func buildKDTreeRecursive(points []kdPoint, depth int) *KDNode {
	if len(points) == 0 {
		return nil
	}

	// Alternate between X (depth even) and Y (depth odd)
	axis := depth % 2

	// Sort by the splitting axis and take the median
	slices.SortFunc(points, func(a, b kdPoint) int {
		if a.p[axis] < b.p[axis] {
			return -1
		} else if a.p[axis] > b.p[axis] {
			return 1
		}
		return 0
	})

	median := len(points) / 2

	return &KDNode{
		Location: points[median].p,
		Id:       points[median].id,
		Left:     buildKDTreeRecursive(points[:median], depth+1),
		Right:    buildKDTreeRecursive(points[median+1:], depth+1),
	}
}

// SearchBox visits the ids of all points inside the axis-aligned
// lat-long box [lo, hi] (inclusive), pruning subtrees that cannot
// intersect it.
func (n *KDNode) SearchBox(lo, hi Point2LL, visit func(id int)) {
	n.searchBox(lo, hi, 0, visit)
}

func (n *KDNode) searchBox(lo, hi Point2LL, depth int, visit func(id int)) {
	if n == nil {
		return
	}

	if n.Location[0] >= lo[0] && n.Location[0] <= hi[0] &&
		n.Location[1] >= lo[1] && n.Location[1] <= hi[1] {
		visit(n.Id)
	}

	axis := depth % 2
	if lo[axis] <= n.Location[axis] {
		n.Left.searchBox(lo, hi, depth+1, visit)
	}
	if hi[axis] >= n.Location[axis] {
		n.Right.searchBox(lo, hi, depth+1, visit)
	}
}
