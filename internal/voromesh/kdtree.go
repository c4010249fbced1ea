package voromesh

import "math"

// kdNode is one node of a per-block search tree. Nodes live in a flat arena
// and reference each other by index, so the whole tree is a single allocation
// that can be shared read-only across goroutines without pointer cycles.
type kdNode struct {
	m           int32 // cell index of the splitting site
	axis        int32 // split axis (depth mod 3)
	left, right int32 // arena indices, -1 when absent
}

type kdTree struct {
	nodes []kdNode
	root  int32
}

// buildKDTree constructs a search tree over the given cell indices by
// recursive median selection. ids is reordered in place.
func buildKDTree(cells []Cell, ids []int32) *kdTree {
	t := &kdTree{nodes: make([]kdNode, 0, len(ids))}
	t.root = t.build(cells, ids, 0)
	return t
}

func (t *kdTree) build(cells []Cell, ids []int32, depth int) int32 {
	if len(ids) == 0 {
		return -1
	}
	axis := depth % 3
	median := len(ids) >> 1
	nthElement(cells, ids, median, axis)

	n := int32(len(t.nodes))
	t.nodes = append(t.nodes, kdNode{m: ids[median], axis: int32(axis), left: -1, right: -1})
	left := t.build(cells, ids[:median], depth+1)
	right := t.build(cells, ids[median+1:], depth+1)
	t.nodes[n].left = left
	t.nodes[n].right = right
	return n
}

// nthElement partially orders ids so that ids[k] holds the element that a
// full sort by the lexicographic site comparator would place there
// (quickselect; linear average cost per tree level instead of a full sort).
func nthElement(cells []Cell, ids []int32, k, axis int) {
	lo, hi := 0, len(ids)-1
	for lo < hi {
		// middle-element pivot keeps sorted input from degrading
		mid := lo + (hi-lo)/2
		pivot := cells[ids[mid]].Site

		i, j := lo, hi
		for i <= j {
			for lessThan(cells[ids[i]].Site, pivot, axis) {
				i++
			}
			for lessThan(pivot, cells[ids[j]].Site, axis) {
				j--
			}
			if i <= j {
				ids[i], ids[j] = ids[j], ids[i]
				i++
				j--
			}
		}
		if k <= j {
			hi = j
		} else if k >= i {
			lo = i
		} else {
			return
		}
	}
}

type kdFrame struct {
	node    int32
	splitSD Real // squared distance to the ancestor split plane, 0 for the near path
}

// nearest returns the index of the cell whose site is closest to p, using
// branch-and-bound: descend to the query's side of each split first, and
// visit the far subtree only when the split plane is closer than the best
// site found so far. The explicit stack keeps the query free of shared or
// heap-linked state.
func (t *kdTree) nearest(p Point3, cells []Cell) int {
	best := int32(-1)
	bestSD := Real(math.MaxFloat64)

	var local [64]kdFrame
	stack := local[:0]
	stack = append(stack, kdFrame{node: t.root})

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.node < 0 || f.splitSD >= bestSD {
			continue
		}
		node := &t.nodes[f.node]
		site := cells[node.m].Site

		if sd := cells[node.m].SquaredDistanceTo(p); sd < bestSD {
			bestSD = sd
			best = node.m
		}

		ds := p.axis(int(node.axis)) - site.axis(int(node.axis))
		near, far := node.left, node.right
		if !lessThan(p, site, int(node.axis)) {
			near, far = far, near
		}
		if far >= 0 {
			stack = append(stack, kdFrame{node: far, splitSD: ds * ds})
		}
		if near >= 0 {
			stack = append(stack, kdFrame{node: near})
		}
	}
	return int(best)
}
