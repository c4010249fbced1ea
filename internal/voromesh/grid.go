package voromesh

import "math"

// treeThreshold is the block occupancy above which a search tree is built.
// Sparse blocks stay on plain lists: a linear scan over a handful of sites
// beats the tree overhead there.
const treeThreshold = 5

// blockGrid partitions the domain into nb x nb x nb uniform blocks. Each
// block lists the cells whose (slightly expanded) bounding box overlaps it,
// and carries a search tree when the list is long enough. Built once, then
// read-only.
type blockGrid struct {
	extent Box
	nb     int
	nb2    int
	lists  [][]int32
	trees  []*kdTree
}

// numBlocks returns the per-axis block count for the given cell count:
// 3 * numCells^(1/3), clamped to [3, 1000].
func numBlocks(numCells int) int {
	nb := int(3 * math.Cbrt(Real(numCells)))
	if nb < 3 {
		nb = 3
	}
	if nb > 1000 {
		nb = 1000
	}
	return nb
}

// buildBlockGrid assigns every cell to all blocks its eps-expanded bounding
// box overlaps, then builds per-block search trees where warranted.
func buildBlockGrid(cells []Cell, extent Box, eps Real) *blockGrid {
	nb := numBlocks(len(cells))
	nb2 := nb * nb
	nb3 := nb2 * nb

	g := &blockGrid{
		extent: extent,
		nb:     nb,
		nb2:    nb2,
		lists:  make([][]int32, nb3),
		trees:  make([]*kdTree, nb3),
	}

	for m := range cells {
		bounds := cells[m].Bounds.Extend(eps)
		i1, j1, k1 := extent.BlockIndices(bounds.Min, nb)
		i2, j2, k2 := extent.BlockIndices(bounds.Max, nb)
		for i := i1; i <= i2; i++ {
			for j := j1; j <= j2; j++ {
				for k := k1; k <= k2; k++ {
					b := i*nb2 + j*nb + k
					g.lists[b] = append(g.lists[b], int32(m))
				}
			}
		}
	}

	for b, ids := range g.lists {
		if len(ids) > treeThreshold {
			g.trees[b] = buildKDTree(cells, ids)
		}
	}
	return g
}

// blockIndex returns the flat index of the block containing the point.
func (g *blockGrid) blockIndex(p Point3) int {
	i, j, k := g.extent.BlockIndices(p, g.nb)
	return i*g.nb2 + j*g.nb + k
}
