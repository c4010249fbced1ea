package voromesh

// Construction statistics are computed as pure reductions over the finished
// immutable structures and reported through the diagnostics log; nothing in
// the build loops accumulates counters.

import "github.com/aukilabs/go-tooling/pkg/logs"

func logNeighborStats(cells []Cell) {
	minN, maxN := int(^uint(0)>>1), 0
	total := 0
	for i := range cells {
		n := len(cells[i].Neighbors)
		total += n
		if n < minN {
			minN = n
		}
		if n > maxN {
			maxN = n
		}
	}
	logs.WithTag("cells", len(cells)).
		WithTag("avg_neighbors", Real(total)/Real(len(cells))).
		WithTag("min_neighbors", minN).
		WithTag("max_neighbors", maxN).
		Info("computed voronoi tessellation")
}

func logBlockStats(g *blockGrid) {
	nb3 := len(g.lists)
	minRefs, maxRefs := int(^uint(0)>>1), 0
	total := 0
	for _, ids := range g.lists {
		refs := len(ids)
		total += refs
		if refs < minRefs {
			minRefs = refs
		}
		if refs > maxRefs {
			maxRefs = refs
		}
	}
	logs.WithTag("blocks", nb3).
		WithTag("nb", g.nb).
		WithTag("avg_cells_per_block", Real(total)/Real(nb3)).
		WithTag("min_cells_per_block", minRefs).
		WithTag("max_cells_per_block", maxRefs).
		Info("built block grid")
}

func logTreeStats(g *blockGrid) {
	numTrees := 0
	minRefs, maxRefs := int(^uint(0)>>1), 0
	total := 0
	for b, t := range g.trees {
		if t == nil {
			continue
		}
		numTrees++
		refs := len(g.lists[b])
		total += refs
		if refs < minRefs {
			minRefs = refs
		}
		if refs > maxRefs {
			maxRefs = refs
		}
	}
	entry := logs.WithTag("trees", numTrees).
		WithTag("block_share", Real(numTrees)/Real(len(g.trees)))
	if numTrees > 0 {
		entry = entry.
			WithTag("avg_cells_per_tree", Real(total)/Real(numTrees)).
			WithTag("min_cells_per_tree", minRefs).
			WithTag("max_cells_per_tree", maxRefs)
	}
	entry.Info("built block search trees")
}
