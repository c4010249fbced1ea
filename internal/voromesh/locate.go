package voromesh

import "math"

// CellIndex returns the index of the cell containing the given point, or -1
// when the point lies outside the domain. Because a Voronoi cell is exactly
// the set of points nearest to its site, this is a nearest-site search over
// the block holding the point.
func (m *Mesh) CellIndex(p Point3) int {
	if !m.extent.Contains(p) {
		return -1
	}
	b := m.grid.blockIndex(p)

	if t := m.grid.trees[b]; t != nil {
		return t.nearest(p, m.cells)
	}

	// sparse block: plain scan over the short candidate list
	best := -1
	bestSD := Real(math.MaxFloat64)
	for _, id := range m.grid.lists[b] {
		if sd := m.cells[id].SquaredDistanceTo(p); sd < bestSD {
			best = int(id)
			bestSD = sd
		}
	}
	return best
}
