package voromesh

import (
	"math/rand"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// maxSampleAttempts bounds the rejection loop. For a correctly built
// tessellation the bounding-box acceptance rate is far above 1/10000, so
// exhausting the budget indicates malformed cell geometry.
const maxSampleAttempts = 10000

// RandomPositionInCell returns a uniformly distributed point inside cell i,
// by drawing points in the cell's bounding box until one passes the
// membership test. The random stream is owned by the caller, one per
// goroutine; the mesh itself is not touched beyond reads.
func (m *Mesh) RandomPositionInCell(rng *rand.Rand, i int) (Point3, error) {
	cell := &m.cells[i]
	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		p := cell.Bounds.RandomPoint(rng)
		if m.isPointClosestTo(p, i, cell.Neighbors) {
			return p, nil
		}
	}
	return Point3{}, errors.New("cannot find random position in cell").
		WithTag("cell", i).
		WithTag("attempts", maxSampleAttempts)
}

// isPointClosestTo reports whether p is closer to the site of cell i than to
// the sites of all the given neighbor cells. Wall sentinels carry no
// competing site and are skipped. For points inside cell i's bounding box
// this is exactly the Voronoi membership test: the cell is the intersection
// of the domain with its neighbors' bisector halfspaces.
func (m *Mesh) isPointClosestTo(p Point3, i int, neighbors []int) bool {
	target := m.cells[i].SquaredDistanceTo(p)
	for _, id := range neighbors {
		if id >= 0 && m.cells[id].SquaredDistanceTo(p) < target {
			return false
		}
	}
	return true
}
