package voromesh

// Neighbor ids are either non-negative cell indices or one of these sentinel
// values denoting a domain wall. The numbering follows the voro++ convention
// and is relied upon by the path tracer.
const (
	WallXMin = -1
	WallXMax = -2
	WallYMin = -3
	WallYMax = -4
	WallZMin = -5
	WallZMax = -6
)

// Cell holds the information about one Voronoi cell that is relevant for
// locating points, sampling positions and tracing paths. Cells are created
// during tessellation and never mutated afterwards.
type Cell struct {
	Site      Point3 // generating site position
	Centroid  Point3 // centroid of the polyhedral region
	Volume    Real   // polyhedral volume
	Bounds    Box    // axis-aligned box enclosing the region
	Neighbors []int  // one neighbor id per face
}

// SquaredDistanceTo returns the squared distance from the cell's site to the
// given point.
func (c *Cell) SquaredDistanceTo(p Point3) Real {
	return c.Site.SquaredDistanceTo(p)
}
