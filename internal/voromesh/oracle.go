package voromesh

// CellGeometry is the raw per-site output of a tessellation backend.
type CellGeometry struct {
	Volume    Real     // polyhedral volume of the cell
	Centroid  Point3   // absolute centroid position
	Vertices  []Point3 // polyhedron vertices, used to derive a bounding box
	Neighbors []int    // one id per face: cell index or wall sentinel
}

// Tessellator computes the Voronoi cell geometry for a list of sites within
// a bounding domain. Implementations must return exactly one CellGeometry per
// site, in site order, and must report a distinguishable error when a cell
// cannot be computed. The mesh builder treats this as an injected capability
// so that alternate geometry backends can be substituted.
type Tessellator interface {
	ComputeCells(sites []Point3, extent Box) ([]CellGeometry, error)
}
