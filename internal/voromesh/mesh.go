package voromesh

import (
	"math"
	"sort"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
)

// Options tunes mesh construction.
type Options struct {
	// Tessellator is the geometry backend; nil selects BoxClipTessellator.
	Tessellator Tessellator
	// DedupeSites drops sites outside the domain and near-duplicate sites
	// before tessellation. Leave false only when the caller has already
	// filtered its site list.
	DedupeSites bool
}

// Mesh is the spatial index over a Voronoi tessellation of the domain.
// Construction is single-goroutine; once NewMesh returns, the mesh is
// immutable and all query methods (CellIndex, RandomPositionInCell,
// TracePath and the accessors) are safe for any number of concurrent
// callers without locking.
type Mesh struct {
	extent Box
	eps    Real // 1e-12 of the domain diagonal
	cells  []Cell
	grid   *blockGrid
}

// NewMesh tessellates the sites within the extent and builds the search
// structures. It never returns a partially built mesh: any oracle failure,
// topology violation or empty site list yields an error.
func NewMesh(sites []Point3, extent Box, opts Options) (*Mesh, error) {
	w := extent.Widths()
	if w.X <= 0 || w.Y <= 0 || w.Z <= 0 {
		return nil, errors.New("domain extent is empty or inverted")
	}

	m := &Mesh{
		extent: extent,
		eps:    1e-12 * extent.Diagonal(),
	}

	retained := sites
	if opts.DedupeSites {
		retained = m.dedupeSites(sites)
	}
	if len(retained) == 0 {
		return nil, errors.New("no sites remain after filtering").
			WithTag("input_sites", len(sites))
	}

	tess := opts.Tessellator
	if tess == nil {
		tess = BoxClipTessellator{}
	}
	geoms, err := tess.ComputeCells(retained, extent)
	if err != nil {
		return nil, errors.New("tessellation failed").Wrap(err)
	}
	if len(geoms) != len(retained) {
		return nil, errors.New("tessellator returned wrong cell count").
			WithTag("sites", len(retained)).
			WithTag("cells", len(geoms))
	}

	m.cells = make([]Cell, len(retained))
	for i, g := range geoms {
		if len(g.Vertices) == 0 {
			return nil, errors.New("cell has no vertices").WithTag("cell", i)
		}
		if g.Volume < 0 || math.IsNaN(g.Volume) {
			return nil, errors.New("cell has invalid volume").
				WithTag("cell", i).
				WithTag("volume", g.Volume)
		}
		m.cells[i] = Cell{
			Site:      retained[i],
			Centroid:  g.Centroid,
			Volume:    g.Volume,
			Bounds:    boundsOf(g.Vertices),
			Neighbors: g.Neighbors,
		}
	}
	if err := m.validateTopology(); err != nil {
		return nil, err
	}
	logNeighborStats(m.cells)

	m.grid = buildBlockGrid(m.cells, m.extent, m.eps)
	logBlockStats(m.grid)
	logTreeStats(m.grid)
	return m, nil
}

// dedupeSites returns the sites that lie inside the domain and are not
// within eps of another retained site. Sites are examined in x order so each
// one only needs to look at a narrow window of successors.
func (m *Mesh) dedupeSites(sites []Point3) []Point3 {
	n := len(sites)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	sort.Slice(indices, func(a, b int) bool {
		return sites[indices[a]].X < sites[indices[b]].X
	})

	ignored := 0
	eps2 := m.eps * m.eps
	keep := make([]bool, n)
	for i := 0; i < n; i++ {
		si := sites[indices[i]]
		if !m.extent.Contains(si) {
			ignored++
			continue
		}
		dup := false
		for j := i + 1; j < n && sites[indices[j]].X-si.X < m.eps; j++ {
			if sites[indices[j]].SquaredDistanceTo(si) < eps2 {
				dup = true
				break
			}
		}
		if dup {
			ignored++
			continue
		}
		keep[indices[i]] = true
	}

	if ignored == 0 {
		logs.WithTag("sites", n).Info("using all sites")
	} else {
		logs.WithTag("ignored", ignored).
			WithTag("retained", n-ignored).
			Info("filtered site list")
	}

	// preserve the caller's site order for the retained subset
	out := make([]Point3, 0, n-ignored)
	for i := 0; i < n; i++ {
		if keep[i] {
			out = append(out, sites[i])
		}
	}
	return out
}

// validateTopology checks that every neighbor id is either a wall sentinel
// or the index of a live cell.
func (m *Mesh) validateTopology() error {
	for i := range m.cells {
		for _, id := range m.cells[i].Neighbors {
			if id >= len(m.cells) || id < WallZMax {
				return errors.New("neighbor id out of range").
					WithTag("cell", i).
					WithTag("neighbor", id).
					WithTag("cells", len(m.cells))
			}
		}
	}
	return nil
}

func boundsOf(verts []Point3) Box {
	b := Box{Min: verts[0], Max: verts[0]}
	for _, v := range verts[1:] {
		b.Min.X = rmin(b.Min.X, v.X)
		b.Min.Y = rmin(b.Min.Y, v.Y)
		b.Min.Z = rmin(b.Min.Z, v.Z)
		b.Max.X = rmax(b.Max.X, v.X)
		b.Max.Y = rmax(b.Max.Y, v.Y)
		b.Max.Z = rmax(b.Max.Z, v.Z)
	}
	return b
}

// NumCells returns the number of cells in the mesh.
func (m *Mesh) NumCells() int { return len(m.cells) }

// Extent returns the domain bounding box.
func (m *Mesh) Extent() Box { return m.extent }

// Position returns the site position of cell i.
func (m *Mesh) Position(i int) Point3 { return m.cells[i].Site }

// Centroid returns the centroid of cell i.
func (m *Mesh) Centroid(i int) Point3 { return m.cells[i].Centroid }

// Volume returns the volume of cell i.
func (m *Mesh) Volume(i int) Real { return m.cells[i].Volume }

// CellExtent returns the bounding box of cell i.
func (m *Mesh) CellExtent(i int) Box { return m.cells[i].Bounds }

// Neighbors returns the neighbor id list of cell i. The returned slice is
// shared mesh state and must not be modified.
func (m *Mesh) Neighbors(i int) []int { return m.cells[i].Neighbors }
