package voromesh

import (
	"sort"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// BoxClipTessellator is the built-in tessellation backend. For each site it
// starts from the domain box and cuts away the far side of the bisector plane
// towards every other site, nearest candidates first. A candidate farther
// than twice the current maximum vertex radius can no longer touch the cell,
// so the cut loop stops there (the usual security-radius cutoff).
//
// The cost is O(k log n) cuts per cell for k effective neighbors, which is
// fine for the catalog sizes this package targets; a different backend can be
// injected through the Tessellator interface without touching the mesh.
type BoxClipTessellator struct{}

type bisectorCandidate struct {
	j  int
	d2 Real
}

// ComputeCells implements the Tessellator interface.
func (BoxClipTessellator) ComputeCells(sites []Point3, extent Box) ([]CellGeometry, error) {
	n := len(sites)
	if n == 0 {
		return nil, errors.New("no sites to tessellate")
	}
	eps := 1e-12 * extent.Diagonal()

	out := make([]CellGeometry, n)
	cands := make([]bisectorCandidate, 0, n-1)
	for i := 0; i < n; i++ {
		site := sites[i]

		cands = cands[:0]
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			cands = append(cands, bisectorCandidate{j: j, d2: site.SquaredDistanceTo(sites[j])})
		}
		sort.Slice(cands, func(a, b int) bool {
			if cands[a].d2 != cands[b].d2 {
				return cands[a].d2 < cands[b].d2
			}
			return cands[a].j < cands[b].j
		})

		poly := newBoxPolyhedron(extent)
		maxR2 := poly.maxSquaredRadiusFrom(site)
		for _, c := range cands {
			if c.d2 > 4*maxR2 {
				break
			}
			// bisector halfspace towards the candidate: n·x <= n·mid keeps
			// the points closer to our own site
			nrm := sites[c.j].Sub(site)
			mid := site.Add(nrm.Mul(0.5))
			d := nrm.X*mid.X + nrm.Y*mid.Y + nrm.Z*mid.Z
			if poly.clip(nrm, d, c.j, eps) {
				maxR2 = poly.maxSquaredRadiusFrom(site)
			}
		}

		vol, cen := poly.volumeCentroid(site)
		if len(poly.faces) < 4 || vol <= 0 {
			return nil, errors.New("cannot compute voronoi cell").
				WithTag("site", i).
				WithTag("faces", len(poly.faces)).
				WithTag("volume", vol)
		}
		out[i] = CellGeometry{
			Volume:    vol,
			Centroid:  cen,
			Vertices:  poly.vertices(),
			Neighbors: poly.neighborIDs(),
		}
	}
	return out, nil
}
