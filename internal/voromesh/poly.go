package voromesh

import (
	"math"
	"sort"
)

// polyFace is one face of a convex polyhedron: an ordered vertex loop with
// outward orientation, tagged with the neighbor id that generated it.
type polyFace struct {
	id    int
	verts []Point3
}

// polyhedron is a convex polyhedron represented as a set of tagged faces.
// It starts out as the domain box and is whittled down by bisector halfspaces.
type polyhedron struct {
	faces []polyFace
}

// newBoxPolyhedron returns the domain box as a polyhedron whose six faces are
// tagged with the wall sentinels.
func newBoxPolyhedron(b Box) polyhedron {
	x0, y0, z0 := b.Min.X, b.Min.Y, b.Min.Z
	x1, y1, z1 := b.Max.X, b.Max.Y, b.Max.Z
	return polyhedron{faces: []polyFace{
		{id: WallXMin, verts: []Point3{{x0, y0, z0}, {x0, y0, z1}, {x0, y1, z1}, {x0, y1, z0}}},
		{id: WallXMax, verts: []Point3{{x1, y0, z0}, {x1, y1, z0}, {x1, y1, z1}, {x1, y0, z1}}},
		{id: WallYMin, verts: []Point3{{x0, y0, z0}, {x1, y0, z0}, {x1, y0, z1}, {x0, y0, z1}}},
		{id: WallYMax, verts: []Point3{{x0, y1, z0}, {x0, y1, z1}, {x1, y1, z1}, {x1, y1, z0}}},
		{id: WallZMin, verts: []Point3{{x0, y0, z0}, {x0, y1, z0}, {x1, y1, z0}, {x1, y0, z0}}},
		{id: WallZMax, verts: []Point3{{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1}}},
	}}
}

// clip cuts the polyhedron by the halfspace n·x <= d, tagging the new cap
// face with the given id. It reports whether the plane actually removed
// anything. eps is the absolute tolerance for on-plane vertices.
func (p *polyhedron) clip(n Vector3, d Real, id int, eps Real) bool {
	kept := p.faces[:0]
	var cut []Point3
	clipped := false

	for _, f := range p.faces {
		nv := len(f.verts)
		loop := make([]Point3, 0, nv+2)
		faceCut := false
		for i := 0; i < nv; i++ {
			a := f.verts[i]
			b := f.verts[(i+1)%nv]
			sa := n.X*a.X + n.Y*a.Y + n.Z*a.Z - d
			sb := n.X*b.X + n.Y*b.Y + n.Z*b.Z - d
			inA := sa <= eps
			inB := sb <= eps
			if inA {
				loop = append(loop, a)
			} else {
				faceCut = true
			}
			// a true crossing produces one intersection point on the cut edge
			if inA != inB && math.Abs(sa-sb) > 0 {
				t := sa / (sa - sb)
				q := Point3{a.X + t*(b.X-a.X), a.Y + t*(b.Y-a.Y), a.Z + t*(b.Z-a.Z)}
				loop = append(loop, q)
				cut = append(cut, q)
			}
		}
		if faceCut {
			clipped = true
		}
		if len(loop) >= 3 {
			kept = append(kept, polyFace{id: f.id, verts: loop})
		}
	}
	p.faces = kept

	if !clipped || len(cut) == 0 {
		return clipped
	}

	// assemble the cap face on the cutting plane from the collected edge
	// crossings: dedupe, then order angularly around the cap centroid
	capVerts := dedupePoints(cut, eps)
	if len(capVerts) >= 3 {
		orderLoop(capVerts, n)
		p.faces = append(p.faces, polyFace{id: id, verts: capVerts})
	}
	return true
}

func dedupePoints(pts []Point3, eps Real) []Point3 {
	eps2 := eps * eps
	if eps2 == 0 {
		eps2 = 1e-24
	}
	out := pts[:0]
	for _, q := range pts {
		dup := false
		for _, r := range out {
			if q.SquaredDistanceTo(r) <= eps2 {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, q)
		}
	}
	return out
}

// orderLoop sorts coplanar points into a loop whose orientation matches the
// outward normal n.
func orderLoop(pts []Point3, n Vector3) {
	var c Point3
	for _, q := range pts {
		c.X += q.X
		c.Y += q.Y
		c.Z += q.Z
	}
	inv := 1 / Real(len(pts))
	c = Point3{c.X * inv, c.Y * inv, c.Z * inv}

	// in-plane basis
	u := pts[0].Sub(c).Norm()
	w := n.Cross(u).Norm()

	sort.Slice(pts, func(i, j int) bool {
		vi := pts[i].Sub(c)
		vj := pts[j].Sub(c)
		ai := math.Atan2(vi.Dot(w), vi.Dot(u))
		aj := math.Atan2(vj.Dot(w), vj.Dot(u))
		return ai < aj
	})
}

// maxSquaredRadiusFrom returns the squared distance from r to the farthest
// polyhedron vertex, used for the security-radius cutoff during tessellation.
func (p *polyhedron) maxSquaredRadiusFrom(r Point3) Real {
	maxSD := Real(0)
	for _, f := range p.faces {
		for _, v := range f.verts {
			if sd := r.SquaredDistanceTo(v); sd > maxSD {
				maxSD = sd
			}
		}
	}
	return maxSD
}

// vertexBounds returns the axis-aligned box enclosing all vertices.
func (p *polyhedron) vertexBounds() Box {
	b := Box{
		Min: Point3{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64},
		Max: Point3{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64},
	}
	for _, f := range p.faces {
		for _, v := range f.verts {
			b.Min.X = rmin(b.Min.X, v.X)
			b.Min.Y = rmin(b.Min.Y, v.Y)
			b.Min.Z = rmin(b.Min.Z, v.Z)
			b.Max.X = rmax(b.Max.X, v.X)
			b.Max.Y = rmax(b.Max.Y, v.Y)
			b.Max.Z = rmax(b.Max.Z, v.Z)
		}
	}
	return b
}

// vertices returns all face loop vertices (with duplicates across faces).
func (p *polyhedron) vertices() []Point3 {
	var out []Point3
	for _, f := range p.faces {
		out = append(out, f.verts...)
	}
	return out
}

// neighborIDs returns the face ids in face order.
func (p *polyhedron) neighborIDs() []int {
	ids := make([]int, len(p.faces))
	for i, f := range p.faces {
		ids[i] = f.id
	}
	return ids
}

// volumeCentroid computes the volume and centroid by decomposing the
// polyhedron into tetrahedra between the reference point r and a triangle
// fan over each face. r must lie inside (the site always does for a Voronoi
// cell) and faces must be outward-oriented, so every signed volume is
// non-negative up to rounding.
func (p *polyhedron) volumeCentroid(r Point3) (Real, Point3) {
	var vol Real
	var cx, cy, cz Real
	for _, f := range p.faces {
		v0 := f.verts[0]
		for i := 1; i < len(f.verts)-1; i++ {
			a, b := f.verts[i], f.verts[i+1]
			e0 := v0.Sub(r)
			e1 := a.Sub(r)
			e2 := b.Sub(r)
			v := e0.Dot(e1.Cross(e2)) / 6
			vol += v
			cx += v * (r.X + v0.X + a.X + b.X) * 0.25
			cy += v * (r.Y + v0.Y + a.Y + b.Y) * 0.25
			cz += v * (r.Z + v0.Z + a.Z + b.Z) * 0.25
		}
	}
	if vol <= 0 {
		return vol, r
	}
	inv := 1 / vol
	return vol, Point3{cx * inv, cy * inv, cz * inv}
}

func rmin(a, b Real) Real {
	if a < b {
		return a
	}
	return b
}

func rmax(a, b Real) Real {
	if a > b {
		return a
	}
	return b
}
