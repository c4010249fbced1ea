package voromesh

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Segment is one traversed stretch of a ray: the cell it crossed and the
// length of the chord inside that cell.
type Segment struct {
	Cell   int
	Length Real
}

// Path is the ordered list of segments produced by one TracePath call. It is
// owned exclusively by the caller and shares no state with the mesh.
type Path struct {
	Segments []Segment
}

func (p *Path) add(cell int, ds Real) {
	if ds > 0 {
		p.Segments = append(p.Segments, Segment{Cell: cell, Length: ds})
	}
}

// TotalLength returns the summed length of all segments.
func (p *Path) TotalLength() Real {
	var total Real
	for _, s := range p.Segments {
		total += s.Length
	}
	return total
}

// TracePath marches the ray with origin r and direction k through the mesh,
// cell to cell, and returns the traversed (cell, length) segments in order.
// A ray that starts outside the domain is first advanced to just inside the
// wall it enters through; a ray that never enters yields an empty path.
// The walked-in distance outside the domain is not recorded.
func (m *Mesh) TracePath(r Point3, k Vector3) Path {
	var path Path

	r, inside := moveInside(m.extent, m.eps, r, k)
	if !inside {
		return path
	}

	mr := m.CellIndex(r)
	for mr >= 0 {
		pr := m.cells[mr].Site

		// smallest strictly positive intersection distance over all faces;
		// ties go to the first face found, a deterministic policy that true
		// ties (probability zero for general-position rays) cannot upset
		sq := Real(math.MaxFloat64)
		const noIndex = -99
		mq := noIndex

		for _, mi := range m.cells[mr].Neighbors {
			var si Real
			if mi >= 0 {
				// bisecting plane between our site and the neighbor site;
				// a non-positive denominator means the ray moves away from
				// the plane and cannot exit through it
				n := m.cells[mi].Site.Sub(pr)
				ndotk := n.Dot(k)
				if ndotk > 0 {
					p := pr.Add(n.Mul(0.5))
					si = n.Dot(p.Sub(r)) / ndotk
				}
			} else {
				switch mi {
				case WallXMin:
					si = (m.extent.Min.X - r.X) / k.X
				case WallXMax:
					si = (m.extent.Max.X - r.X) / k.X
				case WallYMin:
					si = (m.extent.Min.Y - r.Y) / k.Y
				case WallYMax:
					si = (m.extent.Max.Y - r.Y) / k.Y
				case WallZMin:
					si = (m.extent.Min.Z - r.Z) / k.Z
				case WallZMax:
					si = (m.extent.Max.Z - r.Z) / k.Z
				default:
					panic(errors.New("invalid neighbor id").
						WithTag("cell", mr).
						WithTag("neighbor", mi))
				}
			}
			if si > 0 && si < sq {
				sq = si
				mq = mi
			}
		}

		if mq == noIndex {
			// numerical degeneracy (e.g. the ray grazes a vertex): nudge the
			// point forward and relocate; each nudge strictly advances along
			// the ray, so even a pathological ray terminates
			r = r.Add(k.Mul(m.eps))
			mr = m.CellIndex(r)
		} else {
			path.add(mr, sq)
			r = r.Add(k.Mul(sq + m.eps))
			mr = mq // a wall sentinel is negative and ends the loop
		}
	}
	return path
}

// moveInside advances a point along direction k until it lies just inside
// the box (eps away from the entered wall), handling one axis at a time.
// It reports false when the ray cannot enter the box.
func moveInside(box Box, eps Real, r Point3, k Vector3) (Point3, bool) {
	if r.X <= box.Min.X {
		if k.X <= 0 {
			return r, false
		}
		ds := (box.Min.X - r.X) / k.X
		r = Point3{box.Min.X + eps, r.Y + k.Y*ds, r.Z + k.Z*ds}
	} else if r.X >= box.Max.X {
		if k.X >= 0 {
			return r, false
		}
		ds := (box.Max.X - r.X) / k.X
		r = Point3{box.Max.X - eps, r.Y + k.Y*ds, r.Z + k.Z*ds}
	}

	if r.Y <= box.Min.Y {
		if k.Y <= 0 {
			return r, false
		}
		ds := (box.Min.Y - r.Y) / k.Y
		r = Point3{r.X + k.X*ds, box.Min.Y + eps, r.Z + k.Z*ds}
	} else if r.Y >= box.Max.Y {
		if k.Y >= 0 {
			return r, false
		}
		ds := (box.Max.Y - r.Y) / k.Y
		r = Point3{r.X + k.X*ds, box.Max.Y - eps, r.Z + k.Z*ds}
	}

	if r.Z <= box.Min.Z {
		if k.Z <= 0 {
			return r, false
		}
		ds := (box.Min.Z - r.Z) / k.Z
		r = Point3{r.X + k.X*ds, r.Y + k.Y*ds, box.Min.Z + eps}
	} else if r.Z >= box.Max.Z {
		if k.Z >= 0 {
			return r, false
		}
		ds := (box.Max.Z - r.Z) / k.Z
		r = Point3{r.X + k.X*ds, r.Y + k.Y*ds, box.Max.Z - eps}
	}

	// pushing inside along one axis can still leave the point outside
	// along another when the ray misses the box
	return r, box.Contains(r)
}
