package voromesh

import "math/rand"

// Box is an axis-aligned box, used both for the simulation domain and for
// per-cell bounding boxes.
type Box struct {
	Min, Max Point3
}

// NewBox builds a box from explicit coordinate bounds.
func NewBox(xmin, ymin, zmin, xmax, ymax, zmax Real) Box {
	return Box{Min: Point3{xmin, ymin, zmin}, Max: Point3{xmax, ymax, zmax}}
}

// Contains reports whether the point lies inside the box (borders included).
func (b Box) Contains(p Point3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Widths returns the box extent along each axis.
func (b Box) Widths() Vector3 {
	return b.Max.Sub(b.Min)
}

// Diagonal returns the length of the box diagonal.
func (b Box) Diagonal() Real {
	return b.Widths().Len()
}

// Volume returns the volume of the box.
func (b Box) Volume() Real {
	w := b.Widths()
	return w.X * w.Y * w.Z
}

// Extend grows the box by delta on all sides.
func (b Box) Extend(delta Real) Box {
	d := Vector3{delta, delta, delta}
	return Box{Min: b.Min.Add(d.Mul(-1)), Max: b.Max.Add(d)}
}

// BlockIndices maps a point to the indices of the block containing it in a
// uniform nb x nb x nb subdivision of the box. Out-of-box points are clamped
// to the nearest boundary block.
func (b Box) BlockIndices(p Point3, nb int) (i, j, k int) {
	w := b.Widths()
	i = clampIndex(int(Real(nb)*(p.X-b.Min.X)/w.X), nb)
	j = clampIndex(int(Real(nb)*(p.Y-b.Min.Y)/w.Y), nb)
	k = clampIndex(int(Real(nb)*(p.Z-b.Min.Z)/w.Z), nb)
	return
}

func clampIndex(i, nb int) int {
	if i < 0 {
		return 0
	}
	if i >= nb {
		return nb - 1
	}
	return i
}

// RandomPoint returns a uniformly distributed point inside the box, drawn
// from the given random stream.
func (b Box) RandomPoint(rng *rand.Rand) Point3 {
	w := b.Widths()
	return Point3{
		b.Min.X + rng.Float64()*w.X,
		b.Min.Y + rng.Float64()*w.Y,
		b.Min.Z + rng.Float64()*w.Z,
	}
}
