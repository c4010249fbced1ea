package voromesh

type Real = float64

// Point3 represents a position in 3D space.
type Point3 struct {
	X, Y, Z Real
}

// Add lets you translate a Point3 by a Vector3.
func (p Point3) Add(v Vector3) Point3 {
	return Point3{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Sub returns the vector pointing from q to p.
func (p Point3) Sub(q Point3) Vector3 {
	return Vector3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// SquaredDistanceTo returns the squared Euclidean distance between two points.
func (p Point3) SquaredDistanceTo(q Point3) Real {
	dx, dy, dz := p.X-q.X, p.Y-q.Y, p.Z-q.Z
	return dx*dx + dy*dy + dz*dz
}

// axis returns the coordinate along the given axis (0=X, 1=Y, 2=Z).
func (p Point3) axis(a int) Real {
	switch a {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// lessThan compares two points along the given split axis (0,1,2) using the
// remaining axes as lexicographic tie-breakers, so that ordering is total and
// deterministic even when coordinates coincide.
func lessThan(p, q Point3, axis int) bool {
	switch axis {
	case 0:
		if p.X < q.X {
			return true
		}
		if p.X > q.X {
			return false
		}
		if p.Y < q.Y {
			return true
		}
		if p.Y > q.Y {
			return false
		}
		return p.Z < q.Z
	case 1:
		if p.Y < q.Y {
			return true
		}
		if p.Y > q.Y {
			return false
		}
		if p.Z < q.Z {
			return true
		}
		if p.Z > q.Z {
			return false
		}
		return p.X < q.X
	default:
		if p.Z < q.Z {
			return true
		}
		if p.Z > q.Z {
			return false
		}
		if p.X < q.X {
			return true
		}
		if p.X > q.X {
			return false
		}
		return p.Y < q.Y
	}
}
