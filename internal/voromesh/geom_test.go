package voromesh

import (
	"math"
	"math/rand"
	"testing"
)

const testEps = 1e-12

func nearly(a, b Real, tol Real) bool { return math.Abs(a-b) <= tol }

func TestVectorOps(t *testing.T) {
	a := Vector3{1, 2, 3}
	b := Vector3{-2, 1, 5}

	if got := a.Dot(b); !nearly(got, -2+2+15, testEps) {
		t.Fatalf("dot product: got %.15g", got)
	}
	c := a.Cross(b)
	// cross product is orthogonal to both inputs
	if !nearly(c.Dot(a), 0, testEps) || !nearly(c.Dot(b), 0, testEps) {
		t.Fatalf("cross product not orthogonal: c·a=%.15g c·b=%.15g", c.Dot(a), c.Dot(b))
	}
	if got := a.Norm().Len(); !nearly(got, 1, testEps) {
		t.Fatalf("normalized length: got %.15g", got)
	}
	zero := Vector3{}
	if zero.Norm() != zero {
		t.Fatal("normalizing the zero vector must return it unchanged")
	}
}

func TestBoxContainsAndWidths(t *testing.T) {
	b := NewBox(-1, -2, -3, 1, 2, 3)

	if !b.Contains(Point3{0, 0, 0}) || !b.Contains(b.Min) || !b.Contains(b.Max) {
		t.Fatal("box must contain interior points and its own corners")
	}
	if b.Contains(Point3{1.001, 0, 0}) {
		t.Fatal("box must not contain points beyond xmax")
	}
	w := b.Widths()
	if w != (Vector3{2, 4, 6}) {
		t.Fatalf("widths: got %+v", w)
	}
	if !nearly(b.Volume(), 48, testEps) {
		t.Fatalf("volume: got %.15g", b.Volume())
	}
	if !nearly(b.Diagonal(), math.Sqrt(4+16+36), testEps) {
		t.Fatalf("diagonal: got %.15g", b.Diagonal())
	}
}

func TestBoxBlockIndices(t *testing.T) {
	b := NewBox(0, 0, 0, 10, 10, 10)
	const nb = 5

	i, j, k := b.BlockIndices(Point3{0.5, 5.5, 9.5}, nb)
	if i != 0 || j != 2 || k != 4 {
		t.Fatalf("block indices: got (%d,%d,%d)", i, j, k)
	}
	// out-of-box points clamp to boundary blocks
	i, j, k = b.BlockIndices(Point3{-3, 11, 10}, nb)
	if i != 0 || j != nb-1 || k != nb-1 {
		t.Fatalf("clamped block indices: got (%d,%d,%d)", i, j, k)
	}
}

func TestBoxRandomPoint(t *testing.T) {
	b := NewBox(-2, 3, -7, -1, 4, -5)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		if p := b.RandomPoint(rng); !b.Contains(p) {
			t.Fatalf("random point %+v outside box", p)
		}
	}
}

func TestLessThanIsTotalAndDeterministic(t *testing.T) {
	p := Point3{1, 2, 3}
	q := Point3{1, 2, 4}

	for axis := 0; axis < 3; axis++ {
		if lessThan(p, p, axis) {
			t.Fatalf("a point must not be less than itself (axis %d)", axis)
		}
		if lessThan(p, q, axis) == lessThan(q, p, axis) {
			t.Fatalf("ordering must be antisymmetric for distinct points (axis %d)", axis)
		}
	}
	// ties on the split axis fall through to the next axes
	if !lessThan(Point3{1, 1, 1}, Point3{1, 2, 0}, 0) {
		t.Fatal("x tie must break on y")
	}
	if !lessThan(Point3{5, 1, 1}, Point3{0, 1, 2}, 1) {
		t.Fatal("y tie must break on z before x")
	}
}
