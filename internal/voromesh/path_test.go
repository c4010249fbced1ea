package voromesh

import (
	"math"
	"math/rand"
	"testing"
)

// rayExitDistance returns the distance from an interior origin to the point
// where the ray leaves the box (slab method).
func rayExitDistance(box Box, r Point3, k Vector3) Real {
	tExit := Real(math.MaxFloat64)
	for axis := 0; axis < 3; axis++ {
		d := k.axis(axis)
		if d > 0 {
			if t := (box.Max.axis(axis) - r.axis(axis)) / d; t < tExit {
				tExit = t
			}
		} else if d < 0 {
			if t := (box.Min.axis(axis) - r.axis(axis)) / d; t < tExit {
				tExit = t
			}
		}
	}
	return tExit
}

func TestTraceFourSiteScenario(t *testing.T) {
	mesh := fourSiteMesh(t)

	path := mesh.TracePath(Point3{-1, 0.1, 0.1}, Vector3{1, 0, 0})
	if len(path.Segments) != 2 {
		t.Fatalf("expected exactly 2 segments, got %d: %+v", len(path.Segments), path.Segments)
	}
	first, second := path.Segments[0], path.Segments[1]

	// the ray enters the cell of site (0,0,0) and crosses into the cell of
	// site (10,0,0) at the bisector x=5, leaving the domain at x=11
	if first.Cell != mesh.CellIndex(Point3{0, 0.1, 0.1}) {
		t.Fatalf("first segment in cell %d", first.Cell)
	}
	if second.Cell != mesh.CellIndex(Point3{10, 0.1, 0.1}) {
		t.Fatalf("second segment in cell %d", second.Cell)
	}
	if !nearly(first.Length, 6, 1e-6) || !nearly(second.Length, 6, 1e-6) {
		t.Fatalf("segment lengths: %.9g %.9g, want 6 each", first.Length, second.Length)
	}
	if !nearly(path.TotalLength(), 12, 1e-6) {
		t.Fatalf("total length %.9g, want 12", path.TotalLength())
	}
}

func TestTraceSingleCellSpansChord(t *testing.T) {
	box := NewBox(-1, -1, -1, 1, 1, 1)
	mesh, err := NewMesh([]Point3{{0, 0, 0}}, box, Options{})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	rng := rand.New(rand.NewSource(73))
	for i := 0; i < 200; i++ {
		r := box.RandomPoint(rng)
		k := isotropicDirection(rng)
		path := mesh.TracePath(r, k)
		if len(path.Segments) != 1 {
			t.Fatalf("single-cell mesh must yield one segment, got %d", len(path.Segments))
		}
		if want := rayExitDistance(box, r, k); !nearly(path.TotalLength(), want, 1e-6) {
			t.Fatalf("chord length %.9g, want %.9g", path.TotalLength(), want)
		}
	}
}

func TestTraceTotalLengthEqualsChord(t *testing.T) {
	box := NewBox(-2, -2, -2, 2, 2, 2)
	mesh := randomMesh(t, box, 300, 79)

	rng := rand.New(rand.NewSource(83))
	for i := 0; i < 500; i++ {
		r := box.RandomPoint(rng)
		k := isotropicDirection(rng)
		path := mesh.TracePath(r, k)
		if len(path.Segments) == 0 {
			t.Fatalf("interior ray produced no segments (origin %+v)", r)
		}
		if want := rayExitDistance(box, r, k); !nearly(path.TotalLength(), want, 1e-6) {
			t.Fatalf("path length %.12g differs from chord %.12g", path.TotalLength(), want)
		}
	}
}

func TestTraceConsecutiveSegmentsAreAdjacent(t *testing.T) {
	box := NewBox(0, 0, 0, 5, 5, 5)
	mesh := randomMesh(t, box, 250, 89)

	rng := rand.New(rand.NewSource(97))
	for i := 0; i < 300; i++ {
		path := mesh.TracePath(box.RandomPoint(rng), isotropicDirection(rng))
		for j := 0; j+1 < len(path.Segments); j++ {
			a, b := path.Segments[j].Cell, path.Segments[j+1].Cell
			if !containsID(mesh.Neighbors(a), b) {
				t.Fatalf("segments %d and %d are in non-adjacent cells %d and %d", j, j+1, a, b)
			}
		}
	}
}

func TestTraceEntersFromOutside(t *testing.T) {
	box := NewBox(-1, -1, -1, 1, 1, 1)
	mesh, err := NewMesh([]Point3{{0, 0, 0}}, box, Options{})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	// approaching ray: full chord through the box
	path := mesh.TracePath(Point3{-5, 0.2, -0.3}, Vector3{1, 0, 0})
	if len(path.Segments) != 1 || !nearly(path.TotalLength(), 2, 1e-6) {
		t.Fatalf("entering ray: got %+v", path.Segments)
	}

	// receding ray: never enters
	if path := mesh.TracePath(Point3{-5, 0.2, -0.3}, Vector3{-1, 0, 0}); len(path.Segments) != 0 {
		t.Fatalf("receding ray must yield an empty path, got %+v", path.Segments)
	}

	// ray that misses the box entirely
	if path := mesh.TracePath(Point3{-5, 10, 0}, Vector3{1, 0, 0}); len(path.Segments) != 0 {
		t.Fatalf("missing ray must yield an empty path, got %+v", path.Segments)
	}
}

func TestMoveInside(t *testing.T) {
	box := NewBox(0, 0, 0, 1, 1, 1)
	eps := 1e-12

	p, ok := moveInside(box, eps, Point3{-1, 0.5, 0.5}, Vector3{1, 0, 0})
	if !ok || !nearly(p.X, eps, 1e-15) || p.Y != 0.5 {
		t.Fatalf("entry through xmin: got %+v ok=%v", p, ok)
	}

	if _, ok := moveInside(box, eps, Point3{-1, 0.5, 0.5}, Vector3{-1, 0, 0}); ok {
		t.Fatal("receding ray cannot enter")
	}

	// interior points stay put
	p, ok = moveInside(box, eps, Point3{0.3, 0.4, 0.5}, Vector3{1, 1, 1})
	if !ok || p != (Point3{0.3, 0.4, 0.5}) {
		t.Fatalf("interior point moved: %+v", p)
	}

	// diagonal entry crossing two wall planes
	p, ok = moveInside(box, eps, Point3{-0.5, -0.5, 0.5}, Vector3{1, 1, 0}.Norm())
	if !ok || !box.Contains(p) {
		t.Fatalf("diagonal entry failed: %+v ok=%v", p, ok)
	}
}
