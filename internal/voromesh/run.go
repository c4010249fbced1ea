package voromesh

import (
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
)

// Run executes the diagnostic scenario described by the config file: build
// the mesh, then hammer it with random rays and cell samples from all CPU
// cores. The mesh is shared read-only between the workers; every worker owns
// its random stream.
func Run(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	extent := cfg.Domain.Box()
	sites := make([]Point3, 0, imax(len(cfg.Sites), cfg.NumSites))
	if len(cfg.Sites) > 0 {
		for _, s := range cfg.Sites {
			sites = append(sites, Point3{s[0], s[1], s[2]})
		}
	} else {
		rng := rand.New(rand.NewSource(cfg.Seed))
		for i := 0; i < cfg.NumSites; i++ {
			sites = append(sites, extent.RandomPoint(rng))
		}
	}

	start := time.Now()
	mesh, err := NewMesh(sites, extent, Options{DedupeSites: !cfg.NoDedupe})
	if err != nil {
		return err
	}
	logs.WithTag("cells", mesh.NumCells()).
		WithTag("build_time", time.Since(start).String()).
		Info("mesh ready")

	start = time.Now()
	totalSegments, totalLength := traceRandomRays(mesh, cfg.Rays, cfg.Seed)
	logs.WithTag("rays", cfg.Rays).
		WithTag("segments", totalSegments).
		WithTag("avg_segments_per_ray", Real(totalSegments)/Real(cfg.Rays)).
		WithTag("total_length", totalLength).
		WithTag("trace_time", time.Since(start).String()).
		Info("traced random rays")

	start = time.Now()
	mismatches, err := sampleRandomCells(mesh, cfg.Samples, cfg.Seed)
	if err != nil {
		return err
	}
	if mismatches > 0 {
		// a sampled position must locate back to its own cell
		return errors.New("sampled positions escaped their cells").
			WithTag("mismatches", mismatches).
			WithTag("samples", cfg.Samples)
	}
	logs.WithTag("samples", cfg.Samples).
		WithTag("sample_time", time.Since(start).String()).
		Info("sampled random cell positions")
	return nil
}

// traceRandomRays fires count rays with random interior origins and
// isotropic directions, split across all cores.
func traceRandomRays(mesh *Mesh, count int, seed int64) (segments int64, length Real) {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	per, rem := count/workers, count%workers

	var totalSegments int64
	var totalLengthBits uint64 // accumulated via CAS to stay lock-free

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		n := per
		if w < rem {
			n++
		}
		go func(wid, n int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed ^ int64(wid+1)))
			var segs int64
			var local Real
			for i := 0; i < n; i++ {
				origin := mesh.Extent().RandomPoint(rng)
				path := mesh.TracePath(origin, isotropicDirection(rng))
				segs += int64(len(path.Segments))
				local += path.TotalLength()
			}
			atomic.AddInt64(&totalSegments, segs)
			for {
				old := atomic.LoadUint64(&totalLengthBits)
				updated := math.Float64bits(math.Float64frombits(old) + local)
				if atomic.CompareAndSwapUint64(&totalLengthBits, old, updated) {
					break
				}
			}
		}(w, n)
	}
	wg.Wait()
	return totalSegments, math.Float64frombits(atomic.LoadUint64(&totalLengthBits))
}

// sampleRandomCells draws count positions from randomly chosen cells and
// counts positions that do not locate back to the cell they were drawn from.
func sampleRandomCells(mesh *Mesh, count int, seed int64) (int64, error) {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	per, rem := count/workers, count%workers

	var mismatches int64
	errc := make(chan error, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		n := per
		if w < rem {
			n++
		}
		go func(wid, n int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed ^ int64(1000+wid)))
			for i := 0; i < n; i++ {
				cell := rng.Intn(mesh.NumCells())
				p, err := mesh.RandomPositionInCell(rng, cell)
				if err != nil {
					errc <- err
					return
				}
				if mesh.CellIndex(p) != cell {
					atomic.AddInt64(&mismatches, 1)
				}
			}
		}(w, n)
	}
	wg.Wait()
	close(errc)
	if err := <-errc; err != nil {
		return 0, err
	}
	return atomic.LoadInt64(&mismatches), nil
}

// isotropicDirection returns a unit vector uniformly distributed on the
// sphere.
func isotropicDirection(rng *rand.Rand) Vector3 {
	z := 2*rng.Float64() - 1
	phi := 2 * math.Pi * rng.Float64()
	s := math.Sqrt(1 - z*z)
	return Vector3{s * math.Cos(phi), s * math.Sin(phi), z}
}

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
