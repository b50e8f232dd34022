package calculation

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SeedMode controls how each path's generator is seeded.
type SeedMode string

const (
	// SeedShared replays the same seed for every path. This matches the
	// reference projections, and it makes every path identical.
	SeedShared SeedMode = "shared"
	// SeedPerPath seeds path i with seed+i. Output is not comparable with
	// projections rendered in shared mode.
	SeedPerPath SeedMode = "per_path"
)

// ParseSeedMode maps a config string to a SeedMode. Empty means shared.
func ParseSeedMode(s string) (SeedMode, error) {
	switch SeedMode(s) {
	case "", SeedShared:
		return SeedShared, nil
	case SeedPerPath:
		return SeedPerPath, nil
	default:
		return "", fmt.Errorf("unknown seed mode %q: expected %q or %q", s, SeedShared, SeedPerPath)
	}
}

// Path is one simulated net-worth trajectory; index 0 is the start value.
type Path []float64

// Ensemble holds every path produced by one simulation call.
type Ensemble struct {
	Paths []Path `json:"paths"`
}

// PathCount returns the number of paths.
func (e *Ensemble) PathCount() int { return len(e.Paths) }

// Days returns the number of samples per path (horizon + 1).
func (e *Ensemble) Days() int {
	if len(e.Paths) == 0 {
		return 0
	}
	return len(e.Paths[0])
}

// Column copies the cross-section of all paths at day into dst and returns it.
func (e *Ensemble) Column(day int, dst []float64) []float64 {
	dst = dst[:0]
	for _, p := range e.Paths {
		dst = append(dst, p[day])
	}
	return dst
}

// NetWorthSimulator generates ensembles of net-worth paths.
type NetWorthSimulator struct {
	// Workers bounds the number of paths simulated concurrently.
	// Zero means GOMAXPROCS.
	Workers  int
	SeedMode SeedMode
	Logger   Logger
}

// NewNetWorthSimulator creates a simulator in shared-seed mode.
func NewNetWorthSimulator() *NetWorthSimulator {
	return &NetWorthSimulator{
		SeedMode: SeedShared,
		Logger:   NopLogger{},
	}
}

func (s *NetWorthSimulator) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (s *NetWorthSimulator) logger() Logger {
	if s.Logger == nil {
		return NopLogger{}
	}
	return s.Logger
}

// pathSeed returns the generator seed for path index i.
func (s *NetWorthSimulator) pathSeed(base int64, i int) int64 {
	if s.SeedMode == SeedPerPath {
		return base + int64(i)
	}
	return base
}

// Simulate validates params and generates params.PathCount paths.
// Paths run concurrently, each with its own generator, so the result is
// identical to a sequential run.
func (s *NetWorthSimulator) Simulate(params SimulationParams) (*Ensemble, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	s.logger().Debugf("simulating %d paths over %d days (seed=%d, mode=%s)",
		params.PathCount, params.HorizonDays, params.Seed, s.SeedMode)

	paths := make([]Path, params.PathCount)
	var g errgroup.Group
	g.SetLimit(s.workers())

	for i := 0; i < params.PathCount; i++ {
		i := i
		g.Go(func() error {
			path, err := simulatePath(params, NewLCG(s.pathSeed(params.Seed, i)))
			if err != nil {
				return fmt.Errorf("path %d: %w", i, err)
			}
			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger().Errorf("simulation failed: %v", err)
		return nil, err
	}
	return &Ensemble{Paths: paths}, nil
}

// simulatePath advances one trajectory day by day. Draw order is fixed:
// surplus shock first, then return shock.
func simulatePath(params SimulationParams, gen *LCG) (Path, error) {
	path := make(Path, params.HorizonDays+1)
	value := params.StartValue
	path[0] = value

	for day := 1; day <= params.HorizonDays; day++ {
		surplusShock := gen.NextNormal()*params.DailyDriftStdDev + params.DailyDriftMean
		returnShock := gen.NextNormal()*params.DailyReturnStdDev + params.DailyReturnMean

		// Net worth is floored at zero in this projection.
		value = math.Max(0, value*(1+returnShock)+surplusShock)
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("%w: day %d", ErrNonFiniteValue, day)
		}
		path[day] = value
	}
	return path, nil
}
