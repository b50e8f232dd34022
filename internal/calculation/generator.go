package calculation

import "math"

// Linear-congruential constants. Changing any of them breaks seed
// compatibility with previously rendered projections.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// minUniform is substituted for a zero uniform draw before taking its logarithm.
const minUniform = 1e-10

// LCG is a small deterministic pseudo-random generator. The same seed always
// yields the same sequence, which is what keeps a projection chart stable
// between renders. It has a period of 233280 and is not safe for concurrent
// use: every simulated path owns its own instance.
type LCG struct {
	state int64
}

// NewLCG creates a generator from seed. Seeds are reduced into [0, 233280);
// negative seeds wrap to their positive residue.
func NewLCG(seed int64) *LCG {
	state := seed % lcgModulus
	if state < 0 {
		state += lcgModulus
	}
	return &LCG{state: state}
}

// NextUniform advances the generator and returns a value in [0, 1).
func (g *LCG) NextUniform() float64 {
	g.state = (g.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(g.state) / lcgModulus
}

// NextNormal returns a standard normal draw using the Box-Muller transform.
// It consumes exactly two uniform draws.
func (g *LCG) NextNormal() float64 {
	u1 := g.NextUniform()
	u2 := g.NextUniform()
	if u1 < minUniform {
		u1 = minUniform
	}
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
