package dashboard

import "math/rand/v2"

// Random is a source of uniformly distributed numbers in [0,1).
type Random interface {
	Next() float64
}

type pcg struct{ r *rand.Rand }

func (p pcg) Next() float64 { return p.r.Float64() }

// NewRandom returns a reproducible Random: the same seed yields the same draws.
func NewRandom(seed uint64) Random {
	return pcg{rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Unseeded returns a Random seeded from the runtime's entropy.
func Unseeded() Random { return NewRandom(rand.Uint64()) }

// Sequence replays a fixed list of draws, cycling when exhausted.
type Sequence struct {
	values []float64
	next   int
}

// NewSequence returns a Sequence over values, that must be in [0,1).
func NewSequence(values ...float64) *Sequence { return &Sequence{values: values} }

func (s *Sequence) Next() float64 {
	if len(s.values) == 0 {
		return 0.5 // a zero shock
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}
