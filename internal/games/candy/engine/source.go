package engine

import "math/rand"

// Source supplies the randomness used for initial generation and refill.
// *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// NewSource returns a seeded math/rand source.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// SequenceSource replays a fixed list of values, wrapping around when
// exhausted. Each value is reduced modulo n. It makes refills scriptable.
type SequenceSource struct {
	Values []int
	next   int
}

// NewSequenceSource creates a SequenceSource over values.
func NewSequenceSource(values ...int) *SequenceSource {
	return &SequenceSource{Values: values}
}

// Intn returns the next scripted value modulo n.
func (s *SequenceSource) Intn(n int) int {
	if len(s.Values) == 0 || n <= 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Used returns how many values have been consumed.
func (s *SequenceSource) Used() int {
	return s.next
}

func randomSymbol(src Source, symbols int) Symbol {
	return Symbol(src.Intn(symbols) + 1)
}
