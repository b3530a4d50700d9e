package service

import (
	"math/rand"
	"sync"
	"time"
)

// Source yields uniformly distributed integers in [0, n).
// *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// lockedSource makes a *rand.Rand safe to share between goroutines.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Shuffler produces unbiased random permutations.
type Shuffler struct {
	src Source
}

// NewShuffler creates a Shuffler seeded from the clock and safe for concurrent use.
func NewShuffler() *Shuffler {
	return &Shuffler{
		src: &lockedSource{rng: rand.New(rand.NewSource(time.Now().UnixNano()))},
	}
}

// NewShufflerWithSource creates a Shuffler over an explicit source, e.g. a seeded *rand.Rand in tests.
func NewShufflerWithSource(src Source) *Shuffler {
	return &Shuffler{src: src}
}

// Shuffled returns a shuffled copy of in; the input slice is never modified.
// It walks from the last index down to 1 and swaps i with a uniform j in [0, i].
func Shuffled[T any](s *Shuffler, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)

	for i := len(out) - 1; i > 0; i-- {
		j := s.src.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}

	return out
}
