package service_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/aliskhannn/conditionals-bot/internal/service"
)

func TestShuffled_IsPermutation(t *testing.T) {
	s := service.NewShufflerWithSource(rand.New(rand.NewSource(1)))
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}
	orig := slices.Clone(in)

	for range 50 {
		out := service.Shuffled(s, in)

		if !slices.Equal(in, orig) {
			t.Fatalf("input was modified: %v", in)
		}

		sorted := slices.Clone(out)
		slices.Sort(sorted)
		if !slices.Equal(sorted, orig) {
			t.Fatalf("Shuffled(%v) = %v is not a permutation", in, out)
		}
	}
}

func TestShuffled_EdgeCases(t *testing.T) {
	s := service.NewShuffler()

	if out := service.Shuffled(s, []string{}); len(out) != 0 {
		t.Errorf("empty input produced %v", out)
	}
	if out := service.Shuffled[string](s, nil); len(out) != 0 {
		t.Errorf("nil input produced %v", out)
	}
	if out := service.Shuffled(s, []string{"only"}); !slices.Equal(out, []string{"only"}) {
		t.Errorf("single input produced %v", out)
	}
}

func TestShuffled_WalksBackToFront(t *testing.T) {
	// Always picking j=0: i=2 swaps 2<->0, then i=1 swaps 1<->0.
	s := service.NewShufflerWithSource(&fixedSource{vals: []int{0}})

	got := service.Shuffled(s, []string{"a", "b", "c"})
	want := []string{"b", "c", "a"}
	if !slices.Equal(got, want) {
		t.Errorf("Shuffled = %v, want %v", got, want)
	}
}

func TestShuffled_ReachesEveryPermutation(t *testing.T) {
	s := service.NewShufflerWithSource(rand.New(rand.NewSource(42)))
	seen := make(map[string]int)

	for range 6000 {
		out := service.Shuffled(s, []string{"a", "b", "c"})
		seen[out[0]+out[1]+out[2]]++
	}

	if len(seen) != 6 {
		t.Fatalf("saw %d distinct permutations, want 6: %v", len(seen), seen)
	}
	for perm, n := range seen {
		// Expected 1000 each; a loose bound still catches a biased shuffle.
		if n < 800 || n > 1200 {
			t.Errorf("permutation %s appeared %d times", perm, n)
		}
	}
}
