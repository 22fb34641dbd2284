package domain_test

import (
	"testing"

	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/adapters/rng"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/domain"
)

func TestClamp(t *testing.T) {
	cases := []struct{ n, lo, hi, want int }{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{42, 0, 10, 10},
		{1, 1, 5, 1},
	}
	for _, c := range cases {
		if got := domain.Clamp(c.n, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%d,%d,%d) = %d, want %d", c.n, c.lo, c.hi, got, c.want)
		}
	}
}

func TestTotalMove_KnownValues(t *testing.T) {
	cases := []struct{ p, e, want int }{
		{16, 0, 0},
		{17, 15, 0},
		{3, 4, 7},
		{9, 9, 2},
		{17, 1, 2},
		{0, 0, 0},
	}
	for _, c := range cases {
		if got := domain.TotalMove(c.p, c.e); got != c.want {
			t.Errorf("TotalMove(%d,%d) = %d, want %d", c.p, c.e, got, c.want)
		}
	}
}

func TestTotalMove_CommutativeAndInRange(t *testing.T) {
	for p := 0; p < 40; p++ {
		for e := 0; e < 40; e++ {
			a, b := domain.TotalMove(p, e), domain.TotalMove(e, p)
			if a != b {
				t.Fatalf("TotalMove(%d,%d)=%d but TotalMove(%d,%d)=%d", p, e, a, e, p, b)
			}
			if a < 0 || a >= domain.Slices {
				t.Fatalf("TotalMove(%d,%d)=%d out of range", p, e, a)
			}
		}
	}
}

func TestTotalMoveOn_CustomRing(t *testing.T) {
	if got := domain.TotalMoveOn(5, 4, 8); got != 1 {
		t.Errorf("expected 1 on an 8-slot ring, got %d", got)
	}
}

func TestAdvance_Wraps(t *testing.T) {
	if got := domain.Advance(14, 5); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := domain.Advance(0, 0); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestShuffle_PermutesCopy(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}
	out := domain.Shuffle(in, rng.New(3))

	if len(out) != len(in) {
		t.Fatalf("expected %d items, got %d", len(in), len(out))
	}
	for i, v := range in {
		if v != i+1 {
			t.Fatalf("input mutated at %d: %v", i, in)
		}
	}
	seen := make(map[int]bool)
	for _, v := range out {
		seen[v] = true
	}
	if len(seen) != len(in) {
		t.Errorf("shuffle lost or duplicated items: %v", out)
	}
}

func TestShuffle_ZeroRNGRotatesFirstToEnd(t *testing.T) {
	// j is always 0, so each step swaps position i with the head.
	out := domain.Shuffle([]string{"a", "b", "c"}, zeroRNG())
	want := []string{"b", "c", "a"}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, out)
		}
	}
}
