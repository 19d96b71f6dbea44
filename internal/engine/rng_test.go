package engine

import "testing"

func TestLCGDeterministic(t *testing.T) {
	a := newLCG(42)
	b := newLCG(42)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("two generators seeded identically diverged at draw %d", i)
		}
	}
}

func TestLCGDifferentSeedsDiverge(t *testing.T) {
	a := newLCG(1)
	b := newLCG(2)
	same := true
	for i := 0; i < 10; i++ {
		if a.Next() != b.Next() {
			same = false
		}
	}
	if same {
		t.Fatal("expected different seeds to diverge within 10 draws")
	}
}

func TestLCGIntnBounds(t *testing.T) {
	rng := newLCG(7)
	for i := 0; i < 1000; i++ {
		v := rng.Intn(5)
		if v < 0 || v >= 5 {
			t.Fatalf("Intn(5) returned out-of-range value %d", v)
		}
	}
}

func TestLCGShuffleIsPermutation(t *testing.T) {
	rng := newLCG(99)
	items := []int{0, 1, 2, 3, 4, 5, 6}
	original := append([]int(nil), items...)
	rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

	seen := make(map[int]bool)
	for _, v := range items {
		seen[v] = true
	}
	for _, v := range original {
		if !seen[v] {
			t.Fatalf("shuffle lost element %d", v)
		}
	}
}
