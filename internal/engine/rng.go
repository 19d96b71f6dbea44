package engine

// lcg is the deterministic linear-congruential generator mandated by
// §5 of spec.md: state' = (1664525*state + 1013904223) mod 2^32. All
// random draws the solver makes — seed ordering shuffles, candidate
// shuffles, LNS pool order, metaheuristic proposal picks — must consume
// from this generator exclusively so that a given RandomSeed reproduces
// byte-identical output. A language/runtime default RNG is never used.
type lcg struct {
	state uint32
	seeded bool
}

func newLCG(seed uint64) *lcg {
	return &lcg{state: uint32(seed), seeded: true}
}

// newUnseededLCG builds a generator seeded from a fixed constant; used
// when the caller has not requested determinism. The solver is still
// single-threaded and reproducible run-to-run for a fixed constant, but
// callers should not rely on that when RandomSeed is unset.
func newUnseededLCG() *lcg {
	return &lcg{state: 0x9e3779b9, seeded: false}
}

// Next returns the next 32-bit draw from the generator.
func (g *lcg) Next() uint32 {
	g.state = g.state*1664525 + 1013904223
	return g.state
}

// Intn returns a uniform value in [0, n). Panics if n <= 0.
func (g *lcg) Intn(n int) int {
	if n <= 0 {
		panic("engine: lcg.Intn called with n <= 0")
	}
	return int(g.Next() % uint32(n))
}

// Float64 returns a uniform value in [0, 1).
func (g *lcg) Float64() float64 {
	return float64(g.Next()) / 4294967296.0
}

// Shuffle permutes n elements in place using the Fisher-Yates algorithm,
// drawing exclusively from the generator.
func (g *lcg) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := g.Intn(i + 1)
		swap(i, j)
	}
}
