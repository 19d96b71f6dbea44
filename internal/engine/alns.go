package engine

// alnsOperator is one ALNS destroy/repair operator (§4.13): the three
// named operators the spec calls for, each with an adaptive weight used
// for roulette-wheel selection.
type alnsOperator struct {
	name   string
	weight float64
	apply  func(idx *domainIndex, g *grids, v *validator, rng *lcg, w objectiveWeights, cfg repairConfig, stats *repairStats)
}

func newALNSOperators() []alnsOperator {
	return []alnsOperator{
		{name: "smallRuin", weight: 1, apply: func(idx *domainIndex, g *grids, v *validator, rng *lcg, w objectiveWeights, cfg repairConfig, stats *repairStats) {
			ruinAndRecreate(idx, g, v, rng, w, 12, cfg, stats)
		}},
		{name: "bigRuin", weight: 1, apply: func(idx *domainIndex, g *grids, v *validator, rng *lcg, w objectiveWeights, cfg repairConfig, stats *repairStats) {
			ruinAndRecreate(idx, g, v, rng, w, 28, cfg, stats)
		}},
		{name: "randomRelocate", weight: 1, apply: func(idx *domainIndex, g *grids, v *validator, rng *lcg, w objectiveWeights, cfg repairConfig, stats *repairStats) {
			randomRelocate(idx, g, v, rng)
		}},
	}
}

// adaptiveLNS runs §4.13's ALNS metaheuristic over exactly three named
// operators {smallRuin(k≈12), bigRuin(k≈28), randomRelocate}: each round
// picks one by roulette-wheel selection over adaptive weights, applies
// it, and updates only the chosen operator's weight by +0.2 on
// improvement or -0.2 on worsening (floor 0.1). Worsening snapshots are
// rejected outright.
func adaptiveLNS(idx *domainIndex, g *grids, v *validator, rng *lcg, w objectiveWeights, cfg repairConfig, iterations int, deadline func() bool, stats *repairStats) {
	operators := newALNSOperators()

	best := g.snapshot()
	bestScore := score(idx, g, w)

	for i := 0; i < iterations; i++ {
		if deadline != nil && deadline() {
			break
		}

		total := 0.0
		for _, op := range operators {
			total += op.weight
		}
		pick := rng.Float64() * total
		chosen := 0
		for oi, op := range operators {
			pick -= op.weight
			if pick <= 0 {
				chosen = oi
				break
			}
		}

		operators[chosen].apply(idx, g, v, rng, w, cfg, stats)
		newScore := score(idx, g, w)

		if newScore < bestScore {
			bestScore = newScore
			best = g.snapshot()
			operators[chosen].weight += 0.2
		} else if newScore > bestScore {
			g.restore(best)
			operators[chosen].weight -= 0.2
			if operators[chosen].weight < 0.1 {
				operators[chosen].weight = 0.1
			}
		}
	}

	g.restore(best)
}
