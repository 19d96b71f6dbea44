package engine

// variableNeighborhoodSearch runs §4.13's VNS metaheuristic: each
// iteration runs an N1 pass of relocate best-improvement across
// shuffled candidates; if nothing in N1 improves, it falls through to
// an N2 pass of swap best-improvement. Keeps the best-so-far snapshot.
func variableNeighborhoodSearch(idx *domainIndex, g *grids, v *validator, rng *lcg, w objectiveWeights, iterations int, deadline func() bool) {
	best := g.snapshot()
	bestScore := score(idx, g, w)

	for i := 0; i < iterations; i++ {
		if deadline != nil && deadline() {
			break
		}
		blocks := movableBlocks(idx, g)
		if len(blocks) == 0 {
			break
		}

		if !n1RelocateBestImprovement(idx, g, v, rng, w, blocks) {
			n2SwapBestImprovement(idx, g, v, rng, w, blocks)
		}

		current := score(idx, g, w)
		if current < bestScore {
			bestScore = current
			best = g.snapshot()
		}
	}

	g.restore(best)
}

// n1RelocateBestImprovement evaluates every shuffled relocate candidate
// via apply/score/revert and applies the single best one if it improves
// on the current score. Reports whether it improved.
func n1RelocateBestImprovement(idx *domainIndex, g *grids, v *validator, rng *lcg, w objectiveWeights, blocks []move) bool {
	current := score(idx, g, w)
	candidates := enumerateRelocateCandidates(idx, g, v, blocks)
	rng.Shuffle(len(candidates), func(a, b int) { candidates[a], candidates[b] = candidates[b], candidates[a] })

	bestIdx := -1
	bestFound := current
	for ci, c := range candidates {
		if !tryRelocate(idx, g, v, c.block, c.block.Day, c.hour) {
			continue
		}
		after := score(idx, g, w)
		reverted := move{ClassroomID: c.block.ClassroomID, Day: c.block.Day, Hour: c.hour, Span: c.block.Span}
		tryRelocate(idx, g, v, reverted, c.block.Day, c.block.Hour)

		if after < bestFound {
			bestFound = after
			bestIdx = ci
		}
	}
	if bestIdx == -1 {
		return false
	}
	c := candidates[bestIdx]
	return tryRelocate(idx, g, v, c.block, c.block.Day, c.hour)
}

// n2SwapBestImprovement evaluates every shuffled swap candidate via
// apply/score/revert and applies the single best one if it improves on
// the current score. Reports whether it improved.
func n2SwapBestImprovement(idx *domainIndex, g *grids, v *validator, rng *lcg, w objectiveWeights, blocks []move) bool {
	current := score(idx, g, w)
	candidates := enumerateSwapCandidates(blocks)
	rng.Shuffle(len(candidates), func(a, b int) { candidates[a], candidates[b] = candidates[b], candidates[a] })

	bestIdx := -1
	bestFound := current
	for ci, c := range candidates {
		if !trySwap(idx, g, v, c.a, c.b) {
			continue
		}
		after := score(idx, g, w)
		trySwap(idx, g, v, c.a, c.b)

		if after < bestFound {
			bestFound = after
			bestIdx = ci
		}
	}
	if bestIdx == -1 {
		return false
	}
	c := candidates[bestIdx]
	return trySwap(idx, g, v, c.a, c.b)
}
