package engine

import "hash/fnv"

// tabuList is a fixed-capacity recency memory keyed by a hash of the
// move that produced a given state, evicting the oldest entry once full
// (§4.13's Tabu Search neighborhood).
type tabuList struct {
	items   map[uint64]struct{}
	order   []uint64
	maxSize int
}

func newTabuList(size int) *tabuList {
	if size <= 0 {
		size = 25
	}
	return &tabuList{items: make(map[uint64]struct{}), maxSize: size}
}

func (t *tabuList) add(key uint64) {
	if _, exists := t.items[key]; exists {
		return
	}
	if len(t.order) >= t.maxSize {
		oldest := t.order[0]
		t.order = t.order[1:]
		delete(t.items, oldest)
	}
	t.items[key] = struct{}{}
	t.order = append(t.order, key)
}

func (t *tabuList) contains(key uint64) bool {
	_, exists := t.items[key]
	return exists
}

func moveKey(m move, day, hour int) uint64 {
	h := fnv.New64a()
	h.Write([]byte(m.ClassroomID))
	h.Write([]byte{byte(m.Day), byte(m.Hour), byte(m.Span), byte(day), byte(hour)})
	return h.Sum64()
}

// tabuCandidate is one evaluated move: apply performs it (reporting
// whether it was legal), revert undoes it.
type tabuCandidate struct {
	key    uint64
	apply  func() bool
	revert func()
}

// tabuSearch runs §4.13's Tabu Search metaheuristic: each iteration
// enumerates relocate-move candidates (falling back to swap candidates
// if none exist), shuffles and evaluates up to 200 of them via
// apply/score/revert, and applies the min-delta non-tabu move found
// (aspiration override when it beats the strict best-ever), blocking
// its key for tenure iterations. Keeps the best-so-far snapshot.
func tabuSearch(idx *domainIndex, g *grids, v *validator, rng *lcg, w objectiveWeights, tenure, iterations int, deadline func() bool) {
	const maxCandidates = 200

	tabu := newTabuList(tenure)
	best := g.snapshot()
	bestScore := score(idx, g, w)
	current := bestScore

	for i := 0; i < iterations; i++ {
		if deadline != nil && deadline() {
			break
		}
		blocks := movableBlocks(idx, g)
		if len(blocks) == 0 {
			break
		}

		candidates := tabuRelocateCandidates(idx, g, v, rng, blocks, maxCandidates)
		if len(candidates) == 0 {
			candidates = tabuSwapCandidates(idx, g, v, rng, blocks, maxCandidates)
		}
		if len(candidates) == 0 {
			continue
		}

		bestIdx := -1
		bestDelta := 0.0
		for ci, c := range candidates {
			if !c.apply() {
				continue
			}
			after := score(idx, g, w)
			delta := after - current
			aspiration := after < bestScore
			if tabu.contains(c.key) && !aspiration {
				c.revert()
				continue
			}
			if bestIdx == -1 || delta < bestDelta {
				bestIdx = ci
				bestDelta = delta
			}
			c.revert()
		}
		if bestIdx == -1 {
			continue
		}

		chosen := candidates[bestIdx]
		if !chosen.apply() {
			continue
		}
		current = score(idx, g, w)
		tabu.add(chosen.key)

		if current < bestScore {
			bestScore = current
			best = g.snapshot()
		}
	}

	g.restore(best)
}

func tabuRelocateCandidates(idx *domainIndex, g *grids, v *validator, rng *lcg, blocks []move, limit int) []tabuCandidate {
	relocates := enumerateRelocateCandidates(idx, g, v, blocks)
	rng.Shuffle(len(relocates), func(a, b int) { relocates[a], relocates[b] = relocates[b], relocates[a] })
	if len(relocates) > limit {
		relocates = relocates[:limit]
	}

	out := make([]tabuCandidate, len(relocates))
	for i, rc := range relocates {
		rc := rc
		out[i] = tabuCandidate{
			key: moveKey(rc.block, rc.block.Day, rc.hour),
			apply: func() bool {
				return tryRelocate(idx, g, v, rc.block, rc.block.Day, rc.hour)
			},
			revert: func() {
				reverted := move{ClassroomID: rc.block.ClassroomID, Day: rc.block.Day, Hour: rc.hour, Span: rc.block.Span}
				tryRelocate(idx, g, v, reverted, rc.block.Day, rc.block.Hour)
			},
		}
	}
	return out
}

func tabuSwapCandidates(idx *domainIndex, g *grids, v *validator, rng *lcg, blocks []move, limit int) []tabuCandidate {
	swaps := enumerateSwapCandidates(blocks)
	rng.Shuffle(len(swaps), func(a, b int) { swaps[a], swaps[b] = swaps[b], swaps[a] })
	if len(swaps) > limit {
		swaps = swaps[:limit]
	}

	out := make([]tabuCandidate, len(swaps))
	for i, sc := range swaps {
		sc := sc
		out[i] = tabuCandidate{
			key:    moveKey(sc.a, sc.b.Day, sc.b.Hour),
			apply:  func() bool { return trySwap(idx, g, v, sc.a, sc.b) },
			revert: func() { trySwap(idx, g, v, sc.a, sc.b) },
		}
	}
	return out
}
