package engine

import "math"

// simulatedAnnealing runs §4.13's Simulated Annealing metaheuristic: at
// each iteration it proposes a random move from (relocate ∪ swap) —
// relocate stays within the block's own day, per Relocate's
// (classroom, day, from, to, span) signature — accepts it
// unconditionally if it improves the objective, and otherwise accepts
// it with Metropolis probability exp(-delta/temperature), cooling the
// temperature geometrically after every iteration that applied a move,
// down to a 1e-4 floor. Iterations whose proposal is skipped or illegal
// do not cool.
func simulatedAnnealing(idx *domainIndex, g *grids, v *validator, rng *lcg, w objectiveWeights, initialTemp, cooling float64, iterations int, deadline func() bool) {
	best := g.snapshot()
	currentScore := score(idx, g, w)
	bestScore := currentScore
	temperature := initialTemp
	if temperature <= 0 {
		temperature = 1
	}

	for i := 0; i < iterations; i++ {
		if deadline != nil && deadline() {
			break
		}
		blocks := movableBlocks(idx, g)
		if len(blocks) == 0 {
			break
		}

		var revert func()
		if rng.Intn(2) == 0 || len(blocks) < 2 {
			m := blocks[rng.Intn(len(blocks))]
			classroom := idx.classroomByID[m.ClassroomID]
			dailyLimit := v.schoolHours.DailyLimit(classroom.Level, m.Day)
			start, end := classroom.Window(dailyLimit)
			if end-start < m.Span {
				continue
			}
			targetHour := start + rng.Intn(end-start-m.Span+1)
			if targetHour == m.Hour {
				continue
			}
			if !tryRelocate(idx, g, v, m, m.Day, targetHour) {
				continue
			}
			revert = func() {
				tryRelocate(idx, g, v, move{ClassroomID: m.ClassroomID, Day: m.Day, Hour: targetHour, Span: m.Span}, m.Day, m.Hour)
			}
		} else {
			a := blocks[rng.Intn(len(blocks))]
			b := blocks[rng.Intn(len(blocks))]
			if !trySwap(idx, g, v, a, b) {
				continue
			}
			revert = func() { trySwap(idx, g, v, a, b) }
		}

		newScore := score(idx, g, w)
		delta := newScore - currentScore

		accept := delta < 0
		if !accept {
			probability := math.Exp(-delta / temperature)
			accept = rng.Float64() < probability
		}

		if accept {
			currentScore = newScore
			if currentScore < bestScore {
				bestScore = currentScore
				best = g.snapshot()
			}
		} else {
			revert()
		}

		temperature *= cooling
		if temperature < 1e-4 {
			temperature = 1e-4
		}
	}

	g.restore(best)
}
