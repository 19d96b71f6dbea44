package engine

import "sort"

// localBlockCost ranks a block-start by how much disruption it is
// likely causing where it sits: its classroom/day's gap count, 3x that
// day's over-consecutive overage, and an edge/singleton penalty (§4.12's
// teacher-edge shape) for the teachers the block occupies that day.
// Higher means a better ruin candidate (§4.13).
func localBlockCost(idx *domainIndex, g *grids, w objectiveWeights, m move) float64 {
	classroom := idx.classroomByID[m.ClassroomID]
	classGrid := g.schedule[m.ClassroomID]
	row := classGrid[m.Day]

	cost := float64(gapsInRow(row, g.hours))
	cost += 3 * overConsecutiveOverage(row, g.hours, idx, classroom, w.globalMaxConsec)

	a := row[m.Hour]
	if a == nil {
		return cost
	}
	for _, tid := range a.TeacherIDs {
		occ := g.teacherOccupied[tid][m.Day]
		if len(occ) == 0 {
			continue
		}
		if occ[0] {
			cost += 0.5
		}
		if occ[len(occ)-1] {
			cost += 0.5
		}
		for h, busy := range occ {
			if !busy {
				continue
			}
			leftFree := h == 0 || !occ[h-1]
			rightFree := h == len(occ)-1 || !occ[h+1]
			if leftFree && rightFree {
				cost += 0.75
			}
		}
	}
	return cost
}

// ruinAndRecreate removes up to k movable blocks (converting each back
// into a unit) and reinserts all of them through the repair loop, the
// shared LNS perturbation underlying ALNS's ruin operators and the
// driver's post-metaheuristic LNS hops (§4.13).
// Candidates are ranked by localBlockCost, the top 3xk are sampled, and
// that pool is shuffled down to k — a targeted ruin rather than a
// uniform-random one.
func ruinAndRecreate(idx *domainIndex, g *grids, v *validator, rng *lcg, w objectiveWeights, k int, cfg repairConfig, stats *repairStats) {
	blocks := movableBlocks(idx, g)
	if len(blocks) == 0 {
		return
	}
	if k > len(blocks) {
		k = len(blocks)
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		return localBlockCost(idx, g, w, blocks[i]) > localBlockCost(idx, g, w, blocks[j])
	})
	pool := blocks
	if poolSize := 3 * k; poolSize < len(pool) {
		pool = pool[:poolSize]
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if k > len(pool) {
		k = len(pool)
	}

	var removed []unit
	for _, m := range pool[:k] {
		classGrid := g.schedule[m.ClassroomID]
		a := classGrid[m.Day][m.Hour]
		if a == nil {
			continue
		}
		remove(g, m.ClassroomID, a, m.Day, m.Hour, m.Span)
		removed = append(removed, unit{
			SubjectID: a.SubjectID, ClassroomID: m.ClassroomID, Span: m.Span,
			Key: a.SubjectID + "/" + m.ClassroomID + "/lns", seq: -1,
		})
	}

	repair(idx, g, v, rng, removed, cfg, stats)
}

// randomRelocate is ALNS's third operator (§4.13): it relocates one
// randomly chosen movable block to a random valid slot in the same
// classroom/day, independent of the ruin-and-recreate machinery.
func randomRelocate(idx *domainIndex, g *grids, v *validator, rng *lcg) {
	blocks := movableBlocks(idx, g)
	if len(blocks) == 0 {
		return
	}
	m := blocks[rng.Intn(len(blocks))]
	classroom := idx.classroomByID[m.ClassroomID]
	dailyLimit := v.schoolHours.DailyLimit(classroom.Level, m.Day)
	start, end := classroom.Window(dailyLimit)
	if end-start < m.Span {
		return
	}
	targetHour := start + rng.Intn(end-start-m.Span+1)
	if targetHour == m.Hour {
		return
	}
	tryRelocate(idx, g, v, m, m.Day, targetHour)
}

// runLNSHop applies one ruinAndRecreate(size) perturbation and keeps it
// only if the score did not worsen, otherwise reverting to the
// pre-hop snapshot (§4.13's LNS perturbation acceptance rule). Used for
// the driver's post-metaheuristic LNS hops (§4.14 step 5), which run
// for every strategy regardless of which metaheuristic it just ran.
func runLNSHop(idx *domainIndex, g *grids, v *validator, rng *lcg, w objectiveWeights, size int, cfg repairConfig, stats *repairStats) {
	before := g.snapshot()
	beforeScore := score(idx, g, w)

	ruinAndRecreate(idx, g, v, rng, w, size, cfg, stats)

	if score(idx, g, w) > beforeScore {
		g.restore(before)
	}
}
