package engine

import "sort"

// repairStats accumulates the diagnostics the repair loop feeds into
// Stats (§4.10, §6 of spec.md).
type repairStats struct {
	placements     int
	backtracks     int
	mrvDeadEnds    int
	hardestLessons map[string]int
}

func newRepairStats() *repairStats {
	return &repairStats{hardestLessons: make(map[string]int)}
}

func (s *repairStats) recordDeadEnd(key string) {
	s.mrvDeadEnds++
	s.hardestLessons[key]++
}

// repairConfig bounds the localized ruin-and-rebuild behavior.
type repairConfig struct {
	maxConflictRemovals int
	allowBlockRelax     bool
	maxPasses           int
}

func defaultRepairConfig(allowBlockRelax bool) repairConfig {
	return repairConfig{maxConflictRemovals: 6, allowBlockRelax: allowBlockRelax, maxPasses: 4}
}

// repair drives the MRV-ordered placement loop: at every step it picks
// the remaining unit with the fewest valid candidates, places the
// best-scoring one, and on a dead end either relaxes a block unit into
// singles or ruins a small conflicting neighborhood and retries before
// giving up on that unit for this attempt (§4.10). It returns the units
// it could not place after maxPasses full passes.
func repair(idx *domainIndex, g *grids, v *validator, rng *lcg, units []unit, cfg repairConfig, stats *repairStats) []unit {
	pending := append([]unit(nil), units...)
	var unresolved []unit

	for pass := 0; pass < cfg.maxPasses && len(pending) > 0; pass++ {
		next := pending[:0:0]
		sort.SliceStable(pending, func(i, j int) bool {
			ci, cj := countCandidates(idx, g, v, pending[i]), countCandidates(idx, g, v, pending[j])
			if ci != cj {
				return ci < cj
			}
			return pending[i].seq < pending[j].seq
		})

		for _, u := range pending {
			if tryPlaceUnit(idx, g, v, u, stats) {
				continue
			}

			stats.recordDeadEnd(u.Key)

			if !u.isGroup() && u.Span > 1 && cfg.allowBlockRelax {
				for h := 0; h < u.Span; h++ {
					next = append(next, unit{
						SubjectID: u.SubjectID, ClassroomID: u.ClassroomID, Span: 1,
						Key: u.Key + "/relaxed", seq: u.seq,
					})
				}
				continue
			}

			if ruinAndRetry(idx, g, v, rng, u, cfg, stats, &next) {
				continue
			}

			next = append(next, u)
		}

		pending = next
	}

	unresolved = append(unresolved, pending...)
	return unresolved
}

func tryPlaceUnit(idx *domainIndex, g *grids, v *validator, u unit, stats *repairStats) bool {
	if u.isGroup() {
		if !seedGroupUnit(idx, g, v, u) {
			return false
		}
		stats.placements++
		return true
	}
	candidates := enumerateCandidates(idx, g, v, u)
	if len(candidates) == 0 {
		return false
	}
	classroom := idx.classroomByID[u.ClassroomID]
	subject := idx.subjectByID[u.SubjectID]
	best := -1
	bestScore := 0.0
	for ci, c := range candidates {
		_, windowEnd := classroom.Window(v.schoolHours.DailyLimit(classroom.Level, c.Day))
		sc := scorePlacement(idx, g, subject, classroom, c.Day, c.Hour, u.Span, c.Teachers, windowEnd)
		if best == -1 || sc > bestScore {
			best, bestScore = ci, sc
		}
	}
	chosen := candidates[best]
	place(g, classroom, subject, chosen.Teachers, chosen.Day, chosen.Hour, u.Span)
	stats.placements++
	return true
}

// ruinAndRetry removes up to cfg.maxConflictRemovals non-fixed
// assignments from u's classroom, drawn at random from conflictSet's
// occupied in-window cells, reinserts their owning units into the
// deferred queue, and retries placing u once. It reports whether u was
// placed.
func ruinAndRetry(idx *domainIndex, g *grids, v *validator, rng *lcg, u unit, cfg repairConfig, stats *repairStats, deferred *[]unit) bool {
	if u.isGroup() {
		return false
	}
	classroom := idx.classroomByID[u.ClassroomID]
	subject := idx.subjectByID[u.SubjectID]
	if classroom == nil || subject == nil {
		return false
	}

	blockers := conflictSet(idx, g, v, classroom, cfg.maxConflictRemovals)
	if len(blockers) == 0 {
		return false
	}
	rng.Shuffle(len(blockers), func(i, j int) { blockers[i], blockers[j] = blockers[j], blockers[i] })
	if len(blockers) > cfg.maxConflictRemovals {
		blockers = blockers[:cfg.maxConflictRemovals]
	}

	classGrid := g.schedule[classroom.ID]
	for _, b := range blockers {
		if g.isFixed(classroom.ID, b.day, b.hour) {
			continue
		}
		a := classGrid[b.day][b.hour]
		if a == nil {
			continue
		}
		start, span := findSpan(classGrid, b.day, b.hour, 0, len(classGrid[b.day]))
		remove(g, classroom.ID, a, b.day, start, span)
		*deferred = append(*deferred, unit{
			SubjectID: a.SubjectID, ClassroomID: classroom.ID, Span: span,
			Key: a.SubjectID + "/" + classroom.ID + "/ruined", seq: -1,
		})
		stats.backtracks++
	}

	placed := tryPlaceUnit(idx, g, v, u, stats)
	return placed
}

type gridCell struct {
	day, hour int
}

// conflictSet enumerates occupied, non-fixed cells across the
// classroom's full weekly window; these are candidates for localized
// ruin when no valid slot exists for the unit being placed. It returns
// at most limit*4 raw cells so the caller has enough to shuffle and
// trim down to limit.
func conflictSet(idx *domainIndex, g *grids, v *validator, classroom *Classroom, limit int) []gridCell {
	classGrid := g.schedule[classroom.ID]
	var cells []gridCell
	for day := 0; day < 5; day++ {
		dailyLimit := v.schoolHours.DailyLimit(classroom.Level, day)
		start, end := classroom.Window(dailyLimit)
		for h := start; h < end; h++ {
			if classGrid[day][h] == nil || g.isFixed(classroom.ID, day, h) {
				continue
			}
			cells = append(cells, gridCell{day: day, hour: h})
			if len(cells) >= limit*4 {
				return cells
			}
		}
	}
	return cells
}
