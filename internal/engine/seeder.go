package engine

import "sort"

// scorePlacement implements the §4.9 placement heuristic used by the
// seeder (and reused by the repair loop) to rank candidate slots for a
// single unit. Higher is better.
func scorePlacement(idx *domainIndex, g *grids, subject *Subject, classroom *Classroom, day, hour, span int, teachers []string, windowEnd int) float64 {
	classGrid := g.schedule[classroom.ID]
	s := 0.0

	if hour > 0 && classGrid[day][hour-1] != nil {
		s += 10
	}
	if hour+span < len(classGrid[day]) && classGrid[day][hour+span] != nil {
		s += 10
	}

	s += float64(windowEnd - hour)

	sameSubjectCount := 0
	blockAlreadyPresent := false
	for h := 0; h < len(classGrid[day]); h++ {
		a := classGrid[day][h]
		if a == nil || a.SubjectID != subject.ID {
			continue
		}
		sameSubjectCount++
		if _, blockSpan := findSpan(classGrid, day, h, 0, len(classGrid[day])); blockSpan >= 2 {
			blockAlreadyPresent = true
		}
	}
	s -= 10 * float64(sameSubjectCount)
	if span >= 2 && blockAlreadyPresent {
		s -= 14
	}

	teacherLoadToday := 0
	for _, tid := range teachers {
		for _, busy := range g.teacherOccupied[tid][day] {
			if busy {
				teacherLoadToday++
			}
		}
	}
	if overload := teacherLoadToday - 5*len(teachers); overload > 0 {
		s -= float64(overload)
	}

	switch span {
	case 3:
		s += 3
	case 2:
		s += 1
	}

	if subject.PinnedTeacherIDs != nil {
		pins := []string(subject.PinnedTeacherIDs[classroom.ID])
		if sameTeacherSet(pins, teachers) {
			s += 15
		}
	}

	return s
}

func sameTeacherSet(a, b []string) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	sa := append([]string(nil), a...)
	sb := append([]string(nil), b...)
	sort.Strings(sa)
	sort.Strings(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

// seedResult reports how many units the seeder placed and which units
// (unplaced or beyond the seed cap) pass on to the repair loop.
type seedResult struct {
	placed    int
	remaining []unit
}

// seed greedily fills the hardest units (fewest candidates first),
// capped at ceil(ratio*N) and 100, placing the best-scoring candidate
// for each (§4.9). Units it could not place, and every unit beyond the
// cap, pass through to the repair loop untouched.
func seed(idx *domainIndex, g *grids, v *validator, units []unit, ratio float64) seedResult {
	type scored struct {
		u     unit
		count int
	}
	ranked := make([]scored, len(units))
	for i, u := range units {
		ranked[i] = scored{u: u, count: countCandidates(idx, g, v, u)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count < ranked[j].count
		}
		return ranked[i].u.seq < ranked[j].u.seq
	})

	seedCount := int(ceilRatio(float64(len(units)) * ratio))
	if seedCount > 100 {
		seedCount = 100
	}
	if seedCount > len(ranked) {
		seedCount = len(ranked)
	}

	placedKeys := make(map[int]bool)
	result := seedResult{}

	for i := 0; i < seedCount; i++ {
		u := ranked[i].u
		if u.isGroup() {
			if seedGroupUnit(idx, g, v, u) {
				placedKeys[u.seq] = true
				result.placed++
			}
			continue
		}
		candidates := enumerateCandidates(idx, g, v, u)
		if len(candidates) == 0 {
			continue
		}
		classroom := idx.classroomByID[u.ClassroomID]
		subject := idx.subjectByID[u.SubjectID]
		best := -1
		bestScore := 0.0
		for ci, c := range candidates {
			_, windowEnd := classroom.Window(v.schoolHours.DailyLimit(classroom.Level, c.Day))
			sc := scorePlacement(idx, g, subject, classroom, c.Day, c.Hour, u.Span, c.Teachers, windowEnd)
			if best == -1 || sc > bestScore {
				best = ci
				bestScore = sc
			}
		}
		chosen := candidates[best]
		place(g, classroom, subject, chosen.Teachers, chosen.Day, chosen.Hour, u.Span)
		placedKeys[u.seq] = true
		result.placed++
	}

	for _, u := range units {
		if !placedKeys[u.seq] {
			result.remaining = append(result.remaining, u)
		}
	}
	return result
}

func seedGroupUnit(idx *domainIndex, g *grids, v *validator, u unit) bool {
	group := idx.groupByID[u.GroupID]
	if group == nil {
		return false
	}
	subject := idx.subjectByID[u.SubjectID]
	if subject == nil {
		return false
	}
	slots := candidateGroupSlots(idx, g, v, group, u.Span)
	if len(slots) == 0 {
		return false
	}
	placeGroup(g, idx, group, subject, slots[0], u.Span)
	return true
}

func ceilRatio(v float64) float64 {
	i := int(v)
	if float64(i) < v {
		return float64(i + 1)
	}
	return v
}
