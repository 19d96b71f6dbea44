package engine

// move is the common shape shared by the metaheuristics of §4.13: a
// single block (classroom, day, hour, span) that can be relocated to an
// empty slot or swapped with another block.
type move struct {
	ClassroomID string
	Day, Hour   int
	Span        int
}

// movableBlocks lists every non-fixed assignment block in the current
// grids, one entry per contiguous run (deduplicated by pointer
// identity), for neighbor generation.
func movableBlocks(idx *domainIndex, g *grids) []move {
	var out []move
	for _, cid := range idx.classroomOrder {
		classGrid := g.schedule[cid]
		for day := 0; day < 5; day++ {
			h := 0
			for h < g.hours {
				a := classGrid[day][h]
				if a == nil {
					h++
					continue
				}
				start, span := findSpan(classGrid, day, h, 0, g.hours)
				if !g.isFixed(cid, day, start) {
					out = append(out, move{ClassroomID: cid, Day: day, Hour: start, Span: span})
				}
				h = start + span
			}
		}
	}
	return out
}

// tryRelocate removes the block at m and attempts to place it at
// (day, hour) in the same classroom; on failure the original placement
// is restored. Reports whether the relocation happened.
func tryRelocate(idx *domainIndex, g *grids, v *validator, m move, day, hour int) bool {
	classroom := idx.classroomByID[m.ClassroomID]
	classGrid := g.schedule[m.ClassroomID]
	a := classGrid[m.Day][m.Hour]
	if a == nil {
		return false
	}
	subject := idx.subjectByID[a.SubjectID]
	teachers := a.TeacherIDs

	remove(g, m.ClassroomID, a, m.Day, m.Hour, m.Span)
	if !v.isValid(classroom, subject, teachers, day, hour, m.Span) {
		place(g, classroom, subject, teachers, m.Day, m.Hour, m.Span)
		return false
	}
	place(g, classroom, subject, teachers, day, hour, m.Span)
	return true
}

// trySwap exchanges the (day, hour) slots of two equal-span blocks,
// restoring both on failure. Reports whether the swap happened.
func trySwap(idx *domainIndex, g *grids, v *validator, a, b move) bool {
	if a.Span != b.Span || a.ClassroomID == b.ClassroomID && a.Day == b.Day && a.Hour == b.Hour {
		return false
	}
	classroomA := idx.classroomByID[a.ClassroomID]
	classroomB := idx.classroomByID[b.ClassroomID]
	gridA := g.schedule[a.ClassroomID]
	gridB := g.schedule[b.ClassroomID]
	assignA := gridA[a.Day][a.Hour]
	assignB := gridB[b.Day][b.Hour]
	if assignA == nil || assignB == nil {
		return false
	}
	subjectA := idx.subjectByID[assignA.SubjectID]
	subjectB := idx.subjectByID[assignB.SubjectID]
	teachersA := assignA.TeacherIDs
	teachersB := assignB.TeacherIDs

	remove(g, a.ClassroomID, assignA, a.Day, a.Hour, a.Span)
	remove(g, b.ClassroomID, assignB, b.Day, b.Hour, b.Span)

	okA := v.isValid(classroomA, subjectB, teachersB, a.Day, a.Hour, a.Span)
	okB := okA && v.isValid(classroomB, subjectA, teachersA, b.Day, b.Hour, b.Span)
	if !okB {
		place(g, classroomA, subjectA, teachersA, a.Day, a.Hour, a.Span)
		place(g, classroomB, subjectB, teachersB, b.Day, b.Hour, b.Span)
		return false
	}

	place(g, classroomA, subjectB, teachersB, a.Day, a.Hour, a.Span)
	place(g, classroomB, subjectA, teachersA, b.Day, b.Hour, b.Span)
	return true
}

// relocateCandidate pairs a movable block with an in-window target hour
// on the same day, per Relocate's (classroom, day, from, to, span)
// signature (§4.13): relocation never crosses days.
type relocateCandidate struct {
	block move
	hour  int
}

// enumerateRelocateCandidates lists every (block, targetHour) pair where
// relocating block to targetHour on its own day stays within that
// classroom/day's session window.
func enumerateRelocateCandidates(idx *domainIndex, g *grids, v *validator, blocks []move) []relocateCandidate {
	var out []relocateCandidate
	for _, m := range blocks {
		classroom := idx.classroomByID[m.ClassroomID]
		dailyLimit := v.schoolHours.DailyLimit(classroom.Level, m.Day)
		start, end := classroom.Window(dailyLimit)
		if end-start < m.Span {
			continue
		}
		for h := start; h <= end-m.Span; h++ {
			if h == m.Hour {
				continue
			}
			out = append(out, relocateCandidate{block: m, hour: h})
		}
	}
	return out
}

// swapCandidate pairs two equal-span movable blocks.
type swapCandidate struct {
	a, b move
}

// enumerateSwapCandidates lists every pair of equal-span movable
// blocks, the fallback neighborhood when no relocate candidate exists.
func enumerateSwapCandidates(blocks []move) []swapCandidate {
	var out []swapCandidate
	for i := range blocks {
		for j := i + 1; j < len(blocks); j++ {
			if blocks[i].Span != blocks[j].Span {
				continue
			}
			out = append(out, swapCandidate{a: blocks[i], b: blocks[j]})
		}
	}
	return out
}
