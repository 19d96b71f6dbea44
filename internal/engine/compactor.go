package engine

// compact performs a fixed-point left-shift pass over every classroom's
// schedule: any movable (non-fixed) assignment is slid to the earliest
// free hour within its own window that keeps every hard constraint
// satisfied, repeating until no further shift changes the schedule or
// 20 passes have run (§4.11 of spec.md). It never touches fixed cells.
func compact(idx *domainIndex, g *grids, v *validator) {
	for pass := 0; pass < 20; pass++ {
		changed := false
		for _, cid := range idx.classroomOrder {
			classroom := idx.classroomByID[cid]
			classGrid := g.schedule[cid]
			for day := 0; day < 5; day++ {
				dailyLimit := v.schoolHours.DailyLimit(classroom.Level, day)
				start, end := classroom.Window(dailyLimit)
				if compactDay(idx, g, v, classroom, classGrid, day, start, end) {
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
}

// compactDay tries to shift every block in one classroom/day left by one
// hour, in left-to-right order, repeating hour-by-hour shifts until
// nothing moves within that single day. Returns whether anything moved.
func compactDay(idx *domainIndex, g *grids, v *validator, classroom *Classroom, classGrid [][]*Assignment, day, start, end int) bool {
	movedAny := false
	for {
		moved := false
		h := start
		for h < end {
			a := classGrid[day][h]
			if a == nil || g.isFixed(classroom.ID, day, h) {
				h++
				continue
			}
			blockStart, span := findSpan(classGrid, day, h, start, end)
			if blockStart != h {
				h = blockStart + span
				continue
			}
			if tryShiftLeft(idx, g, v, classroom, classGrid, day, blockStart, span, start) {
				moved = true
				movedAny = true
			}
			h = blockStart + span
		}
		if !moved {
			break
		}
	}
	return movedAny
}

// tryShiftLeft attempts to move the block at [hour, hour+span) one hour
// earlier, as many times as possible, stopping as soon as the target
// cell is occupied, fixed, or the move would break a hard constraint.
func tryShiftLeft(idx *domainIndex, g *grids, v *validator, classroom *Classroom, classGrid [][]*Assignment, day, hour, span, windowStart int) bool {
	subject := idx.subjectByID[classGrid[day][hour].SubjectID]
	moved := false
	for hour > windowStart {
		target := hour - 1
		if classGrid[day][target] != nil || g.isFixed(classroom.ID, day, target) {
			break
		}
		a := classGrid[day][hour]
		teachers := a.TeacherIDs

		remove(g, classroom.ID, a, day, hour, span)
		if !v.isValid(classroom, subject, teachers, day, target, span) {
			place(g, classroom, subject, teachers, day, hour, span)
			break
		}
		place(g, classroom, subject, teachers, day, target, span)

		hour = target
		moved = true
	}
	return moved
}

