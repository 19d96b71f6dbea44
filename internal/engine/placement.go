package engine

// place mutates the grids atomically for a unit spanning span hours,
// starting at day/hour in classroom, with a single shared Assignment
// value referenced by every cell in the span (§4.6, §9 of spec.md).
// Placement on an already-occupied cell is an invariant breach and
// panics; callers must validate with isValid first.
func place(g *grids, classroom *Classroom, subject *Subject, teachers []string, day, hour, span int) *Assignment {
	classGrid := g.schedule[classroom.ID]
	for h := hour; h < hour+span; h++ {
		if classGrid[day][h] != nil {
			panic("engine: place called on an already-occupied cell")
		}
	}

	a := &Assignment{
		SubjectID:   subject.ID,
		TeacherIDs:  append([]string(nil), teachers...),
		ClassroomID: classroom.ID,
		LocationID:  subject.LocationID,
	}

	for h := hour; h < hour+span; h++ {
		classGrid[day][h] = a
	}
	for _, tid := range teachers {
		occ := g.teacherOccupied[tid]
		for h := hour; h < hour+span; h++ {
			occ[day][h] = true
		}
	}
	if subject.LocationID != "" {
		if locOcc, ok := g.locationOccupied[subject.LocationID]; ok {
			for h := hour; h < hour+span; h++ {
				locOcc[day][h] = true
			}
		}
	}
	g.dailyLessonCounts[classroom.ID][day] += span

	return a
}

// remove performs the exact inverse of place. It only acts on cells
// that still hold the same Assignment pointer (identity equality), so a
// stale reference to a since-overwritten cell is a harmless no-op for
// that cell rather than corrupting a different placement.
func remove(g *grids, classroomID string, a *Assignment, day, hour, span int) {
	classGrid := g.schedule[classroomID]
	var removedHours []int
	for h := hour; h < hour+span; h++ {
		if classGrid[day][h] == a {
			classGrid[day][h] = nil
			removedHours = append(removedHours, h)
		}
	}
	for _, tid := range a.TeacherIDs {
		occ := g.teacherOccupied[tid]
		if occ == nil {
			continue
		}
		for _, h := range removedHours {
			occ[day][h] = false
		}
	}
	if a.LocationID != "" {
		if locOcc, ok := g.locationOccupied[a.LocationID]; ok {
			for _, h := range removedHours {
				locOcc[day][h] = false
			}
		}
	}
	g.dailyLessonCounts[classroomID][day] -= len(removedHours)
}

// markFixed flags cells as belonging to a fixed assignment; these are
// never cleared except by a full grid reset (invariant 6 of spec.md §3).
func markFixed(g *grids, classroomID string, day, hour, span int) {
	mask := g.fixedMask[classroomID]
	for h := hour; h < hour+span; h++ {
		mask[day][h] = true
	}
}

// findSpan returns the start hour and span length of the maximal
// contiguous run of cells holding the same Assignment pointer as the one
// at (day, hour), scanning within [windowStart, windowEnd).
func findSpan(classGrid [][]*Assignment, day, hour, windowStart, windowEnd int) (start, span int) {
	a := classGrid[day][hour]
	if a == nil {
		return hour, 0
	}
	start = hour
	for start > windowStart && classGrid[day][start-1] == a {
		start--
	}
	end := hour
	for end+1 < windowEnd && classGrid[day][end+1] == a {
		end++
	}
	return start, end - start + 1
}
