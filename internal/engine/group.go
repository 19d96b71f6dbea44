package engine

import "sort"

// groupSlot is a candidate (day, hour) placement for a lesson group unit,
// with its resolved classroom->teacher matching.
type groupSlot struct {
	Day     int
	Hour    int
	Teacher map[string]string // classroomID -> teacherID
}

// groupWindowIntersection returns the overlap of every member
// classroom's session window on a given day, per §4.8 of spec.md.
func groupWindowIntersection(idx *domainIndex, group *LessonGroup, schoolHours SchoolHours, day int) (start, end int, ok bool) {
	start, end = 0, maxHours
	for _, cid := range group.ClassroomIDs {
		c := idx.classroomByID[cid]
		if c == nil {
			return 0, 0, false
		}
		dailyLimit := schoolHours.DailyLimit(c.Level, day)
		s, e := c.Window(dailyLimit)
		if s > start {
			start = s
		}
		if e < end {
			end = e
		}
	}
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}

// candidateGroupSlots enumerates every (day, hour) within the window
// intersection where every member classroom is free across span and
// satisfies its run-limit for the subject, the location (if any) is
// free, and a full classroom->teacher bipartite matching exists.
func candidateGroupSlots(idx *domainIndex, g *grids, v *validator, group *LessonGroup, span int) []groupSlot {
	subject := idx.subjectByID[group.SubjectID]
	if subject == nil {
		return nil
	}

	var slots []groupSlot
	for day := 0; day < 5; day++ {
		start, end, ok := groupWindowIntersection(idx, group, v.schoolHours, day)
		if !ok {
			continue
		}
		for hour := start; hour+span <= end; hour++ {
			if !groupSlotFree(idx, g, v, group, subject, day, hour, span) {
				continue
			}
			matching := matchGroupTeachers(idx, g, group, subject, day, hour, span)
			if matching == nil {
				continue
			}
			slots = append(slots, groupSlot{Day: day, Hour: hour, Teacher: matching})
		}
	}
	return slots
}

func groupSlotFree(idx *domainIndex, g *grids, v *validator, group *LessonGroup, subject *Subject, day, hour, span int) bool {
	for _, cid := range group.ClassroomIDs {
		classroom := idx.classroomByID[cid]
		classGrid := g.schedule[cid]
		fixedGrid := g.fixedMask[cid]
		for h := hour; h < hour+span; h++ {
			if classGrid[day][h] != nil || fixedGrid[day][h] {
				return false
			}
		}
		dailyLimit := v.schoolHours.DailyLimit(classroom.Level, day)
		wStart, wEnd := classroom.Window(dailyLimit)
		limit := runLimit(subject, classroom, v.globalMaxConsec)
		left := v.sameSubjectRun(classGrid, subject.ID, day, hour-1, -1, wStart)
		right := v.sameSubjectRun(classGrid, subject.ID, day, hour+span, 1, wEnd)
		if left+span+right > limit {
			return false
		}
	}
	if subject.LocationID != "" {
		locOcc := g.locationOccupied[subject.LocationID]
		if locOcc == nil {
			return false
		}
		for h := hour; h < hour+span; h++ {
			if locOcc[day][h] {
				return false
			}
		}
	}
	return true
}

// matchGroupTeachers solves the classroom -> eligible-teacher bipartite
// matching for one candidate slot via a backtracking DFS that assigns
// classrooms in fewest-candidates-first order, per §4.8.
func matchGroupTeachers(idx *domainIndex, g *grids, group *LessonGroup, subject *Subject, day, hour, span int) map[string]string {
	type classroomCandidates struct {
		classroomID string
		candidates  []string
	}
	var entries []classroomCandidates
	for _, cid := range group.ClassroomIDs {
		classroom := idx.classroomByID[cid]
		if classroom == nil {
			return nil
		}
		var eligible []string
		for _, tid := range teacherCandidates(idx, subject, classroom, nil) {
			t := idx.teacherByID[tid]
			if !teacherFreeAcross(t, g, day, hour, span) {
				continue
			}
			eligible = append(eligible, tid)
		}
		entries = append(entries, classroomCandidates{classroomID: cid, candidates: eligible})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].candidates) < len(entries[j].candidates)
	})

	matched := make(map[string]string)
	usedTeacher := make(map[string]bool)

	var assign func(i int) bool
	assign = func(i int) bool {
		if i == len(entries) {
			return true
		}
		for _, tid := range entries[i].candidates {
			if usedTeacher[tid] {
				continue
			}
			usedTeacher[tid] = true
			matched[entries[i].classroomID] = tid
			if assign(i + 1) {
				return true
			}
			usedTeacher[tid] = false
			delete(matched, entries[i].classroomID)
		}
		return false
	}

	if !assign(0) {
		return nil
	}
	return matched
}

func teacherFreeAcross(t *Teacher, g *grids, day, hour, span int) bool {
	if t == nil {
		return false
	}
	occ := g.teacherOccupied[t.ID]
	for h := hour; h < hour+span; h++ {
		if !t.Available(day, h) || occ[day][h] {
			return false
		}
	}
	return true
}

// placeGroup places one hour/block of a lesson group: every member
// classroom gets an Assignment for the same subject/span at the chosen
// slot, each with a distinct matched teacher.
func placeGroup(g *grids, idx *domainIndex, group *LessonGroup, subject *Subject, slot groupSlot, span int) map[string]*Assignment {
	placed := make(map[string]*Assignment, len(group.ClassroomIDs))
	for _, cid := range group.ClassroomIDs {
		classroom := idx.classroomByID[cid]
		teacher := slot.Teacher[cid]
		a := place(g, classroom, subject, []string{teacher}, slot.Day, slot.Hour, span)
		placed[cid] = a
	}
	return placed
}
